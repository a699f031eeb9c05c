// Package archive reads and writes export containers as in-memory entry
// lists.
//
// The transform core never touches I/O: it consumes an ordered []Entry and
// produces a new one. This package owns the boundary — zip containers
// (including the exporter's double-wrapped layout), extracted directory
// trees, and the output side of both. Entry classification happens at read
// time so downstream code only consults the Text flag.
package archive
