// Package textutil sanitizes name stems recovered from export archives.
//
// Exported titles may contain characters that are legal inside the exporting
// service but unsafe as filesystem names, arbitrary Unicode composition, and
// arbitrary length. SanitizeSegment is applied to every stem after identifier
// stripping and before collision resolution so the rename plan only ever deals
// with names that can actually exist on disk.
package textutil
