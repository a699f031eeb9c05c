// Package logging assembles the structured slog loggers used across exportfix.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides attribute helpers plus a no-op logger for tests and
// wiring code that cannot fail. Warnings from the transform (unresolved link
// targets, undecodable entries) flow through loggers built here.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
