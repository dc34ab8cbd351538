// Package logging assembles structured slog loggers and formatting helpers used
// across filesort.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so engine code can tag log lines with the
// run identifier of the organize pass that produced them. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
