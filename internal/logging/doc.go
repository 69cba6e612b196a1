// Package logging assembles structured slog loggers and formatting helpers used
// across watchlog.
//
// It owns the console and JSON handlers, level parsing, and optional rotated
// file output, and exposes context-aware helpers so command code can tag log
// lines with the running command and a correlation id. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
