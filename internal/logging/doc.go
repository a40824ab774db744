// Package logging assembles structured slog loggers and formatting helpers used
// across Slate.
//
// It owns the console and JSON handlers, level parsing, output fan-out to
// stderr and the log file, typed attribute helpers, and the warning helpers
// that enforce event_type/error_hint/impact fields. A no-op logger is provided
// for tests and for library callers that pass a nil logger.
package logging
