// Package logging assembles structured slog loggers and formatting helpers used
// across subtrans.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so request handling can tag log
// lines with correlation IDs, stages, and block positions. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
