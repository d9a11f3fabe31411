// Package log wraps log/slog with a small configurable surface: a trace
// level below debug, text and JSON formats with optional colorized pretty
// printing, and a process-wide default logger reconfigurable at runtime
// from command-line flags.
package log
