// Package cli contains the command line interface for pupil.
//
// # Usage
//
// Expressions given as arguments are evaluated and printed:
//
//	pupil "2 + 3 * 4"
//
// When stdin is a pipe, each line is evaluated as an independent expression:
//
//	printf '1 + 2\nans * 10\n' | pupil
//
// When stdin is a terminal and no expression is given, an interactive
// calculator starts with completion and persistent history.
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads a
// flat YAML mapping of flag names to values. Command-line flags override
// config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/pupil/pprof)
//
// # Examples
//
//	# Debug logging while evaluating a single expression
//	pupil --log-level=debug "sqrt(2)^2"
//
//	# Interactive session with a preloaded variable
//	pupil -D x=1.5
//
//	# CPU profile of a piped batch
//	pupil --pprof-mode=cpu < expressions.txt
package cli
