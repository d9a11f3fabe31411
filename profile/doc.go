// Package profile provides optional runtime profiling for the pupil
// executable.
//
// It integrates [github.com/pkg/profile] behind conditional compilation:
// profiling must be enabled at build time with the "pprof" build tag.
// When built without the tag (the default), all operations are no-ops with
// zero runtime overhead.
//
// Supported modes when built with the tag: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace. Use [Modes] to retrieve
// the list programmatically. Profile files are written to the configured
// directory with names matching the mode (cpu.pprof, mem.pprof, ...) and
// analyzed with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
