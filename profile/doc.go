// Package profile provides optional runtime profiling through
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the [Tag] build tag. Without
// it, [Modes] is empty and every [Profiler] is a no-op.
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread and trace.
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath(dir)).Start()
//	defer p.Stop()
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
