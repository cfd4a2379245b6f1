// Package profile provides optional runtime profiling for crlf.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag. When
// built without the tag, [Modes] is empty and [Profiler.Start] returns a
// no-op, so callers never need to check how the binary was built.
//
//	p := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the output directory with names matching the
// mode (cpu.pprof, mem.pprof, ...) and can be inspected with
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// Built with the tag, the package also imports [net/http/pprof], which
// registers its handlers under /debug/pprof/ on the default mux.
package profile
