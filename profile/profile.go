package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unsupported mode disables
	// profiling.
	Mode string

	// Path is the directory that receives the profile. An empty path lets
	// the profiler choose a temporary directory.
	Path string

	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p *Profiler) { p.Path = path }
}

// WithQuiet sets the quiet flag.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Start starts the profiler and returns a handle for stopping it.
//
// If the binary was built without the pprof tag, or p.Mode is not a
// supported mode, Start returns a no-op. Both Start and Stop are always
// safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
