package algo

// Observer is notified every time a parallel operation hands work to a new
// goroutine. Implementations must be safe for concurrent use, since sort
// workers spawn their own children.
type Observer interface {
	WorkerSpawned(op Operation)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(op Operation)

// WorkerSpawned calls f(op).
func (f ObserverFunc) WorkerSpawned(op Operation) { f(op) }

type nopObserver struct{}

func (nopObserver) WorkerSpawned(Operation) {}

// Options tunes the parallel kernels.
type Options struct {
	// Threshold is the minimum sequence length a parallel sort will split.
	// Values below 1 select DefaultSortThreshold.
	Threshold int
	// Observer receives one event per spawned worker. Nil disables it.
	Observer Observer
}

// Option configures Options.
type Option func(*Options)

// WithThreshold sets the sequential cutover length of the parallel sort.
func WithThreshold(threshold int) Option {
	return func(o *Options) { o.Threshold = threshold }
}

// WithObserver installs an Observer for worker spawn events.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o.normalize()
}

func (o Options) normalize() Options {
	if o.Threshold < 1 {
		o.Threshold = DefaultSortThreshold
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return o
}

// clampWorkers maps a non-positive worker count or budget to 1.
func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
