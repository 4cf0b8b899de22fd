package engine

// Options tunes the simulation run loop.
type Options struct {
	// MaxArrivals stops the run after this many processed arrivals; zero
	// defers entirely to the flow model's own exhaustion.
	MaxArrivals int64
	// ProgressEvery logs a progress line every N arrivals; zero disables it.
	ProgressEvery int64
}

// DefaultEngineOptions returns the options used when none are provided.
func DefaultEngineOptions() *Options {
	return &Options{
		MaxArrivals:   0,
		ProgressEvery: 1000,
	}
}
