package pixelsort

import "github.com/gogpu/pixelsort/internal/rng"

// Rand is the random source used by random and wave spans and by jitter.
// *math/rand/v2.Rand satisfies it.
type Rand = rng.Rand

// SorterOption configures a Sorter during creation.
//
// Example:
//
//	// Entropy-seeded, safe for concurrent use
//	s := pixelsort.NewSorter()
//
//	// Reproducible output for tests and batch jobs
//	s := pixelsort.NewSorter(pixelsort.WithSeed(42))
type SorterOption func(*sorterOptions)

// sorterOptions holds optional configuration for Sorter creation.
type sorterOptions struct {
	rnd Rand
}

// defaultSorterOptions returns the default sorter options.
func defaultSorterOptions() sorterOptions {
	return sorterOptions{
		rnd: rng.Global(),
	}
}

// WithRand sets the random source. A nil source restores the global one.
//
// A Sorter is only safe for concurrent use if its source is.
func WithRand(r Rand) SorterOption {
	return func(o *sorterOptions) {
		if r == nil {
			r = rng.Global()
		}
		o.rnd = r
	}
}

// WithSeed gives the Sorter its own deterministic source. Two sorters
// created with the same seed produce identical output for identical calls.
//
// The resulting Sorter is not safe for concurrent use.
func WithSeed(seed uint64) SorterOption {
	return func(o *sorterOptions) {
		o.rnd = rng.New(seed)
	}
}
