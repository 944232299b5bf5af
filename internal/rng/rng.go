// Package rng provides the random source used by span detection and jitter.
//
// Production code draws from the global math/rand/v2 generator, which is
// seeded from system entropy and safe for concurrent use. Tests inject a
// seeded generator through New so that random and waves spans and jitter
// swaps are reproducible.
package rng

import "math/rand/v2"

// Rand is the subset of *rand.Rand the sorting engine needs.
type Rand interface {
	// IntN returns a pseudo-random number in the half-open interval [0,n).
	// It panics if n <= 0.
	IntN(n int) int

	// Float64 returns a pseudo-random number in the half-open interval [0.0,1.0).
	Float64() float64
}

// globalRand forwards to the package-level math/rand/v2 functions.
type globalRand struct{}

func (globalRand) IntN(n int) int    { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Global returns a Rand backed by the global entropy-seeded generator.
// It is safe for concurrent use.
func Global() Rand {
	return globalRand{}
}

// New returns a deterministic PCG-backed Rand for the given seed.
// The returned value is not safe for concurrent use.
func New(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform integer in the half-open interval [lo, hi).
// It returns lo when hi <= lo.
func Between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// Offset returns a uniform integer in the closed interval [-k, k].
func Offset(r Rand, k int) int {
	if k <= 0 {
		return 0
	}
	return r.IntN(2*k+1) - k
}
