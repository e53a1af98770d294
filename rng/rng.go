// Package rng provides the seeded random source that every simulation
// decision draws from. A Source is owned by exactly one session; sharing one
// between sessions breaks reproducibility.
package rng

import "math/rand/v2"

// Source is a deterministic random source. The sequence of values depends on
// the seed and on the exact order of calls made against it.
type Source struct {
	seed int64
	r    *rand.Rand
}

// New creates a Source seeded with the provided value.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(uint64(seed), 0)),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 { return s.seed }

// IntN returns a uniform integer in [0, bound). Callers must pass a positive
// bound; a non-positive bound returns 0 without advancing the generator.
func (s *Source) IntN(bound int) int {
	if bound <= 0 {
		return 0
	}
	return s.r.IntN(bound)
}

// Jitter returns a uniform offset in [-spread, spread].
func (s *Source) Jitter(spread int) int {
	if spread <= 0 {
		return 0
	}
	return s.IntN(2*spread+1) - spread
}

// PickOne returns one element of items chosen uniformly. It reports false and
// draws nothing when items is empty.
func PickOne[T any](s *Source, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[s.IntN(len(items))], true
}

// Shuffle returns a permuted copy of items. The input slice is left untouched.
// It walks from the last index down, swapping each slot with a uniformly
// chosen slot at or below it, so it consumes len(items)-1 draws.
func Shuffle[T any](s *Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
