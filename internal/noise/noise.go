// Package noise provides an injectable source of bounded randomness for the
// scoring heuristics. The heuristics add small jitter for realism; routing
// that randomness through a seedable Source keeps route scoring reproducible
// in tests.
package noise

import (
	"math/rand"
	"sync"
)

// Source produces uniformly distributed values in a half-open interval.
type Source interface {
	// Uniform returns a value in [min, max).
	Uniform(min, max float64) float64
}

// seededSource wraps a math/rand generator with a mutex so a single Source
// can be shared by concurrent feature-synthesis workers.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a Source backed by a generator with the given seed.
// The same seed always yields the same value sequence.
func NewSeeded(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

// zeroSource always returns the midpoint of the requested interval. Tests
// that assert exact score values use it to remove jitter entirely.
type zeroSource struct{}

// Zero returns a Source whose Uniform always yields the interval midpoint.
func Zero() Source {
	return zeroSource{}
}

func (zeroSource) Uniform(min, max float64) float64 {
	return (min + max) / 2
}
