// Package random provides the seeded random source used by level generation.
//
// Every draw goes through a single *rand.Rand so that a level built twice
// from the same seed and the same inputs is identical.
package random

import (
	"fmt"
	"math/rand"
	"time"
)

// Source draws uniform integers, percentage checks, coin flips and dice.
type Source struct {
	rng *rand.Rand
}

// NewSeed picks a seed from the clock.
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// New creates a source seeded with seed. A seed of 0 picks one from the clock.
func New(seed int64) *Source {
	if seed == 0 {
		seed = NewSeed()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// FromRand wraps an existing generator.
func FromRand(rng *rand.Rand) *Source {
	return &Source{rng: rng}
}

// Intn returns a uniform integer in [0, n).
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("random: Intn called with n=%d", n))
	}
	return s.rng.Intn(n)
}

// Range returns a uniform integer in [lo, hi], both bounds included.
func (s *Source) Range(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: empty range [%d, %d]", lo, hi))
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// PercentChance returns true with probability p percent. p must be in 1..99.
func (s *Source) PercentChance(p int) bool {
	if p < 1 || p > 99 {
		panic(fmt.Sprintf("random: percent %d outside 1..99", p))
	}
	return s.Range(1, 100) <= p
}

// CoinFlip returns true half of the time.
func (s *Source) CoinFlip() bool {
	return s.Range(0, 1) == 0
}

// Shuffle randomizes the order of n elements using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Weighted picks an index with probability proportional to its weight.
// It returns -1 when no weight is positive.
func (s *Source) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := s.rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}
	// Rounding can leave roll at the very top of the range.
	return last
}

// WeightedInt is Weighted for integer weight tables.
func (s *Source) WeightedInt(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := s.rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return -1
}
