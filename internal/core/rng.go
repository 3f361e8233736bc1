package core

import "math/rand"

// RNG is a seeded pseudo-random source for procedural content.
// Two RNGs built from the same seed yield the same sequence.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the generator was last reset with.
func (g *RNG) Seed() int64 {
	return g.seed
}

// Reseed restarts the sequence from a new seed.
func (g *RNG) Reseed(seed int64) {
	g.seed = seed
	g.r = rand.New(rand.NewSource(seed))
}

// Float returns a value in [0, 1).
func (g *RNG) Float() float64 {
	return g.r.Float64()
}

// Range returns a uniform value in [min, max).
func (g *RNG) Range(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

// Sign returns -1 or 1 with equal probability.
func (g *RNG) Sign() float64 {
	if g.r.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}
