package core

import "math/rand/v2"

// Rand is the minimal randomness contract used by maze carving and mob steering.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Derive returns an independent RNG for stream n of the given seed. Streams
// with different n never share state, so owners can step them concurrently.
func Derive(seed int64, n uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), n+1))}
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
