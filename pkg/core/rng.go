package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// Every phase that needs randomness receives one explicitly; there is no
// package-level generator.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), 0)
	return &RNG{src: src, r: rand.New(src)}
}

// Reseed restarts the generator as if it had been created by NewRNG(seed).
func (r *RNG) Reseed(seed int64) { r.src.Seed(uint64(seed), 0) }

// Between returns a uniformly distributed integer in the closed range [min, max].
func (r *RNG) Between(min, max int) int {
	if max <= min {
		return min
	}
	v := min + int(r.r.Float64()*float64(max-min+1))
	if v > max {
		v = max
	}
	return v
}

// Chance reports true with probability 1/n.
func (r *RNG) Chance(n int) bool {
	if n <= 1 {
		return true
	}
	return r.Between(1, n) == 1
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Int64 draws a seed-sized value, typically used to seed a child generator.
func (r *RNG) Int64() int64 { return r.r.Int64() }

// Child derives an independent generator from the next value of r. Children
// drawn in the same order from the same parent always produce the same streams.
func (r *RNG) Child() *RNG { return NewRNG(r.Int64()) }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
