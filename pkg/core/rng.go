package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range returns floor(min + u*(max-min)) for a uniform u in [0, 1). The bounds
// may be fractional and max may be below min, in which case the result lies
// between max and min.
func (r *RNG) Range(min, max float64) int {
	return int(math.Floor(min + r.r.Float64()*(max-min)))
}

// Percent reports true with probability pct/100.
func (r *RNG) Percent(pct int) bool {
	return r.r.Float64()*100 < float64(pct)
}

