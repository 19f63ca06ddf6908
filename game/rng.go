package game

import (
	"math"
	"math/rand"
	"time"
)

// Rand wraps a seeded generator so a round can be replayed from its seed.
// All randomness in the simulation goes through it.
type Rand struct {
	rng  *rand.Rand
	seed int64
}

// NewRand creates a generator. A zero seed is replaced with the current time.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{
		rng:  rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
		seed: seed,
	}
}

// Seed returns the seed actually in use
func (r *Rand) Seed() int64 {
	return r.seed
}

// Range returns a number in [lo, hi)
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// Chance returns true with probability p
func (r *Rand) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Heading returns an angle in [0, 2π)
func (r *Rand) Heading() float64 {
	return r.rng.Float64() * 2 * math.Pi
}

// Spread returns a symmetric offset in [-width/2, width/2)
func (r *Rand) Spread(width float64) float64 {
	return (r.rng.Float64() - 0.5) * width
}

// MoveChangeInterval draws the time until an enemy picks a new heading
func (r *Rand) MoveChangeInterval() float64 {
	return r.Range(1500, 2500)
}
