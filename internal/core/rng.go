package core

import (
	"math/rand"
	"time"
)

// RNG wraps math/rand so that every random decision in a wave can be
// replayed from a seed.
type RNG struct {
	rng *rand.Rand
}

// NewRNG creates a generator with the given seed.
// A zero seed uses the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{rng: rand.New(rand.NewSource(seed))}
}

// DeriveSeed mixes a base seed with a salt (wave index, slot, ...) into a new
// non-zero seed. Uses the splitmix64 finalizer.
func DeriveSeed(seed int64, salt int64) int64 {
	z := uint64(seed) + uint64(salt)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return int64(z)
}

// Intn returns a random integer in [0, n). Returns 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// IntRange returns a random integer in [min, max).
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	return r.rng.Float64()
}

// FloatRange returns a random float in [min, max).
func (r *RNG) FloatRange(min, max float64) float64 {
	return min + (max-min)*r.rng.Float64()
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// ChooseWeighted picks an index from weights proportionally.
// Returns -1 for an empty slice and 0 if every weight is non-positive.
func (r *RNG) ChooseWeighted(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}

	pick := r.rng.Float64() * total
	upto := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		upto += w
		if pick < upto {
			return i
		}
	}
	return len(weights) - 1
}
