package algorithms

import (
	"golang.org/x/exp/rand"
)

// Rand is the random stream every operator draws from. A run consumes a
// single stream sequentially, so its seed fully determines the result.
type Rand interface {
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewRand returns the PCG-backed stream used for seeded runs
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}
