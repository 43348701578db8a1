package algorithms

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// Mutate moves each gene by one unit with probability rate, up or down on a
// coin flip. Decrements stop at zero; the upper stock bound is enforced by
// the caller's clamp. ind is modified in place.
func Mutate(ind framework.Individual, rate float64, rng Rand) {
	for i := range ind {
		if rng.Float64() < rate {
			if rng.Float64() < 0.5 {
				if ind[i] > 0 {
					ind[i]--
				}
			} else {
				ind[i]++
			}
		}
	}
}
