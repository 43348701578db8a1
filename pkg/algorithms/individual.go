package algorithms

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// RandomIndividual draws every quantity uniformly from [0, stock], one draw
// per catalog position in order.
func RandomIndividual(catalog framework.Catalog, rng Rand) framework.Individual {
	ind := make(framework.Individual, len(catalog))
	for i, it := range catalog {
		ind[i] = rng.Intn(it.Stock + 1)
	}
	return ind
}
