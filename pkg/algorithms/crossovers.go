package algorithms

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// DefaultGeneSwapProbability is the per-gene swap chance of uniform crossover
const DefaultGeneSwapProbability = 0.5

// CrossoverFunc represents a crossover operation on integer chromosomes
type CrossoverFunc func(parent1, parent2 framework.Individual, rng Rand) (child1, child2 framework.Individual)

// UniformCrossover returns a crossover that swaps each position of the two
// parents independently with probability swapProb. Parents are not modified.
func UniformCrossover(swapProb float64) CrossoverFunc {
	return func(p1, p2 framework.Individual, rng Rand) (framework.Individual, framework.Individual) {
		child1 := p1.Clone()
		child2 := p2.Clone()

		for i := range child1 {
			if rng.Float64() < swapProb {
				child1[i], child2[i] = child2[i], child1[i]
			}
		}

		return child1, child2
	}
}
