package algorithms

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// rouletteEpsilon keeps every shifted weight strictly positive
const rouletteEpsilon = 1e-9

// TournamentSelect samples k distinct members and returns a copy of the
// fittest one. Ties go to the earliest sampled contestant.
func TournamentSelect(population []framework.Individual, fitnesses []float64, k int, rng Rand) framework.Individual {
	n := len(population)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	// Partial Fisher-Yates: the first k slots become the sample.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	best := -1
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		contestant := idx[i]
		if best < 0 || fitnesses[contestant] > fitnesses[best] {
			best = contestant
		}
	}

	return population[best].Clone()
}

// RouletteSelect picks a member with probability proportional to its
// fitness, shifting all fitnesses up when the minimum is not positive.
// A degenerate wheel falls back to tournament selection of size k.
func RouletteSelect(population []framework.Individual, fitnesses []float64, k int, rng Rand) framework.Individual {
	minFit := fitnesses[0]
	for _, f := range fitnesses[1:] {
		if f < minFit {
			minFit = f
		}
	}
	shift := 0.0
	if minFit <= 0 {
		shift = -minFit + rouletteEpsilon
	}

	total := 0.0
	for _, f := range fitnesses {
		total += f + shift
	}
	if total <= 0 {
		return TournamentSelect(population, fitnesses, k, rng)
	}

	r := rng.Float64() * total
	acc := 0.0
	for i, f := range fitnesses {
		acc += f + shift
		if acc >= r {
			return population[i].Clone()
		}
	}
	return population[len(population)-1].Clone()
}

// Select dispatches to the policy configured in cfg
func Select(population []framework.Individual, fitnesses []float64, cfg framework.Config, rng Rand) framework.Individual {
	if cfg.Selection == framework.SelectionRoulette {
		return RouletteSelect(population, fitnesses, cfg.TournamentSize, rng)
	}
	return TournamentSelect(population, fitnesses, cfg.TournamentSize, rng)
}
