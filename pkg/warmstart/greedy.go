// Package warmstart provides a greedy constructive heuristic that fills the
// shelf by objective value per unit of area. Its plan is the baseline a
// genetic run is compared against.
package warmstart

import (
	"math"
	"sort"

	"github.com/mihai-snyk/shelfopt/pkg/framework"
	"github.com/mihai-snyk/shelfopt/pkg/objectives"
)

// Greedy builds a feasible plan by taking items in order of decreasing
// objective value per unit area, each as many times as stock and the
// remaining area allow. Items worth nothing under objective are skipped.
// Ties keep catalog order.
func Greedy(catalog framework.Catalog, areaBudget float64, objective objectives.ObjectiveFunc) framework.Individual {
	type candidate struct {
		index   int
		density float64
	}

	candidates := make([]candidate, 0, len(catalog))
	for i, it := range catalog {
		value := objective(it.Gain, 1)
		if value <= 0 || it.Stock <= 0 {
			continue
		}
		density := math.Inf(1)
		if it.Area > 0 {
			density = value / it.Area
		}
		candidates = append(candidates, candidate{index: i, density: density})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].density > candidates[j].density
	})

	plan := make(framework.Individual, len(catalog))
	remaining := areaBudget
	for _, c := range candidates {
		it := catalog[c.index]
		units := it.Stock
		if it.Area > 0 {
			fit := int(math.Floor(remaining/it.Area + 1e-9))
			if fit < units {
				units = fit
			}
		}
		if units <= 0 {
			continue
		}
		plan[c.index] = units
		remaining -= float64(units) * it.Area
	}
	return plan
}

// ForConfig runs Greedy under the objective selected by cfg
func ForConfig(catalog framework.Catalog, areaBudget float64, cfg framework.Config) framework.Individual {
	return Greedy(catalog, areaBudget, objectives.ForConfig(cfg))
}
