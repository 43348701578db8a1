package constraints

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// Constraint reports whether an individual is feasible
type Constraint func(ind framework.Individual) bool

// AreaConstraint creates a constraint function that checks the shelf area budget
func AreaConstraint(catalog framework.Catalog, areaBudget float64) Constraint {
	return func(ind framework.Individual) bool {
		return framework.TotalArea(ind, catalog) <= areaBudget
	}
}

// StockConstraint creates a constraint function that checks 0 <= q[i] <= stock[i]
func StockConstraint(catalog framework.Catalog) Constraint {
	return func(ind framework.Individual) bool {
		if len(ind) != len(catalog) {
			return false
		}
		for i, q := range ind {
			if q < 0 || q > catalog[i].Stock {
				return false
			}
		}
		return true
	}
}

// CombineConstraints combines multiple constraints into one
func CombineConstraints(constraints ...Constraint) Constraint {
	return func(ind framework.Individual) bool {
		for _, constraint := range constraints {
			if !constraint(ind) {
				return false
			}
		}
		return true
	}
}

// Clamp forces every gene of ind into [0, stock]. ind is modified in place.
func Clamp(ind framework.Individual, catalog framework.Catalog) {
	for i, q := range ind {
		switch {
		case q < 0:
			ind[i] = 0
		case q > catalog[i].Stock:
			ind[i] = catalog[i].Stock
		}
	}
}

// Repair removes units one at a time from the stocked item with the largest
// per-unit area (first such position on ties) until ind fits areaBudget.
// The input is left untouched; a new individual is returned.
func Repair(ind framework.Individual, catalog framework.Catalog, areaBudget float64) framework.Individual {
	out := ind.Clone()
	fits := AreaConstraint(catalog, areaBudget)

	for !fits(out) {
		largest := -1
		for i, q := range out {
			if q <= 0 {
				continue
			}
			if largest < 0 || catalog[i].Area > catalog[largest].Area {
				largest = i
			}
		}
		if largest < 0 {
			// Nothing left to remove; only reachable with a negative budget.
			break
		}
		out[largest]--
	}
	return out
}
