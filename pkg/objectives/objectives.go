// Package objectives scores stocking plans. Every mode is maximized; when
// repair is disabled an over-budget plan is penalized proportionally to the
// area it exceeds the budget by.
package objectives

import (
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// QuantityWeight makes total quantity dominate gain in quantity_priority mode.
const QuantityWeight = 10_000

// ObjectiveFunc maps the aggregates of a plan to a raw score
type ObjectiveFunc func(gain float64, quantity int) float64

// GainObjective scores a plan by its total gain
func GainObjective() ObjectiveFunc {
	return func(gain float64, _ int) float64 {
		return gain
	}
}

// QuantityPriorityObjective ranks by unit count first and breaks ties on gain
func QuantityPriorityObjective() ObjectiveFunc {
	return func(gain float64, quantity int) float64 {
		return float64(quantity)*QuantityWeight + gain
	}
}

// MixedObjective is alpha*gain + beta*quantity
func MixedObjective(alpha, beta float64) ObjectiveFunc {
	return func(gain float64, quantity int) float64 {
		return alpha*gain + beta*float64(quantity)
	}
}

// ForConfig returns the objective selected by cfg.Objective. Unknown modes
// fall back to the mixed objective.
func ForConfig(cfg framework.Config) ObjectiveFunc {
	switch cfg.Objective {
	case framework.ObjectiveGain:
		return GainObjective()
	case framework.ObjectiveQuantityPriority:
		return QuantityPriorityObjective()
	default:
		return MixedObjective(cfg.Alpha, cfg.Beta)
	}
}

// Evaluator scores individuals against a fixed catalog and area budget
type Evaluator struct {
	catalog    framework.Catalog
	areaBudget float64
	objective  ObjectiveFunc
	penalize   bool
	penalty    float64
}

// NewEvaluator creates an evaluator for the given run parameters
func NewEvaluator(catalog framework.Catalog, cfg framework.Config, areaBudget float64) *Evaluator {
	return &Evaluator{
		catalog:    catalog,
		areaBudget: areaBudget,
		objective:  ForConfig(cfg),
		penalize:   !cfg.Repair,
		penalty:    cfg.Penalty,
	}
}

// Fitness returns the score of ind. It may be negative.
func (e *Evaluator) Fitness(ind framework.Individual) float64 {
	area, gain, quantity := framework.Aggregate(ind, e.catalog)
	fit := e.objective(gain, quantity)

	// With repair on, every individual is already feasible.
	if e.penalize && area > e.areaBudget {
		fit -= e.penalty * (area - e.areaBudget)
	}
	return fit
}

// FitnessAll scores every member of population, index for index
func (e *Evaluator) FitnessAll(population []framework.Individual) []float64 {
	out := make([]float64, len(population))
	for i, ind := range population {
		out[i] = e.Fitness(ind)
	}
	return out
}

// Fitness is a convenience wrapper for one-off evaluations
func Fitness(ind framework.Individual, catalog framework.Catalog, cfg framework.Config, areaBudget float64) float64 {
	return NewEvaluator(catalog, cfg, areaBudget).Fitness(ind)
}
