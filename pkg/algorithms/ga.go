package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/shelfopt/pkg/constraints"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
	"github.com/mihai-snyk/shelfopt/pkg/objectives"
)

const (
	Name = "GA"
)

// GenerationObserver is called once per generation, after the generation's
// statistics are recorded and before reproduction. population and fitnesses
// must not be modified.
type GenerationObserver func(gen int, population []framework.Individual, fitnesses []float64)

// GA is a single-objective elitist genetic algorithm over bounded integer
// quantities with an area budget.
type GA struct {
	Config     framework.Config
	Catalog    framework.Catalog
	AreaBudget float64

	GeneSwapProbability float64

	rng       Rand
	evaluator *objectives.Evaluator
	observers []GenerationObserver
}

// Option customizes a GA
type Option func(*GA)

// WithRand replaces the seeded random stream
func WithRand(rng Rand) Option {
	return func(g *GA) {
		g.rng = rng
	}
}

// WithGeneSwapProbability overrides the per-gene swap probability of uniform crossover
func WithGeneSwapProbability(p float64) Option {
	return func(g *GA) {
		g.GeneSwapProbability = p
	}
}

// WithObserver registers a per-generation callback
func WithObserver(o GenerationObserver) Option {
	return func(g *GA) {
		g.observers = append(g.observers, o)
	}
}

// NewGA creates a GA for an already-filtered catalog. It fails on an empty
// catalog, an invalid item, a negative area budget or an invalid
// configuration.
func NewGA(config framework.Config, catalog framework.Catalog, areaBudget float64, opts ...Option) (*GA, error) {
	if len(catalog) == 0 {
		return nil, framework.ErrEmptyCatalog
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if areaBudget < 0 || math.IsNaN(areaBudget) || math.IsInf(areaBudget, 0) {
		return nil, fmt.Errorf("invalid area budget %v: must be a finite number not below 0", areaBudget)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	g := &GA{
		Config:              config,
		Catalog:             catalog,
		AreaBudget:          areaBudget,
		GeneSwapProbability: DefaultGeneSwapProbability,
		evaluator:           objectives.NewEvaluator(catalog, config, areaBudget),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(config.Seed)
	}
	return g, nil
}

// Run filters catalog by activeIDs and evolves a stocking plan for it. An
// empty activeIDs means every item is active.
func Run(ctx context.Context, catalog framework.Catalog, config framework.Config, areaBudget float64, activeIDs []int, opts ...Option) (*framework.RunResult, error) {
	effective := framework.FilterCatalog(catalog, framework.IDSet(activeIDs))
	if len(effective) == 0 {
		return nil, framework.ErrEmptyCatalog
	}

	g, err := NewGA(config, effective, areaBudget, opts...)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx), nil
}

// Run executes the generational loop and returns the best plan seen
func (g *GA) Run(ctx context.Context) *framework.RunResult {
	logger := klog.FromContext(ctx).WithValues("algorithm", Name)
	startTime := time.Now()
	cfg := g.Config

	logger.V(1).Info("Starting evolution",
		"items", len(g.Catalog),
		"areaBudget", g.AreaBudget,
		"populationSize", cfg.PopulationSize,
		"generations", cfg.Generations,
		"selection", cfg.Selection,
		"objective", cfg.Objective,
		"repair", cfg.Repair,
		"seed", cfg.Seed)

	population := make([]framework.Individual, cfg.PopulationSize)
	for i := range population {
		population[i] = RandomIndividual(g.Catalog, g.rng)
	}
	if cfg.Repair {
		for i, ind := range population {
			population[i] = constraints.Repair(ind, g.Catalog, g.AreaBudget)
		}
	}
	fitnesses := g.evaluator.FitnessAll(population)

	history := framework.History{
		Best: make([]float64, 0, cfg.Generations),
		Mean: make([]float64, 0, cfg.Generations),
	}
	var best framework.Individual
	bestFit := math.Inf(-1)

	for gen := 0; gen < cfg.Generations; gen++ {
		order := rankByFitness(fitnesses)
		top := order[0]
		if fitnesses[top] > bestFit {
			bestFit = fitnesses[top]
			best = population[top].Clone()
		}
		mean := stat.Mean(fitnesses, nil)
		history.Best = append(history.Best, fitnesses[top])
		history.Mean = append(history.Mean, mean)

		if gen%10 == 0 {
			logger.V(2).Info("Generation", "gen", gen+1, "best", fitnesses[top], "mean", mean, "bestEver", bestFit)
		}
		for _, o := range g.observers {
			o(gen, population, fitnesses)
		}

		population = g.reproduce(population, fitnesses, order)
		fitnesses = g.evaluator.FitnessAll(population)
	}

	// Without generations nothing was recorded; fall back to the initial
	// population, first member on ties.
	if best == nil {
		for i, f := range fitnesses {
			if best == nil || f > bestFit {
				bestFit = f
				best = population[i].Clone()
			}
		}
	}

	area, gain, quantity := framework.Aggregate(best, g.Catalog)
	utilization := 0.0
	if g.AreaBudget > 0 {
		utilization = area / g.AreaBudget * 100
	}

	logger.V(1).Info("Evolution complete",
		"bestFitness", bestFit,
		"areaUsed", area,
		"utilizationPct", utilization,
		"elapsed", time.Since(startTime))

	catalog := make(framework.Catalog, len(g.Catalog))
	copy(catalog, g.Catalog)

	return &framework.RunResult{
		Best:        best,
		BestFitness: bestFit,
		Metrics: framework.Metrics{
			AreaUsed:       area,
			AreaBudget:     g.AreaBudget,
			TotalGain:      gain,
			TotalQuantity:  quantity,
			UtilizationPct: utilization,
		},
		History: history,
		Catalog: catalog,
		Config:  cfg,
	}
}

// reproduce builds the next population: elites first, then offspring bred
// from the current population until the configured size is reached.
func (g *GA) reproduce(population []framework.Individual, fitnesses []float64, order []int) []framework.Individual {
	cfg := g.Config
	size := cfg.PopulationSize
	crossover := UniformCrossover(g.GeneSwapProbability)

	next := make([]framework.Individual, 0, size)
	for i := 0; i < cfg.Elitism && i < len(order); i++ {
		next = append(next, population[order[i]].Clone())
	}

	for len(next) < size {
		child1, child2 := g.offspringPair(population, fitnesses, crossover)
		next = append(next, child1)
		if len(next) < size {
			next = append(next, child2)
		}
	}
	return next
}

// offspringPair selects two parents and turns them into two feasible children
func (g *GA) offspringPair(population []framework.Individual, fitnesses []float64, crossover CrossoverFunc) (framework.Individual, framework.Individual) {
	cfg := g.Config

	// Selection returns copies, so children never alias population members.
	parent1 := Select(population, fitnesses, cfg, g.rng)
	parent2 := Select(population, fitnesses, cfg, g.rng)

	child1, child2 := parent1, parent2
	if g.rng.Float64() < cfg.CrossoverProbability {
		child1, child2 = crossover(parent1, parent2, g.rng)
	}

	Mutate(child1, cfg.MutationProbability, g.rng)
	Mutate(child2, cfg.MutationProbability, g.rng)

	constraints.Clamp(child1, g.Catalog)
	constraints.Clamp(child2, g.Catalog)

	if cfg.Repair {
		child1 = constraints.Repair(child1, g.Catalog, g.AreaBudget)
		child2 = constraints.Repair(child2, g.Catalog, g.AreaBudget)
	}
	return child1, child2
}

// rankByFitness returns population indices sorted by descending fitness.
// Equal fitnesses keep population order.
func rankByFitness(fitnesses []float64) []int {
	order := make([]int, len(fitnesses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return fitnesses[order[i]] > fitnesses[order[j]]
	})
	return order
}
