package framework

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ErrEmptyCatalog is returned when no catalog item survives the active-id filter.
var ErrEmptyCatalog = errors.New("no active items in catalog")

// Item contains catalog information for optimization
type Item struct {
	ID    int
	Name  string  // display only
	Area  float64 // area consumed per unit
	Gain  float64 // profit per unit
	Stock int     // maximum units available
}

// Catalog is an ordered list of items. Its order defines the genome layout.
type Catalog []Item

// Individual holds the chosen quantity of each catalog position.
type Individual []int

// Clone returns a copy that shares no storage with ind.
func (ind Individual) Clone() Individual {
	if ind == nil {
		return nil
	}
	out := make(Individual, len(ind))
	copy(out, ind)
	return out
}

// SelectionType names a parent selection policy
type SelectionType string

const (
	SelectionTournament SelectionType = "tournament"
	SelectionRoulette   SelectionType = "roulette"
)

// ObjectiveMode names the scalar the optimizer maximizes
type ObjectiveMode string

const (
	ObjectiveGain             ObjectiveMode = "gain"
	ObjectiveQuantityPriority ObjectiveMode = "quantity_priority"
	ObjectiveMixed            ObjectiveMode = "mixed"
)

// Config holds the parameters of a single run. It is never mutated once a run starts.
type Config struct {
	PopulationSize       int
	Generations          int
	CrossoverProbability float64
	MutationProbability  float64
	TournamentSize       int
	Elitism              int
	Selection            SelectionType
	Repair               bool
	Penalty              float64 // per unit of area over budget, only used when Repair is false
	Objective            ObjectiveMode
	Alpha                float64
	Beta                 float64
	Seed                 int64
}

// DefaultConfig returns the parameters the web client starts from.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       100,
		Generations:          60,
		CrossoverProbability: 0.6,
		MutationProbability:  0.15,
		TournamentSize:       3,
		Elitism:              2,
		Selection:            SelectionTournament,
		Repair:               true,
		Penalty:              1000,
		Objective:            ObjectiveGain,
		Alpha:                1,
		Beta:                 0,
		Seed:                 42,
	}
}

// Validate rejects configurations the operators cannot run with.
func (c Config) Validate() error {
	var errs field.ErrorList
	root := field.NewPath("config")

	if c.PopulationSize <= 0 {
		errs = append(errs, field.Invalid(root.Child("populationSize"), c.PopulationSize, "must be greater than 0"))
	}
	if c.Generations < 0 {
		errs = append(errs, field.Invalid(root.Child("generations"), c.Generations, "must not be negative"))
	}
	if c.CrossoverProbability < 0 || c.CrossoverProbability > 1 {
		errs = append(errs, field.Invalid(root.Child("crossoverProbability"), c.CrossoverProbability, "must be between 0 and 1"))
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		errs = append(errs, field.Invalid(root.Child("mutationProbability"), c.MutationProbability, "must be between 0 and 1"))
	}
	if c.TournamentSize < 1 {
		errs = append(errs, field.Invalid(root.Child("tournamentSize"), c.TournamentSize, "must be at least 1"))
	} else if c.PopulationSize > 0 && c.TournamentSize > c.PopulationSize {
		errs = append(errs, field.Invalid(root.Child("tournamentSize"), c.TournamentSize,
			fmt.Sprintf("must not exceed population size %d", c.PopulationSize)))
	}
	if c.Elitism < 0 {
		errs = append(errs, field.Invalid(root.Child("elitism"), c.Elitism, "must not be negative"))
	}
	if c.Penalty < 0 {
		errs = append(errs, field.Invalid(root.Child("penalty"), c.Penalty, "must not be negative"))
	}
	switch c.Selection {
	case SelectionTournament, SelectionRoulette:
	default:
		errs = append(errs, field.NotSupported(root.Child("selection"), c.Selection,
			[]string{string(SelectionTournament), string(SelectionRoulette)}))
	}
	switch c.Objective {
	case ObjectiveGain, ObjectiveQuantityPriority, ObjectiveMixed:
	default:
		errs = append(errs, field.NotSupported(root.Child("objective"), c.Objective,
			[]string{string(ObjectiveGain), string(ObjectiveQuantityPriority), string(ObjectiveMixed)}))
	}

	return errs.ToAggregate()
}

// Metrics are the aggregates derived from the best individual
type Metrics struct {
	AreaUsed       float64
	AreaBudget     float64
	TotalGain      float64
	TotalQuantity  int
	UtilizationPct float64
}

// History holds one entry per generation
type History struct {
	Best []float64
	Mean []float64
}

// RunResult is the outcome of one optimizer run
type RunResult struct {
	Best        Individual
	BestFitness float64
	Metrics     Metrics
	History     History
	Catalog     Catalog
	Config      Config
}
