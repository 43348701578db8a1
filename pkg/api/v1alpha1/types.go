/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package v1alpha1 holds the wire format of the optimizer service. Field
// names follow the web client that drives it.
package v1alpha1

// Wire names of the selection policies and objective modes. English names
// are accepted on input as aliases.
const (
	SelectionTournament = "torneo"
	SelectionRoulette   = "ruleta"

	ObjectiveGain             = "ganancia"
	ObjectiveQuantityPriority = "cantidad_prioritaria"
	ObjectiveMixed            = "mixto"
)

// Item is one catalog entry
type Item struct {
	// ID must be unique within a catalog
	ID int `json:"id"`

	// Name is only displayed
	Name string `json:"nombre"`

	// Area consumed by one unit
	Area float64 `json:"area"`

	// Gain earned by one unit
	Gain float64 `json:"ganancia"`

	// Stock is the maximum number of units available
	Stock int `json:"stock"`
}

// Params configures a run
type Params struct {
	PopulationSize       int     `json:"tam_poblacion"`
	Generations          int     `json:"num_generaciones"`
	CrossoverProbability float64 `json:"prob_cruce"`
	MutationProbability  float64 `json:"prob_mutacion"`
	TournamentSize       int     `json:"torneo_k"`
	Elitism              int     `json:"elitismo"`

	// Selection is "torneo" or "ruleta"
	Selection string `json:"tipo_seleccion"`

	// Repair keeps every individual within the area budget. When false,
	// over-budget plans are penalized instead.
	Repair bool `json:"usar_reparacion"`

	// Objective is "ganancia", "cantidad_prioritaria" or "mixto"
	Objective string  `json:"modo_objetivo"`
	Alpha     float64 `json:"alfa"`
	Beta      float64 `json:"beta"`

	Seed    *int64   `json:"semilla,omitempty"`
	Penalty *float64 `json:"penalizacion,omitempty"`
}

// RunRequest is the body of POST /run
type RunRequest struct {
	Catalog    []Item  `json:"catalogo"`
	ActiveIDs  []int   `json:"ids_activos"`
	AreaBudget float64 `json:"area_maxima"`

	// Group is a presentation hint for callers; the optimizer ignores it
	Group bool `json:"agrupar"`

	Params *Params `json:"params,omitempty"`
}

// Metrics describe the best plan found
type Metrics struct {
	AreaUsed       float64 `json:"area_usada"`
	AreaBudget     float64 `json:"area_maxima"`
	TotalGain      float64 `json:"ganancia_total"`
	TotalQuantity  int     `json:"cantidad_total"`
	UtilizationPct float64 `json:"utilizacion_pct"`
}

// History has one entry per generation
type History struct {
	Best []float64 `json:"mejor"`
	Mean []float64 `json:"promedio"`
}

// RunResponse is the body returned by POST /run
type RunResponse struct {
	Best        []int   `json:"mejor_individuo"`
	BestFitness float64 `json:"mejor_fitness"`
	Metrics     Metrics `json:"metricas"`
	History     History `json:"historia"`
	Catalog     []Item  `json:"catalogo_efectivo"`
	Params      Params  `json:"params"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}
