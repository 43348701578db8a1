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

package v1alpha1

import (
	"strings"

	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// ParseSelection maps a wire selection name to its policy
func ParseSelection(s string) (framework.SelectionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SelectionTournament, string(framework.SelectionTournament):
		return framework.SelectionTournament, true
	case SelectionRoulette, string(framework.SelectionRoulette):
		return framework.SelectionRoulette, true
	}
	return "", false
}

// ParseObjective maps a wire objective name to its mode
func ParseObjective(s string) (framework.ObjectiveMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ObjectiveGain, string(framework.ObjectiveGain):
		return framework.ObjectiveGain, true
	case ObjectiveQuantityPriority, string(framework.ObjectiveQuantityPriority):
		return framework.ObjectiveQuantityPriority, true
	case ObjectiveMixed, string(framework.ObjectiveMixed):
		return framework.ObjectiveMixed, true
	}
	return "", false
}

// Convert_v1alpha1_Params_To_framework_Config converts defaulted, validated params
func Convert_v1alpha1_Params_To_framework_Config(in *Params) framework.Config {
	selection, _ := ParseSelection(in.Selection)
	objective, _ := ParseObjective(in.Objective)
	return framework.Config{
		PopulationSize:       in.PopulationSize,
		Generations:          in.Generations,
		CrossoverProbability: in.CrossoverProbability,
		MutationProbability:  in.MutationProbability,
		TournamentSize:       in.TournamentSize,
		Elitism:              in.Elitism,
		Selection:            selection,
		Repair:               in.Repair,
		Penalty:              ptr.Deref(in.Penalty, DefaultPenalty),
		Objective:            objective,
		Alpha:                in.Alpha,
		Beta:                 in.Beta,
		Seed:                 ptr.Deref(in.Seed, DefaultSeed),
	}
}

// Convert_framework_Config_To_v1alpha1_Params converts a config back to wire params
func Convert_framework_Config_To_v1alpha1_Params(in framework.Config) Params {
	selection := SelectionTournament
	if in.Selection == framework.SelectionRoulette {
		selection = SelectionRoulette
	}
	objective := ObjectiveMixed
	switch in.Objective {
	case framework.ObjectiveGain:
		objective = ObjectiveGain
	case framework.ObjectiveQuantityPriority:
		objective = ObjectiveQuantityPriority
	}
	return Params{
		PopulationSize:       in.PopulationSize,
		Generations:          in.Generations,
		CrossoverProbability: in.CrossoverProbability,
		MutationProbability:  in.MutationProbability,
		TournamentSize:       in.TournamentSize,
		Elitism:              in.Elitism,
		Selection:            selection,
		Repair:               in.Repair,
		Objective:            objective,
		Alpha:                in.Alpha,
		Beta:                 in.Beta,
		Seed:                 ptr.To(in.Seed),
		Penalty:              ptr.To(in.Penalty),
	}
}

// Convert_v1alpha1_Items_To_framework_Catalog converts wire items
func Convert_v1alpha1_Items_To_framework_Catalog(in []Item) framework.Catalog {
	out := make(framework.Catalog, len(in))
	for i, it := range in {
		out[i] = framework.Item{ID: it.ID, Name: it.Name, Area: it.Area, Gain: it.Gain, Stock: it.Stock}
	}
	return out
}

// Convert_framework_Catalog_To_v1alpha1_Items converts a catalog to wire items
func Convert_framework_Catalog_To_v1alpha1_Items(in framework.Catalog) []Item {
	out := make([]Item, len(in))
	for i, it := range in {
		out[i] = Item{ID: it.ID, Name: it.Name, Area: it.Area, Gain: it.Gain, Stock: it.Stock}
	}
	return out
}

// Convert_framework_RunResult_To_v1alpha1_RunResponse builds the response body
func Convert_framework_RunResult_To_v1alpha1_RunResponse(in *framework.RunResult) *RunResponse {
	best := make([]int, len(in.Best))
	copy(best, in.Best)
	return &RunResponse{
		Best:        best,
		BestFitness: in.BestFitness,
		Metrics: Metrics{
			AreaUsed:       in.Metrics.AreaUsed,
			AreaBudget:     in.Metrics.AreaBudget,
			TotalGain:      in.Metrics.TotalGain,
			TotalQuantity:  in.Metrics.TotalQuantity,
			UtilizationPct: in.Metrics.UtilizationPct,
		},
		History: History{
			Best: append([]float64{}, in.History.Best...),
			Mean: append([]float64{}, in.History.Mean...),
		},
		Catalog: Convert_framework_Catalog_To_v1alpha1_Items(in.Catalog),
		Params:  Convert_framework_Config_To_v1alpha1_Params(in.Config),
	}
}
