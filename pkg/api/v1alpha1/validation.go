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
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ValidateRunRequest validates a defaulted request
func ValidateRunRequest(req *RunRequest) error {
	var errs field.ErrorList

	if req.AreaBudget < 0 || !isFinite(req.AreaBudget) {
		errs = append(errs, field.Invalid(field.NewPath("area_maxima"), req.AreaBudget, "must be a finite number not below 0"))
	}

	catalogPath := field.NewPath("catalogo")
	seen := make(map[int]int, len(req.Catalog))
	for i, it := range req.Catalog {
		p := catalogPath.Index(i)
		if j, ok := seen[it.ID]; ok {
			errs = append(errs, field.Duplicate(p.Child("id"), fmt.Sprintf("%d (also at index %d)", it.ID, j)))
		}
		seen[it.ID] = i
		if it.Area < 0 || !isFinite(it.Area) {
			errs = append(errs, field.Invalid(p.Child("area"), it.Area, "must be a finite number not below 0"))
		}
		if !isFinite(it.Gain) {
			errs = append(errs, field.Invalid(p.Child("ganancia"), it.Gain, "must be a finite number"))
		}
		if it.Stock < 0 {
			errs = append(errs, field.Invalid(p.Child("stock"), it.Stock, "must not be negative"))
		}
	}

	if req.Params == nil {
		errs = append(errs, field.Required(field.NewPath("params"), ""))
	} else {
		errs = append(errs, validateParams(req.Params, field.NewPath("params"))...)
	}

	return errs.ToAggregate()
}

// ValidateParams validates defaulted run parameters
func ValidateParams(p *Params) error {
	return validateParams(p, field.NewPath("params")).ToAggregate()
}

func validateParams(p *Params, root *field.Path) field.ErrorList {
	var errs field.ErrorList

	if p.PopulationSize <= 0 {
		errs = append(errs, field.Invalid(root.Child("tam_poblacion"), p.PopulationSize, "must be greater than 0"))
	}
	if p.Generations < 0 {
		errs = append(errs, field.Invalid(root.Child("num_generaciones"), p.Generations, "must not be negative"))
	}
	if p.CrossoverProbability < 0 || p.CrossoverProbability > 1 {
		errs = append(errs, field.Invalid(root.Child("prob_cruce"), p.CrossoverProbability, "must be between 0 and 1"))
	}
	if p.MutationProbability < 0 || p.MutationProbability > 1 {
		errs = append(errs, field.Invalid(root.Child("prob_mutacion"), p.MutationProbability, "must be between 0 and 1"))
	}
	if p.TournamentSize < 1 {
		errs = append(errs, field.Invalid(root.Child("torneo_k"), p.TournamentSize, "must be at least 1"))
	} else if p.PopulationSize > 0 && p.TournamentSize > p.PopulationSize {
		errs = append(errs, field.Invalid(root.Child("torneo_k"), p.TournamentSize,
			fmt.Sprintf("must not exceed tam_poblacion (%d)", p.PopulationSize)))
	}
	if p.Elitism < 0 {
		errs = append(errs, field.Invalid(root.Child("elitismo"), p.Elitism, "must not be negative"))
	}
	if _, ok := ParseSelection(p.Selection); !ok {
		errs = append(errs, field.NotSupported(root.Child("tipo_seleccion"), p.Selection,
			[]string{SelectionTournament, SelectionRoulette}))
	}
	if _, ok := ParseObjective(p.Objective); !ok {
		errs = append(errs, field.NotSupported(root.Child("modo_objetivo"), p.Objective,
			[]string{ObjectiveGain, ObjectiveQuantityPriority, ObjectiveMixed}))
	}
	if !isFinite(p.Alpha) {
		errs = append(errs, field.Invalid(root.Child("alfa"), p.Alpha, "must be a finite number"))
	}
	if !isFinite(p.Beta) {
		errs = append(errs, field.Invalid(root.Child("beta"), p.Beta, "must be a finite number"))
	}
	if p.Penalty != nil && (*p.Penalty < 0 || !isFinite(*p.Penalty)) {
		errs = append(errs, field.Invalid(root.Child("penalizacion"), *p.Penalty, "must be a finite number not below 0"))
	}

	return errs
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
