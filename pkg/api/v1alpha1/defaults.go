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
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultPopulationSize = 100
	DefaultTournamentSize = 3
	DefaultSeed           = int64(42)
	DefaultPenalty        = 1000.0
)

// DefaultParams returns the parameters used when a request carries none
func DefaultParams() *Params {
	p := &Params{
		PopulationSize:       DefaultPopulationSize,
		Generations:          60,
		CrossoverProbability: 0.6,
		MutationProbability:  0.15,
		TournamentSize:       DefaultTournamentSize,
		Elitism:              2,
		Repair:               true,
		Alpha:                1.0,
	}
	SetDefaults_Params(p)
	return p
}

// SetDefaults_RunRequest fills the request parameters in place
func SetDefaults_RunRequest(req *RunRequest) {
	if req.Params == nil {
		klog.V(4).InfoS("Request carries no params, using defaults")
		req.Params = DefaultParams()
		return
	}
	SetDefaults_Params(req.Params)
}

// SetDefaults_Params fills unset enums and optional fields. Numeric sizes
// are left as sent so that a zero population is rejected by validation.
func SetDefaults_Params(p *Params) {
	if p.Selection == "" {
		p.Selection = SelectionTournament
	}
	if p.Objective == "" {
		p.Objective = ObjectiveGain
	}
	if p.Seed == nil {
		p.Seed = ptr.To(DefaultSeed)
	}
	if p.Penalty == nil {
		p.Penalty = ptr.To(DefaultPenalty)
	}
}
