package v1alpha1_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/shelfopt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

func validRequest() *v1alpha1.RunRequest {
	req := &v1alpha1.RunRequest{
		Catalog: []v1alpha1.Item{
			{ID: 1, Name: "Mini nevera", Area: 4, Gain: 1200, Stock: 5},
			{ID: 2, Name: "TV 42\"", Area: 3, Gain: 800, Stock: 10},
		},
		ActiveIDs:  []int{1, 2},
		AreaBudget: 50,
	}
	v1alpha1.SetDefaults_RunRequest(req)
	return req
}

func TestSetDefaults(t *testing.T) {
	t.Run("MissingParams", func(t *testing.T) {
		req := &v1alpha1.RunRequest{}
		v1alpha1.SetDefaults_RunRequest(req)
		want := &v1alpha1.Params{
			PopulationSize:       100,
			Generations:          60,
			CrossoverProbability: 0.6,
			MutationProbability:  0.15,
			TournamentSize:       3,
			Elitism:              2,
			Selection:            v1alpha1.SelectionTournament,
			Repair:               true,
			Objective:            v1alpha1.ObjectiveGain,
			Alpha:                1,
			Seed:                 ptr.To(int64(42)),
			Penalty:              ptr.To(1000.0),
		}
		if diff := cmp.Diff(want, req.Params); diff != "" {
			t.Errorf("defaults mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("KeepsExplicitValues", func(t *testing.T) {
		p := &v1alpha1.Params{
			PopulationSize: 10,
			Generations:    0,
			TournamentSize: 2,
			Selection:      v1alpha1.SelectionRoulette,
			Objective:      v1alpha1.ObjectiveMixed,
			Seed:           ptr.To(int64(7)),
		}
		v1alpha1.SetDefaults_Params(p)
		if p.PopulationSize != 10 || p.Generations != 0 || p.TournamentSize != 2 || *p.Seed != 7 {
			t.Errorf("explicit values overwritten: %+v", p)
		}
		if p.Selection != v1alpha1.SelectionRoulette || p.Objective != v1alpha1.ObjectiveMixed {
			t.Errorf("explicit enums overwritten: %+v", p)
		}
		if p.Penalty == nil || *p.Penalty != v1alpha1.DefaultPenalty {
			t.Errorf("penalty not defaulted: %v", p.Penalty)
		}
	})

	t.Run("KeepsExplicitZeroSizes", func(t *testing.T) {
		req := &v1alpha1.RunRequest{
			Catalog:    []v1alpha1.Item{{ID: 1, Name: "Mini nevera", Area: 4, Gain: 1200, Stock: 5}},
			AreaBudget: 10,
			Params:     &v1alpha1.Params{CrossoverProbability: 0.6},
		}
		v1alpha1.SetDefaults_RunRequest(req)
		if req.Params.PopulationSize != 0 || req.Params.TournamentSize != 0 {
			t.Fatalf("explicit zero sizes overwritten: %+v", req.Params)
		}
		err := v1alpha1.ValidateRunRequest(req)
		if err == nil {
			t.Fatalf("expected a validation error for a zero population")
		}
		for _, field := range []string{"params.tam_poblacion", "params.torneo_k"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("error %q does not mention %s", err, field)
			}
		}
	})
}

func TestValidateRunRequest(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(req *v1alpha1.RunRequest)
		wantField string
	}{
		{name: "Valid", mutate: func(req *v1alpha1.RunRequest) {}},
		{name: "EnglishAliases", mutate: func(req *v1alpha1.RunRequest) {
			req.Params.Selection = "roulette"
			req.Params.Objective = "quantity_priority"
		}},
		{name: "EmptyCatalogIsNotAValidationError", mutate: func(req *v1alpha1.RunRequest) { req.Catalog = nil }},
		{name: "NegativeBudget", mutate: func(req *v1alpha1.RunRequest) { req.AreaBudget = -1 }, wantField: "area_maxima"},
		{name: "DuplicateID", mutate: func(req *v1alpha1.RunRequest) { req.Catalog[1].ID = 1 }, wantField: "catalogo[1].id"},
		{name: "NegativeArea", mutate: func(req *v1alpha1.RunRequest) { req.Catalog[0].Area = -2 }, wantField: "catalogo[0].area"},
		{name: "NegativeStock", mutate: func(req *v1alpha1.RunRequest) { req.Catalog[1].Stock = -1 }, wantField: "catalogo[1].stock"},
		{name: "ZeroPopulation", mutate: func(req *v1alpha1.RunRequest) { req.Params.PopulationSize = 0 }, wantField: "params.tam_poblacion"},
		{name: "NegativeGenerations", mutate: func(req *v1alpha1.RunRequest) { req.Params.Generations = -3 }, wantField: "params.num_generaciones"},
		{name: "CrossoverAboveOne", mutate: func(req *v1alpha1.RunRequest) { req.Params.CrossoverProbability = 2 }, wantField: "params.prob_cruce"},
		{name: "MutationNegative", mutate: func(req *v1alpha1.RunRequest) { req.Params.MutationProbability = -1 }, wantField: "params.prob_mutacion"},
		{name: "TournamentTooLarge", mutate: func(req *v1alpha1.RunRequest) { req.Params.TournamentSize = 101 }, wantField: "params.torneo_k"},
		{name: "NegativeElitism", mutate: func(req *v1alpha1.RunRequest) { req.Params.Elitism = -1 }, wantField: "params.elitismo"},
		{name: "UnknownSelection", mutate: func(req *v1alpha1.RunRequest) { req.Params.Selection = "sorteo" }, wantField: "params.tipo_seleccion"},
		{name: "UnknownObjective", mutate: func(req *v1alpha1.RunRequest) { req.Params.Objective = "volumen" }, wantField: "params.modo_objetivo"},
		{name: "NegativePenalty", mutate: func(req *v1alpha1.RunRequest) { req.Params.Penalty = ptr.To(-5.0) }, wantField: "params.penalizacion"},
		{name: "MissingParams", mutate: func(req *v1alpha1.RunRequest) { req.Params = nil }, wantField: "params"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			err := v1alpha1.ValidateRunRequest(req)

			if tc.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error on %s", tc.wantField)
			}
			if !strings.Contains(err.Error(), tc.wantField) {
				t.Errorf("error %q does not mention %s", err, tc.wantField)
			}
		})
	}
}

func TestConvertParams(t *testing.T) {
	p := v1alpha1.DefaultParams()
	p.Selection = v1alpha1.SelectionRoulette
	p.Objective = v1alpha1.ObjectiveMixed
	p.Alpha = 2
	p.Beta = 1
	p.Seed = ptr.To(int64(9))

	cfg := v1alpha1.Convert_v1alpha1_Params_To_framework_Config(p)
	want := framework.Config{
		PopulationSize:       100,
		Generations:          60,
		CrossoverProbability: 0.6,
		MutationProbability:  0.15,
		TournamentSize:       3,
		Elitism:              2,
		Selection:            framework.SelectionRoulette,
		Repair:               true,
		Penalty:              1000,
		Objective:            framework.ObjectiveMixed,
		Alpha:                2,
		Beta:                 1,
		Seed:                 9,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("converted config does not validate: %v", err)
	}

	back := v1alpha1.Convert_framework_Config_To_v1alpha1_Params(cfg)
	if diff := cmp.Diff(*p, back); diff != "" {
		t.Errorf("params echo mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertRunResult(t *testing.T) {
	res := &framework.RunResult{
		Best:        framework.Individual{1, 2},
		BestFitness: 9,
		Metrics:     framework.Metrics{AreaUsed: 4, AreaBudget: 4, TotalGain: 9, TotalQuantity: 3, UtilizationPct: 100},
		History:     framework.History{Best: []float64{9}, Mean: []float64{7.5}},
		Catalog:     framework.Catalog{{ID: 1, Name: "a", Area: 2, Gain: 5, Stock: 3}, {ID: 2, Name: "b", Area: 1, Gain: 2, Stock: 5}},
		Config:      framework.DefaultConfig(),
	}
	resp := v1alpha1.Convert_framework_RunResult_To_v1alpha1_RunResponse(res)

	if diff := cmp.Diff([]int{1, 2}, resp.Best); diff != "" {
		t.Errorf("best mismatch (-want +got):\n%s", diff)
	}
	if resp.Metrics.UtilizationPct != 100 || resp.Metrics.TotalQuantity != 3 {
		t.Errorf("metrics not converted: %+v", resp.Metrics)
	}
	if len(resp.Catalog) != 2 || resp.Catalog[1].Name != "b" {
		t.Errorf("catalog not converted: %+v", resp.Catalog)
	}
	if resp.Params.Selection != v1alpha1.SelectionTournament || resp.Params.Objective != v1alpha1.ObjectiveGain {
		t.Errorf("params echo uses wrong wire names: %+v", resp.Params)
	}
	res.Best[0] = 99
	if resp.Best[0] != 1 {
		t.Errorf("response aliases the run result")
	}
}
