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

package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mihai-snyk/shelfopt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/shelfopt/pkg/metrics"
	"github.com/mihai-snyk/shelfopt/pkg/optimizer"
	"github.com/mihai-snyk/shelfopt/pkg/server"
)

const validBody = `{
	"catalogo": [
		{"id": 1, "nombre": "Mini nevera", "area": 4, "ganancia": 1200, "stock": 5},
		{"id": 2, "nombre": "TV 42\"", "area": 3, "ganancia": 800, "stock": 10},
		{"id": 3, "nombre": "Microondas", "area": 2, "ganancia": 300, "stock": 12}
	],
	"ids_activos": [1, 3],
	"area_maxima": 20,
	"agrupar": true,
	"params": {
		"tam_poblacion": 20,
		"num_generaciones": 10,
		"prob_cruce": 0.6,
		"prob_mutacion": 0.15,
		"torneo_k": 3,
		"elitismo": 2,
		"tipo_seleccion": "ruleta",
		"usar_reparacion": true,
		"modo_objetivo": "mixto",
		"alfa": 1,
		"beta": 0.5,
		"semilla": 42
	}
}`

func newRouter() http.Handler {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	ctx := context.Background()
	o := optimizer.New(ctx, optimizer.WithRecorder(metrics.NewRecorder(reg)))
	return server.NewRouter(ctx, o, reg)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if diff := cmp.Diff(`{"status":"ok"}`, w.Body.String()); diff != "" {
		t.Errorf("unexpected body (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	h := newRouter()
	w := do(t, h, http.MethodPost, "/run", validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp v1alpha1.RunResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Best) != 2 || len(resp.Catalog) != 2 {
		t.Fatalf("expected a plan over the two active items, got %v over %d items", resp.Best, len(resp.Catalog))
	}
	if resp.Catalog[0].ID != 1 || resp.Catalog[1].ID != 3 {
		t.Errorf("unexpected effective catalog %+v", resp.Catalog)
	}
	if resp.Metrics.AreaUsed > 20 || resp.Metrics.AreaBudget != 20 {
		t.Errorf("unexpected metrics %+v", resp.Metrics)
	}
	if len(resp.History.Best) != 10 || len(resp.History.Mean) != 10 {
		t.Errorf("expected 10 history entries, got %d/%d", len(resp.History.Best), len(resp.History.Mean))
	}
	if resp.Params.Selection != v1alpha1.SelectionRoulette || resp.Params.Objective != v1alpha1.ObjectiveMixed {
		t.Errorf("params not echoed: %+v", resp.Params)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("unexpected allow-origin %q", got)
	}

	// Same seed, same answer.
	w2 := do(t, h, http.MethodPost, "/run", validBody)
	if diff := cmp.Diff(w.Body.String(), w2.Body.String()); diff != "" {
		t.Errorf("repeated request differs (-first +second):\n%s", diff)
	}

	m := do(t, h, http.MethodGet, "/metrics", "")
	if !strings.Contains(m.Body.String(), `shelfopt_runs_total{result="success"} 2`) {
		t.Errorf("metrics do not count both runs:\n%s", m.Body.String())
	}
}

func TestRunErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
		code int
	}{
		{name: "Malformed", body: `{"catalogo": [`, code: http.StatusBadRequest},
		{name: "WrongType", body: `{"area_maxima": "lots"}`, code: http.StatusBadRequest},
		{name: "InvalidParams", body: strings.Replace(validBody, `"prob_cruce": 0.6`, `"prob_cruce": 1.5`, 1), code: http.StatusBadRequest},
		{name: "ZeroPopulation", body: strings.Replace(validBody, `"tam_poblacion": 20`, `"tam_poblacion": 0`, 1), code: http.StatusBadRequest},
		{name: "UnknownObjective", body: strings.Replace(validBody, `"mixto"`, `"aleatorio"`, 1), code: http.StatusBadRequest},
		{name: "NoActiveItems", body: strings.Replace(validBody, `[1, 3]`, `[7]`, 1), code: http.StatusUnprocessableEntity},
		{name: "EmptyCatalog", body: `{"catalogo": [], "area_maxima": 10}`, code: http.StatusUnprocessableEntity},
	}

	h := newRouter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/run", tc.body)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
			var resp v1alpha1.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("expected an error body, got %q", w.Body.String())
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/run", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":      "http://example.com",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Methods":     "POST",
		"Access-Control-Allow-Headers":     "content-type",
	}
	got := make(map[string]string, len(want))
	for k := range want {
		got[k] = w.Header().Get(k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected CORS headers (-want +got):\n%s", diff)
	}
}
