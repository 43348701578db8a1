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

package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/shelfopt/pkg/algorithms"
	"github.com/mihai-snyk/shelfopt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
	"github.com/mihai-snyk/shelfopt/pkg/metrics"
	"github.com/mihai-snyk/shelfopt/pkg/tracing"
)

const Name = "ShelfOptimizer"

// ErrInvalidRequest wraps every request validation failure
var ErrInvalidRequest = errors.New("invalid request")

// Optimizer turns wire requests into genetic algorithm runs
type Optimizer struct {
	logger   klog.Logger
	recorder *metrics.Recorder
	tracer   trace.Tracer
}

// Option customizes an Optimizer
type Option func(*Optimizer)

// WithRecorder records every run in r
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *Optimizer) {
		o.recorder = r
	}
}

// WithTracerProvider creates run spans from tp instead of the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Optimizer) {
		o.tracer = tp.Tracer(tracing.TracerName)
	}
}

// New builds an optimizer, taking its logger from ctx
func New(ctx context.Context, opts ...Option) *Optimizer {
	o := &Optimizer{
		logger: klog.FromContext(ctx).WithValues("component", Name),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracing.TracerName)
	}
	return o
}

// Name retrieves the optimizer name
func (o *Optimizer) Name() string {
	return Name
}

// Run defaults and validates req, then evolves a plan for it. req is
// defaulted in place. Validation failures wrap ErrInvalidRequest; an empty
// effective catalog wraps framework.ErrEmptyCatalog.
func (o *Optimizer) Run(ctx context.Context, req *v1alpha1.RunRequest) (*framework.RunResult, error) {
	ctx, span := o.tracer.Start(ctx, "Optimizer.Run")
	defer span.End()

	v1alpha1.SetDefaults_RunRequest(req)
	if err := v1alpha1.ValidateRunRequest(req); err != nil {
		o.recorder.ObserveFailure(metrics.ResultInvalid)
		span.SetStatus(codes.Error, "invalid request")
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	catalog := v1alpha1.Convert_v1alpha1_Items_To_framework_Catalog(req.Catalog)
	config := v1alpha1.Convert_v1alpha1_Params_To_framework_Config(req.Params)

	span.SetAttributes(
		attribute.Int("catalog.items", len(catalog)),
		attribute.Int("catalog.active", len(req.ActiveIDs)),
		attribute.Float64("area.budget", req.AreaBudget),
		attribute.Int("ga.population", config.PopulationSize),
		attribute.Int("ga.generations", config.Generations),
		attribute.String("ga.selection", string(config.Selection)),
		attribute.String("ga.objective", string(config.Objective)),
		attribute.Int64("ga.seed", config.Seed),
	)

	logger := o.logger.WithValues("seed", config.Seed, "objective", config.Objective)
	logger.V(1).Info("Optimizer run triggered", "items", len(catalog), "activeIDs", len(req.ActiveIDs), "areaBudget", req.AreaBudget)

	start := time.Now()
	res, err := algorithms.Run(klog.NewContext(ctx, logger), catalog, config, req.AreaBudget, req.ActiveIDs)
	elapsed := time.Since(start)
	if err != nil {
		result := metrics.ResultInvalid
		if errors.Is(err, framework.ErrEmptyCatalog) {
			result = metrics.ResultEmptyCatalog
		} else {
			err = fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		o.recorder.ObserveFailure(result)
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
		logger.V(1).Info("Optimizer run rejected", "reason", result, "err", err)
		return nil, err
	}

	o.recorder.ObserveRun(res, elapsed)
	span.SetAttributes(
		attribute.Float64("result.best_fitness", res.BestFitness),
		attribute.Float64("result.utilization_pct", res.Metrics.UtilizationPct),
	)
	logger.Info("Optimizer run complete",
		"bestFitness", res.BestFitness,
		"areaUsed", res.Metrics.AreaUsed,
		"utilizationPct", res.Metrics.UtilizationPct,
		"elapsed", elapsed)
	return res, nil
}
