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

// Package metrics exposes optimizer runs as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

const (
	namespace = "shelfopt"

	// Run outcomes used as the "result" label
	ResultSuccess      = "success"
	ResultInvalid      = "invalid"
	ResultEmptyCatalog = "empty_catalog"
)

// Recorder records one observation per finished run
type Recorder struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	generations prometheus.Counter
	bestFitness *prometheus.GaugeVec
	utilization prometheus.Gauge
}

// NewRecorder creates the run collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of optimizer runs by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of successful optimizer runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations evolved across all runs.",
		}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_best_fitness",
			Help:      "Best fitness of the most recent run per objective mode.",
		}, []string{"objective"}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_utilization_percent",
			Help:      "Shelf utilization of the most recent run's best plan.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.runs, r.duration, r.generations, r.bestFitness, r.utilization)
	}
	return r
}

// ObserveRun records a successful run
func (r *Recorder) ObserveRun(res *framework.RunResult, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(ResultSuccess).Inc()
	r.duration.Observe(elapsed.Seconds())
	r.generations.Add(float64(len(res.History.Best)))
	r.bestFitness.WithLabelValues(string(res.Config.Objective)).Set(res.BestFitness)
	r.utilization.Set(res.Metrics.UtilizationPct)
}

// ObserveFailure records a run rejected with the given result label
func (r *Recorder) ObserveFailure(result string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(result).Inc()
}
