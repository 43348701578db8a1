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

// Package options provides the flags used by the shelfopt commands
package options

import (
	"fmt"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mihai-snyk/shelfopt/pkg/tracing"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// ServerOptions configures "shelfopt serve"
type ServerOptions struct {
	BindAddress string
	Tracing     tracing.Options
}

// NewServerOptions returns the serve defaults
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		BindAddress: ":8000",
		Tracing: tracing.Options{
			ServiceName: tracing.DefaultServiceName,
			SampleRate:  1,
		},
	}
}

// AddFlags adds flags for a specific ServerOptions to the specified FlagSet
func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "bind-address", o.BindAddress, "The address the HTTP server listens on.")
	fs.StringVar(&o.Tracing.CollectorEndpoint, "otlp-endpoint", o.Tracing.CollectorEndpoint, "host:port of an OTLP/gRPC trace collector. Tracing is disabled when empty.")
	fs.StringVar(&o.Tracing.ServiceName, "otlp-service-name", o.Tracing.ServiceName, "Service name attached to exported spans.")
	fs.Float64Var(&o.Tracing.SampleRate, "otlp-sample-rate", o.Tracing.SampleRate, "Fraction of runs traced, between 0 and 1.")
}

// Validate checks the serve flags
func (o *ServerOptions) Validate() error {
	var errs []error
	if o.BindAddress == "" {
		errs = append(errs, fmt.Errorf("--bind-address must not be empty"))
	}
	if o.Tracing.SampleRate < 0 || o.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("--otlp-sample-rate must be between 0 and 1, got %v", o.Tracing.SampleRate))
	}
	return utilerrors.NewAggregate(errs)
}

// RunOptions configures "shelfopt run"
type RunOptions struct {
	RequestFile string
	ChartFile   string
	Output      string
}

// NewRunOptions returns the run defaults
func NewRunOptions() *RunOptions {
	return &RunOptions{Output: OutputTable}
}

// AddFlags adds flags for a specific RunOptions to the specified FlagSet
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.RequestFile, "file", "f", o.RequestFile, "Run request in YAML or JSON.")
	fs.StringVar(&o.ChartFile, "chart", o.ChartFile, "Write an HTML convergence chart to this path.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format: table or json.")
}

// Validate checks the run flags
func (o *RunOptions) Validate() error {
	var errs []error
	if o.RequestFile == "" {
		errs = append(errs, fmt.Errorf("--file is required"))
	}
	if !sets.New(OutputTable, OutputJSON).Has(o.Output) {
		errs = append(errs, fmt.Errorf("--output must be %q or %q, got %q", OutputTable, OutputJSON, o.Output))
	}
	return utilerrors.NewAggregate(errs)
}
