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

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"k8s.io/klog/v2"
)

const (
	// TracerName is the instrumentation scope of optimizer spans
	TracerName = "github.com/mihai-snyk/shelfopt"

	DefaultServiceName = "shelfopt"
)

// ShutdownFunc flushes and stops a tracer provider
type ShutdownFunc func(context.Context) error

// Options configures the tracer provider
type Options struct {
	// CollectorEndpoint is the host:port of an OTLP/gRPC collector. Empty
	// disables export.
	CollectorEndpoint string
	ServiceName       string
	// SampleRate is the fraction of root spans kept, in [0,1]
	SampleRate float64
}

// NewTracerProvider returns a provider exporting to opts.CollectorEndpoint,
// or a no-op provider when no endpoint is set. The provider is also
// installed as the global one.
func NewTracerProvider(ctx context.Context, opts Options) (trace.TracerProvider, ShutdownFunc, error) {
	logger := klog.FromContext(ctx)

	if opts.CollectorEndpoint == "" {
		logger.V(2).Info("Tracing disabled, no collector endpoint configured")
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, func(context.Context) error { return nil }, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(opts.CollectorEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRate))),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing enabled", "endpoint", opts.CollectorEndpoint, "service", serviceName, "sampleRate", opts.SampleRate)
	return tp, tp.Shutdown, nil
}
