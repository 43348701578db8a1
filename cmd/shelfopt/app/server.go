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

// Package app implements the shelfopt commands
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/shelfopt/cmd/shelfopt/app/options"
	"github.com/mihai-snyk/shelfopt/pkg/metrics"
	"github.com/mihai-snyk/shelfopt/pkg/optimizer"
	"github.com/mihai-snyk/shelfopt/pkg/server"
	"github.com/mihai-snyk/shelfopt/pkg/tracing"
)

// NewShelfoptCommand creates the root command with its subcommands
func NewShelfoptCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "shelfopt",
		Short:        "shelfopt",
		Long:         "shelfopt chooses how many units of each catalog item to stock on a shelf of fixed area, using a genetic algorithm.",
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	logs.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCommand(), NewRunCommand(out))
	return cmd
}

// NewServeCommand creates the command serving the optimizer over HTTP
func NewServeCommand() *cobra.Command {
	o := options.NewServerOptions()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return Serve(klog.NewContext(ctx, klog.Background()), o)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Serve runs the HTTP server until ctx is cancelled
func Serve(ctx context.Context, o *options.ServerOptions) error {
	logger := klog.FromContext(ctx)

	tp, shutdown, err := tracing.NewTracerProvider(ctx, o.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(err, "Failed to shut down tracer provider")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opt := optimizer.New(ctx,
		optimizer.WithRecorder(metrics.NewRecorder(reg)),
		optimizer.WithTracerProvider(tp),
	)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(ctx, opt, reg)
	if err := server.Run(ctx, o.BindAddress, router); err != nil {
		return fmt.Errorf("serving on %s: %w", o.BindAddress, err)
	}
	return nil
}
