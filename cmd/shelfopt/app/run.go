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

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/shelfopt/cmd/shelfopt/app/options"
	"github.com/mihai-snyk/shelfopt/pkg/analysis"
	"github.com/mihai-snyk/shelfopt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/shelfopt/pkg/optimizer"
	"github.com/mihai-snyk/shelfopt/pkg/util"
)

// NewRunCommand creates the command running one request file
func NewRunCommand(out io.Writer) *cobra.Command {
	o := options.NewRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize the request in a YAML or JSON file and print the best plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return RunFile(klog.NewContext(cmd.Context(), klog.Background()), o, out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// LoadRequest reads a run request from a YAML or JSON file
func LoadRequest(path string) (*v1alpha1.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	req := &v1alpha1.RunRequest{}
	if err := yaml.UnmarshalStrict(data, req); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return req, nil
}

// RunFile optimizes the request in o.RequestFile and writes the result to out
func RunFile(ctx context.Context, o *options.RunOptions, out io.Writer) error {
	req, err := LoadRequest(o.RequestFile)
	if err != nil {
		return err
	}

	res, err := optimizer.New(ctx).Run(ctx, req)
	if err != nil {
		return err
	}

	logger := klog.FromContext(ctx)
	switch {
	case o.ChartFile == "":
	case len(res.History.Best) == 0:
		logger.Info("Skipping convergence chart, the run evolved no generations")
	default:
		title := fmt.Sprintf("Convergence of %s", filepath.Base(o.RequestFile))
		if err := util.PlotConvergence(res.History, title, o.ChartFile); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		logger.V(1).Info("Wrote convergence chart", "path", o.ChartFile)
	}

	switch o.Output {
	case options.OutputJSON:
		data, err := json.MarshalIndent(v1alpha1.Convert_framework_RunResult_To_v1alpha1_RunResponse(res), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	default:
		analysis.Analyze(res, req.Group).Write(out)
		return nil
	}
}
