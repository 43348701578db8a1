package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// ConvergenceChart builds a line chart of the best and mean fitness of every generation.
func ConvergenceChart(history framework.History, title string) (*charts.Line, error) {
	if len(history.Best) == 0 {
		return nil, fmt.Errorf("history is empty for %s", title)
	}
	if len(history.Best) != len(history.Mean) {
		return nil, fmt.Errorf("history for %s has %d best and %d mean entries", title, len(history.Best), len(history.Mean))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Generation",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(history.Best))
	best := make([]opts.LineData, len(history.Best))
	mean := make([]opts.LineData, len(history.Mean))
	for i := range history.Best {
		generations[i] = i + 1
		best[i] = opts.LineData{Value: history.Best[i]}
		mean[i] = opts.LineData{Value: history.Mean[i]}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Mean", mean).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return line, nil
}

// RenderConvergence writes the convergence chart of history as an HTML page to w.
func RenderConvergence(w io.Writer, history framework.History, title string) error {
	line, err := ConvergenceChart(history, title)
	if err != nil {
		return err
	}
	return line.Render(w)
}

// PlotConvergence writes the convergence chart of history to an HTML file.
// The file name defaults to "convergence.html".
func PlotConvergence(history framework.History, title string, outputPath ...string) error {
	filename := "convergence.html"
	if len(outputPath) > 0 && outputPath[0] != "" {
		filename = outputPath[0]
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return RenderConvergence(f, history, title)
}
