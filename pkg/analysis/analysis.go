// Package analysis turns a run result into per-item breakdowns and
// convergence statistics, and renders them as text tables.
package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/shelfopt/pkg/constraints"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
	"github.com/mihai-snyk/shelfopt/pkg/objectives"
	"github.com/mihai-snyk/shelfopt/pkg/warmstart"
)

// ItemBreakdown is the share of the shelf taken by one item, or by every
// item sharing a name when results are grouped.
type ItemBreakdown struct {
	Name      string
	IDs       []int
	Quantity  int
	Area      float64
	Gain      float64
	AreaShare float64 // percent of the area budget
}

// HistoryStats summarizes a convergence history
type HistoryStats struct {
	Generations      int
	FinalBest        float64
	FinalMean        float64
	MeanOfBest       float64
	StdDevOfBest     float64
	GenerationOfBest int // first generation (1-based) reaching the highest recorded best; 0 when empty
}

// Baseline is the greedy plan for the same catalog, budget and objective
type Baseline struct {
	Plan     framework.Individual
	Fitness  float64
	AreaUsed float64
	// Improvement is the GA fitness gain over the greedy plan, in percent.
	// Zero when the greedy fitness is zero.
	Improvement float64
}

// Report is everything shown for a finished run
type Report struct {
	Items    []ItemBreakdown
	Metrics  framework.Metrics
	Fitness  float64
	Feasible bool // best plan within stock and area budget; runs without repair may break it
	History  HistoryStats
	Baseline Baseline
	Config   framework.Config
}

// Analyze builds a report for res. With group set, items sharing a display
// name are merged into one row, in order of first appearance.
func Analyze(res *framework.RunResult, group bool) Report {
	return Report{
		Items:    breakdown(res, group),
		Metrics:  res.Metrics,
		Fitness:  res.BestFitness,
		Feasible: feasible(res),
		History:  historyStats(res.History),
		Baseline: baseline(res),
		Config:   res.Config,
	}
}

func feasible(res *framework.RunResult) bool {
	check := constraints.CombineConstraints(
		constraints.StockConstraint(res.Catalog),
		constraints.AreaConstraint(res.Catalog, res.Metrics.AreaBudget),
	)
	return check(res.Best)
}

func baseline(res *framework.RunResult) Baseline {
	plan := warmstart.ForConfig(res.Catalog, res.Metrics.AreaBudget, res.Config)
	b := Baseline{
		Plan:     plan,
		Fitness:  objectives.Fitness(plan, res.Catalog, res.Config, res.Metrics.AreaBudget),
		AreaUsed: framework.TotalArea(plan, res.Catalog),
	}
	if b.Fitness != 0 {
		b.Improvement = (res.BestFitness - b.Fitness) / math.Abs(b.Fitness) * 100
	}
	return b
}

func breakdown(res *framework.RunResult, group bool) []ItemBreakdown {
	rows := make([]ItemBreakdown, 0, len(res.Catalog))
	byName := make(map[string]int)

	for i, it := range res.Catalog {
		q := 0
		if i < len(res.Best) {
			q = res.Best[i]
		}
		area := float64(q) * it.Area
		gain := float64(q) * it.Gain

		if group {
			if idx, ok := byName[it.Name]; ok {
				rows[idx].IDs = append(rows[idx].IDs, it.ID)
				rows[idx].Quantity += q
				rows[idx].Area += area
				rows[idx].Gain += gain
				continue
			}
			byName[it.Name] = len(rows)
		}
		rows = append(rows, ItemBreakdown{
			Name:     it.Name,
			IDs:      []int{it.ID},
			Quantity: q,
			Area:     area,
			Gain:     gain,
		})
	}

	if budget := res.Metrics.AreaBudget; budget > 0 {
		for i := range rows {
			rows[i].AreaShare = rows[i].Area * 100 / budget
		}
	}
	return rows
}

func historyStats(h framework.History) HistoryStats {
	s := HistoryStats{Generations: len(h.Best)}
	if len(h.Best) == 0 {
		return s
	}

	s.FinalBest = h.Best[len(h.Best)-1]
	s.FinalMean = h.Mean[len(h.Mean)-1]
	s.MeanOfBest = stat.Mean(h.Best, nil)
	if len(h.Best) > 1 {
		s.StdDevOfBest = stat.StdDev(h.Best, nil)
	}

	top := h.Best[0]
	s.GenerationOfBest = 1
	for i, b := range h.Best {
		if b > top {
			top = b
			s.GenerationOfBest = i + 1
		}
	}
	return s
}

// Write renders the report as text tables
func (r Report) Write(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Best Plan")
	t.AppendHeader(table.Row{"ITEM", "IDS", "QUANTITY", "AREA", "GAIN", "SHELF %"})
	for _, it := range r.Items {
		t.AppendRow(table.Row{
			it.Name,
			joinInts(it.IDs),
			it.Quantity,
			fmt.Sprintf("%0.2f", it.Area),
			fmt.Sprintf("%0.2f", it.Gain),
			fmt.Sprintf("%0.2f%%", it.AreaShare),
		})
	}
	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		r.Metrics.TotalQuantity,
		fmt.Sprintf("%0.2f", r.Metrics.AreaUsed),
		fmt.Sprintf("%0.2f", r.Metrics.TotalGain),
		fmt.Sprintf("%0.2f%%", r.Metrics.UtilizationPct),
	})
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Run Summary")
	t.AppendRows([]table.Row{
		{"Best fitness", fmt.Sprintf("%0.3f", r.Fitness)},
		{"Feasible", r.Feasible},
		{"Area used / budget", fmt.Sprintf("%0.2f / %0.2f", r.Metrics.AreaUsed, r.Metrics.AreaBudget)},
		{"Utilization", fmt.Sprintf("%0.2f%%", r.Metrics.UtilizationPct)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Generations", r.History.Generations},
		{"Final best / mean", fmt.Sprintf("%0.3f / %0.3f", r.History.FinalBest, r.History.FinalMean)},
		{"Best (mean ± stddev)", fmt.Sprintf("%0.3f ± %0.3f", r.History.MeanOfBest, r.History.StdDevOfBest)},
		{"Peak reached at generation", r.History.GenerationOfBest},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Greedy baseline fitness", fmt.Sprintf("%0.3f", r.Baseline.Fitness)},
		{"Greedy baseline area", fmt.Sprintf("%0.2f", r.Baseline.AreaUsed)},
		{"GA over greedy", fmt.Sprintf("%+0.2f%%", r.Baseline.Improvement)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Population", r.Config.PopulationSize},
		{"Selection", string(r.Config.Selection)},
		{"Objective", string(r.Config.Objective)},
		{"Repair", r.Config.Repair},
		{"Seed", r.Config.Seed},
	})
	t.Render()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ",")
}
