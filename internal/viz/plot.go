// Package viz renders trajectories and phase fields as terminal
// graphics.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// PlotRecords renders prey, predator, and resource series as stacked
// ASCII charts.
func PlotRecords(records []ecosys.Record, width, height int) string {
	if len(records) == 0 {
		return "no records to plot"
	}

	prey := make([]float64, len(records))
	predator := make([]float64, len(records))
	resource := make([]float64, len(records))
	for i, r := range records {
		prey[i] = r.Prey
		predator[i] = r.Predator
		resource[i] = r.Resource
	}

	var sb strings.Builder
	for _, series := range []struct {
		data    []float64
		caption string
		height  int
	}{
		{prey, "prey population", height},
		{predator, "predator population", height},
		{resource, "resource level", height / 2},
	} {
		sb.WriteString(asciigraph.Plot(series.data,
			asciigraph.Height(series.height),
			asciigraph.Width(width),
			asciigraph.Caption(series.caption),
		))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Sparkline renders a single compact series, for live views.
func Sparkline(data []float64, width, height int, caption string) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// SummaryTable formats a run outcome for terminal output.
func SummaryTable(result *ecosys.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "records:     %d\n", len(result.Records))
	fmt.Fprintf(&sb, "extinction:  %v\n", result.ExtinctionOccurred)
	fmt.Fprintf(&sb, "equilibrium: %v\n", result.EquilibriumReached)
	if result.Equilibrium != nil {
		fmt.Fprintf(&sb, "  point:     prey %.1f, predator %.1f at t=%.2f\n",
			result.Equilibrium.PreyMean, result.Equilibrium.PredatorMean, result.Equilibrium.TimeReached)
	}
	s := result.Summary
	fmt.Fprintf(&sb, "prey:        min %.1f, max %.1f, final %.1f\n", s.MinPrey, s.MaxPrey, s.FinalPrey)
	fmt.Fprintf(&sb, "predator:    min %.1f, max %.1f, final %.1f\n", s.MinPredator, s.MaxPredator, s.FinalPredator)
	fmt.Fprintf(&sb, "resource:    avg %.3f\n", s.AverageResourceLevel)

	return sb.String()
}
