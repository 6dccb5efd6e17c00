package sim

import (
	"math"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// EquilibriumDetector watches the trailing window of recorded samples
// and reports stability when the coefficient of variation of both
// populations falls below the tolerance. The statistics are computed
// over the rounded recorded values, not the raw integration states.
type EquilibriumDetector struct {
	window int
	tol    float64

	prey     []float64
	predator []float64

	stable       bool
	preyMean     float64
	predatorMean float64
}

// NewEquilibriumDetector builds a detector with the contract window
// and tolerance.
func NewEquilibriumDetector() *EquilibriumDetector {
	return &EquilibriumDetector{
		window: ecosys.EquilibriumWindow,
		tol:    ecosys.EquilibriumTolerance,
	}
}

// Observe pushes one recorded sample and re-evaluates stability once
// the window is full.
func (d *EquilibriumDetector) Observe(r ecosys.Record) {
	d.prey = append(d.prey, r.Prey)
	d.predator = append(d.predator, r.Predator)
	if len(d.prey) > d.window {
		d.prey = d.prey[1:]
		d.predator = d.predator[1:]
	}
	if len(d.prey) < d.window {
		d.stable = false
		return
	}

	preyMean, preyCV := meanCV(d.prey)
	predatorMean, predatorCV := meanCV(d.predator)

	d.stable = preyCV < d.tol && predatorCV < d.tol
	d.preyMean = preyMean
	d.predatorMean = predatorMean
}

// Stable returns the window means when the last observation found both
// populations stable.
func (d *EquilibriumDetector) Stable() (preyMean, predatorMean float64, ok bool) {
	if !d.stable {
		return 0, 0, false
	}
	return d.preyMean, d.predatorMean, true
}

// meanCV returns the mean and the coefficient of variation (population
// standard deviation over mean) of xs. A non-positive mean yields an
// infinite CV so an extinct or empty window never reads as stable.
func meanCV(xs []float64) (mean, cv float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if mean <= 0 {
		return mean, math.Inf(1)
	}

	variance := 0.0
	for _, x := range xs {
		dev := x - mean
		variance += dev * dev
	}
	variance /= float64(len(xs))

	return mean, math.Sqrt(variance) / mean
}
