// Package analysis provides trajectory-free analyses of a parameter
// set: closed-form equilibrium estimation and phase-space sampling.
// Both are read-only and safe to call concurrently with running
// simulations.
package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// capacityCeiling caps the prey estimate at a fraction of the carrying
// capacity, since the linearization ignores logistic pressure.
const capacityCeiling = 0.8

// Prediction is an analytic equilibrium estimate derived from the
// unforced isoclines. It is a coarse heuristic: the linearization
// ignores the logistic and starvation nonlinearities, so it indicates
// rough magnitude, not a guaranteed attractor.
type Prediction struct {
	Prey     float64 `json:"prey"`
	Predator float64 `json:"predator"`
	Stable   bool    `json:"isStable"`
}

// PredictEquilibrium estimates the coexistence point from parameters
// alone. It fails with an error wrapping ecosys.ErrNumericDegeneracy
// when hunting efficiency is zero, rather than returning Inf.
func PredictEquilibrium(p *ecosys.Parameters) (Prediction, error) {
	if err := p.Validate(); err != nil {
		return Prediction{}, err
	}

	h := p.Predator.HuntingEfficiency
	if h == 0 {
		return Prediction{}, fmt.Errorf("%w: hunting_efficiency is zero, prey isocline undefined", ecosys.ErrNumericDegeneracy)
	}

	preyEq := p.Predator.DeathRate / (ecosys.PredationCredit * h)
	predatorEq := p.Prey.BirthRate * p.Environment.ResourceAvailability / h
	adjustedPreyEq := math.Min(preyEq, capacityCeiling*p.Prey.CarryingCapacity)

	return Prediction{
		Prey:     adjustedPreyEq,
		Predator: predatorEq,
		Stable:   adjustedPreyEq > 0 && predatorEq > 0,
	}, nil
}
