// Package dynamics implements the modified Lotka-Volterra predator-prey
// model with seasonal resource forcing.
package dynamics

import (
	"github.com/san-kum/ecosim/internal/ecosys"
)

// Model evaluates population rates of change for one parameter set.
// State: [P, Q] where P is prey and Q is predator population.
// Equations:
//
//	dP/dt = b·r·P − h·P·Q − b·P²/K
//	dQ/dt = 0.5·h·P·Q − d·Q·s
//
// with birth rate b, resource level r, hunting efficiency h, carrying
// capacity K, death rate d, and starvation factor s = 2 when P < 10,
// else 1. The 0.5 predation credit and the starvation penalty are fixed
// policy constants; together they produce the model's boom/bust and
// extinction regimes.
type Model struct {
	params *ecosys.Parameters
}

// NewModel wraps a validated parameter set. The model itself is
// stateless; concurrent Derive calls are safe.
func NewModel(p *ecosys.Parameters) *Model {
	return &Model{params: p}
}

// Derive returns (dP, dQ) for the given populations and resource level.
func (m *Model) Derive(prey, predator, resource float64) (float64, float64) {
	b := m.params.Prey.BirthRate
	k := m.params.Prey.CarryingCapacity
	h := m.params.Predator.HuntingEfficiency
	d := m.params.Predator.DeathRate

	effectiveBirthRate := b * resource
	dPrey := effectiveBirthRate*prey - h*prey*predator - b*prey*prey/k

	starvation := 1.0
	if prey < ecosys.StarvationThreshold {
		starvation = ecosys.StarvationMultiplier
	}
	dPredator := ecosys.PredationCredit*h*prey*predator - d*predator*starvation

	return dPrey, dPredator
}

// Resource returns the forcing level at time t.
func (m *Model) Resource(t float64) float64 {
	return Resource(t, m.params.Environment)
}

// BaseResource returns the non-seasonal forcing level.
func (m *Model) BaseResource() float64 {
	return m.params.Environment.ResourceAvailability
}

// InitialState builds the state at t=0 from the initial populations.
func (m *Model) InitialState() ecosys.State {
	return ecosys.State{
		Prey:     m.params.Prey.InitialPopulation,
		Predator: m.params.Predator.InitialPopulation,
	}
}

// Params returns the wrapped parameter set.
func (m *Model) Params() *ecosys.Parameters {
	return m.params
}
