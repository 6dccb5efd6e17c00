// Package experiment runs batches of independent simulations over a
// parameter grid and classifies their outcomes.
package experiment

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/ecosim/internal/ecosys"
	"github.com/san-kum/ecosim/internal/sim"
)

// Outcome classifies a run's terminal condition.
type Outcome string

const (
	OutcomeEquilibrium Outcome = "equilibrium"
	OutcomeExtinction  Outcome = "extinction"
	OutcomeCyclic      Outcome = "cyclic"
)

// Axis is one swept parameter with evenly spaced values over [Min, Max].
type Axis struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Values expands the axis into its sample points.
func (a Axis) Values() []float64 {
	if a.Steps < 2 {
		return []float64{a.Min}
	}
	vals := make([]float64, a.Steps)
	step := (a.Max - a.Min) / float64(a.Steps-1)
	for i := range vals {
		vals[i] = a.Min + float64(i)*step
	}
	return vals
}

// Cell is the outcome of one grid point.
type Cell struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Outcome       Outcome `json:"outcome"`
	FinalPrey     float64 `json:"finalPrey"`
	FinalPredator float64 `json:"finalPredator"`
}

// Sweep evaluates the cartesian product of two parameter axes. Each
// cell is a fully independent run, so cells execute concurrently
// without any shared state.
type Sweep struct {
	base    *ecosys.Parameters
	x, y    Axis
	horizon float64
}

// NewSweep builds a sweep around a base parameter set.
func NewSweep(base *ecosys.Parameters, x, y Axis, horizon float64) *Sweep {
	return &Sweep{base: base, x: x, y: y, horizon: horizon}
}

// Run executes every cell and returns them in row-major axis order.
// The first cell error encountered aborts the whole sweep.
func (s *Sweep) Run(ctx context.Context) ([]Cell, error) {
	xs := s.x.Values()
	ys := s.y.Values()

	cells := make([]Cell, len(xs)*len(ys))
	errs := make([]error, len(cells))

	parallelFor(len(cells), func(start, end int) {
		for idx := start; idx < end; idx++ {
			x := xs[idx/len(ys)]
			y := ys[idx%len(ys)]
			cells[idx], errs[idx] = s.runCell(ctx, x, y)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return cells, nil
}

func (s *Sweep) runCell(ctx context.Context, x, y float64) (Cell, error) {
	params := s.base.Clone()
	if err := setParam(params, s.x.Param, x); err != nil {
		return Cell{}, err
	}
	if err := setParam(params, s.y.Param, y); err != nil {
		return Cell{}, err
	}

	eng, err := sim.New(params, sim.WithHorizon(s.horizon))
	if err != nil {
		return Cell{}, fmt.Errorf("cell (%s=%g, %s=%g): %w", s.x.Param, x, s.y.Param, y, err)
	}
	result, err := eng.Run(ctx)
	if err != nil {
		return Cell{}, err
	}

	outcome := OutcomeCyclic
	switch {
	case result.ExtinctionOccurred:
		outcome = OutcomeExtinction
	case result.EquilibriumReached:
		outcome = OutcomeEquilibrium
	}

	return Cell{
		X:             x,
		Y:             y,
		Outcome:       outcome,
		FinalPrey:     result.Summary.FinalPrey,
		FinalPredator: result.Summary.FinalPredator,
	}, nil
}

// setParam writes one addressable parameter by its dotted name.
func setParam(p *ecosys.Parameters, name string, value float64) error {
	switch name {
	case "prey.initial_population":
		p.Prey.InitialPopulation = value
	case "prey.birth_rate":
		p.Prey.BirthRate = value
	case "prey.carrying_capacity":
		p.Prey.CarryingCapacity = value
	case "predator.initial_population":
		p.Predator.InitialPopulation = value
	case "predator.hunting_efficiency":
		p.Predator.HuntingEfficiency = value
	case "predator.death_rate":
		p.Predator.DeathRate = value
	case "environment.resource_availability":
		p.Environment.ResourceAvailability = value
	case "environment.seasonal_amplitude":
		p.Environment.SeasonalAmplitude = value
	default:
		return fmt.Errorf("%w: unknown sweep parameter %q", ecosys.ErrInvalidParameters, name)
	}
	return nil
}

// parallelFor splits [0, n) across workers.
func parallelFor(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
