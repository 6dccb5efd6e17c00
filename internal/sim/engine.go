// Package sim orchestrates ecosystem simulation runs: stepping,
// recording cadence, extinction and equilibrium monitoring, and
// termination.
package sim

import (
	"context"
	"math"

	"github.com/san-kum/ecosim/internal/dynamics"
	"github.com/san-kum/ecosim/internal/ecosys"
	"github.com/san-kum/ecosim/internal/integrators"
	"github.com/san-kum/ecosim/internal/logging"
)

// DefaultBatch is the number of micro-steps advanced per streaming
// batch when the caller does not ask for a specific count.
const DefaultBatch = 10

// cadenceEpsilon absorbs the accumulation error of repeated dt adds so
// the record cadence does not drift by one micro-step.
const cadenceEpsilon = 1e-9

// Engine drives one simulation run. Each Engine is an isolated value:
// independent engines may run concurrently without coordination, but a
// single Engine is not safe for concurrent use.
type Engine struct {
	params *ecosys.Parameters
	model  *dynamics.Model
	integ  *integrators.RK4

	state      ecosys.State
	horizon    float64
	records    []ecosys.Record
	lastRecord float64

	equil     *EquilibriumDetector
	eqReached bool
	eqPoint   *ecosys.EquilibriumPoint

	extinct   bool
	done      bool
	finalized bool
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithHorizon overrides the default run duration.
func WithHorizon(h float64) Option {
	return func(e *Engine) { e.horizon = h }
}

// New validates params and builds the initial state. It fails with an
// error wrapping ecosys.ErrInvalidParameters or ErrNumericDegeneracy
// before any state exists.
func New(params *ecosys.Parameters, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := params.Clone()
	model := dynamics.NewModel(p)

	e := &Engine{
		params:     p,
		model:      model,
		integ:      integrators.NewRK4(),
		state:      model.InitialState(),
		horizon:    DefaultHorizon(),
		lastRecord: math.Inf(-1),
		equil:      NewEquilibriumDetector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// DefaultHorizon returns the configured default run duration.
func DefaultHorizon() float64 { return ecosys.DefaultHorizon }

// State returns the current full-precision state.
func (e *Engine) State() ecosys.State { return e.state }

// Resource returns the forcing level at the current time.
func (e *Engine) Resource() float64 { return e.model.Resource(e.state.Time) }

// Horizon returns the current run horizon; an equilibrium latch may
// have shrunk it below the configured value.
func (e *Engine) Horizon() float64 { return e.horizon }

// Done reports whether the run has terminated.
func (e *Engine) Done() bool { return e.done }

// Extinct reports whether a population dropped below one individual.
func (e *Engine) Extinct() bool { return e.extinct }

// EquilibriumReached reports whether the stability latch has fired.
func (e *Engine) EquilibriumReached() bool { return e.eqReached }

// step performs one loop iteration: emit a record if the cadence is
// due, advance one integration step, then run the extinction and
// equilibrium checks. Extinction terminates immediately; equilibrium
// shrinks the remaining horizon.
func (e *Engine) step() {
	if e.state.Time >= e.horizon {
		e.done = true
		return
	}

	if e.state.Time-e.lastRecord >= ecosys.RecordInterval-cadenceEpsilon {
		e.record()
	}

	r := e.model.Resource(e.state.Time)
	e.state = e.integ.Step(e.model, e.state, r, ecosys.Dt)

	if e.state.Prey < ecosys.ExtinctionThreshold || e.state.Predator < ecosys.ExtinctionThreshold {
		e.extinct = true
		e.done = true
		return
	}

	if !e.eqReached {
		if preyMean, predatorMean, ok := e.equil.Stable(); ok {
			e.eqReached = true
			e.eqPoint = &ecosys.EquilibriumPoint{
				PreyMean:     preyMean,
				PredatorMean: predatorMean,
				TimeReached:  e.state.Time,
			}
			if shrunk := e.state.Time + ecosys.PostEquilibriumGrace; shrunk < e.horizon {
				e.horizon = shrunk
			}
		}
	}

	if e.state.Time >= e.horizon {
		e.done = true
	}
}

// record appends a rounded trajectory sample and feeds the equilibrium
// window.
func (e *Engine) record() {
	rec := ecosys.NewRecord(e.state, e.model.Resource(e.state.Time))
	e.records = append(e.records, rec)
	e.lastRecord = e.state.Time
	if !e.eqReached {
		e.equil.Observe(rec)
	}
}

// finalize force-emits the last state as a record exactly once, so the
// final state is always represented even off-cadence.
func (e *Engine) finalize() {
	if e.finalized {
		return
	}
	e.finalized = true
	e.records = append(e.records, ecosys.NewRecord(e.state, e.model.Resource(e.state.Time)))
}

// Run executes the simulation to completion and returns the result.
// The computation is pure and deterministic: identical parameters
// produce identical record sequences.
func (e *Engine) Run(ctx context.Context) (*ecosys.Result, error) {
	log := logging.FromContext(ctx)
	for !e.done {
		select {
		case <-ctx.Done():
			return e.Result(), ctx.Err()
		default:
		}
		e.step()
	}
	switch {
	case e.extinct:
		log.Debug("run finished", "outcome", "extinction", "time", e.state.Time)
	case e.eqReached:
		log.Debug("run finished", "outcome", "equilibrium", "time", e.eqPoint.TimeReached)
	default:
		log.Debug("run finished", "outcome", "horizon", "time", e.state.Time)
	}
	return e.Result(), nil
}

// Advance runs up to steps micro-steps atomically and returns the raw
// state afterwards. A non-positive count uses DefaultBatch. Extinction
// is checked after every micro-step, so a batch may terminate the run
// early. The caller owns delivery cadence; the engine performs no
// blocking I/O.
func (e *Engine) Advance(steps int) ecosys.State {
	if steps <= 0 {
		steps = DefaultBatch
	}
	for i := 0; i < steps && !e.done; i++ {
		e.step()
	}
	return e.state
}

// Result snapshots the run outcome. Once the run has terminated the
// final state is force-recorded and the summary is computed in one
// pass over the records.
func (e *Engine) Result() *ecosys.Result {
	if e.done {
		e.finalize()
	}
	records := make([]ecosys.Record, len(e.records))
	copy(records, e.records)

	var eq *ecosys.EquilibriumPoint
	if e.eqPoint != nil {
		point := *e.eqPoint
		eq = &point
	}

	return &ecosys.Result{
		Records:            records,
		EquilibriumReached: e.eqReached,
		Equilibrium:        eq,
		ExtinctionOccurred: e.extinct,
		Summary:            ecosys.Summarize(records),
	}
}
