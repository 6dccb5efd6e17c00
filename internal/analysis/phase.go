package analysis

import (
	"fmt"

	"github.com/san-kum/ecosim/internal/dynamics"
	"github.com/san-kum/ecosim/internal/ecosys"
)

// predatorAxisScale sets the predator axis upper bound as a multiple of
// the initial predator population.
const predatorAxisScale = 10.0

// PhasePoint is one raw derivative evaluation on the sampling grid.
type PhasePoint struct {
	Prey      float64 `json:"x"`
	Predator  float64 `json:"y"`
	DPrey     float64 `json:"dx"`
	DPredator float64 `json:"dy"`
}

// PhaseField is a resolution² grid of derivative samples spanning
// [0, carryingCapacity] × [0, 10·predatorInitialPopulation], evaluated
// at the environment's base resource level.
type PhaseField struct {
	Resolution  int          `json:"resolution"`
	PreyMax     float64      `json:"preyMax"`
	PredatorMax float64      `json:"predatorMax"`
	Points      []PhasePoint `json:"points"`
}

// SamplePhaseSpace evaluates the derivative function on the grid.
// Pure and stateless: O(resolution²), no trajectory is integrated.
func SamplePhaseSpace(p *ecosys.Parameters, resolution int) (*PhaseField, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if resolution < 2 {
		return nil, fmt.Errorf("%w: grid resolution must be >= 2, got %d", ecosys.ErrInvalidParameters, resolution)
	}

	model := dynamics.NewModel(p)
	base := model.BaseResource()

	field := &PhaseField{
		Resolution:  resolution,
		PreyMax:     p.Prey.CarryingCapacity,
		PredatorMax: predatorAxisScale * p.Predator.InitialPopulation,
		Points:      make([]PhasePoint, 0, resolution*resolution),
	}

	preyStep := field.PreyMax / float64(resolution-1)
	predatorStep := field.PredatorMax / float64(resolution-1)

	for i := 0; i < resolution; i++ {
		prey := float64(i) * preyStep
		for j := 0; j < resolution; j++ {
			predator := float64(j) * predatorStep
			dPrey, dPredator := model.Derive(prey, predator, base)
			field.Points = append(field.Points, PhasePoint{
				Prey:      prey,
				Predator:  predator,
				DPrey:     dPrey,
				DPredator: dPredator,
			})
		}
	}

	return field, nil
}
