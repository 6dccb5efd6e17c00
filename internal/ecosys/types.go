package ecosys

import "math"

// State is the full-precision simulation state. Populations are clamped
// at zero after every integration step and never go negative.
type State struct {
	Time     float64
	Prey     float64
	Predator float64
}

// IsValid reports whether the state contains only finite values.
func (s State) IsValid() bool {
	for _, v := range []float64{s.Time, s.Prey, s.Predator} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Record is one trajectory sample. Time is rounded to 2 decimals and
// populations to 1 decimal; internal state keeps full precision.
type Record struct {
	Time     float64 `json:"time"`
	Prey     float64 `json:"prey"`
	Predator float64 `json:"predator"`
	Resource float64 `json:"resource"`
}

// NewRecord rounds a state and its resource level into a Record.
func NewRecord(s State, resource float64) Record {
	return Record{
		Time:     Round(s.Time, 2),
		Prey:     Round(s.Prey, 1),
		Predator: Round(s.Predator, 1),
		Resource: resource,
	}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// EquilibriumPoint is the windowed population mean at the moment the
// stability test first passed. It is set at most once per run.
type EquilibriumPoint struct {
	PreyMean     float64 `json:"preyMean"`
	PredatorMean float64 `json:"predatorMean"`
	TimeReached  float64 `json:"timeReached"`
}

// Summary holds aggregate statistics derived in one pass over the
// recorded trajectory after termination.
type Summary struct {
	MaxPrey              float64 `json:"maxPrey"`
	MinPrey              float64 `json:"minPrey"`
	MaxPredator          float64 `json:"maxPredator"`
	MinPredator          float64 `json:"minPredator"`
	FinalPrey            float64 `json:"finalPrey"`
	FinalPredator        float64 `json:"finalPredator"`
	AverageResourceLevel float64 `json:"averageResourceLevel"`
}

// Result is the complete outcome of a run. Extinction and equilibrium
// are normal terminal outcomes, reported as flags rather than errors.
type Result struct {
	Records            []Record          `json:"records"`
	EquilibriumReached bool              `json:"equilibriumReached"`
	Equilibrium        *EquilibriumPoint `json:"equilibriumPoint,omitempty"`
	ExtinctionOccurred bool              `json:"extinctionOccurred"`
	Summary            Summary           `json:"summary"`
}

// Summarize computes Summary from a recorded trajectory.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{
		MaxPrey:     records[0].Prey,
		MinPrey:     records[0].Prey,
		MaxPredator: records[0].Predator,
		MinPredator: records[0].Predator,
	}
	resourceSum := 0.0

	for _, r := range records {
		s.MaxPrey = math.Max(s.MaxPrey, r.Prey)
		s.MinPrey = math.Min(s.MinPrey, r.Prey)
		s.MaxPredator = math.Max(s.MaxPredator, r.Predator)
		s.MinPredator = math.Min(s.MinPredator, r.Predator)
		resourceSum += r.Resource
	}

	last := records[len(records)-1]
	s.FinalPrey = last.Prey
	s.FinalPredator = last.Predator
	s.AverageResourceLevel = resourceSum / float64(len(records))

	return s
}
