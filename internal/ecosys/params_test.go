package ecosys

import (
	"errors"
	"math"
	"testing"
)

func validParams() *Parameters {
	return &Parameters{
		Prey:        &PreyParams{InitialPopulation: 1000, BirthRate: 1.0, CarryingCapacity: 5000},
		Predator:    &PredatorParams{InitialPopulation: 100, HuntingEfficiency: 0.01, DeathRate: 0.5},
		Environment: &EnvironmentParams{ResourceAvailability: 0.7},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("valid parameters rejected: %v", err)
	}
}

func TestValidateMissingBlocks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"no prey", func(p *Parameters) { p.Prey = nil }},
		{"no predator", func(p *Parameters) { p.Predator = nil }},
		{"no environment", func(p *Parameters) { p.Environment = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestValidateNumericFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		want   error
	}{
		{"negative birth rate", func(p *Parameters) { p.Prey.BirthRate = -1 }, ErrInvalidParameters},
		{"negative death rate", func(p *Parameters) { p.Predator.DeathRate = -0.5 }, ErrInvalidParameters},
		{"NaN resource", func(p *Parameters) { p.Environment.ResourceAvailability = math.NaN() }, ErrInvalidParameters},
		{"Inf population", func(p *Parameters) { p.Prey.InitialPopulation = math.Inf(1) }, ErrInvalidParameters},
		{"zero carrying capacity", func(p *Parameters) { p.Prey.CarryingCapacity = 0 }, ErrNumericDegeneracy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(p)
			err := p.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCloneIndependence(t *testing.T) {
	p := validParams()
	c := p.Clone()

	c.Prey.BirthRate = 99
	if p.Prey.BirthRate == 99 {
		t.Error("clone shares prey block with original")
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Time: 0, Prey: 100, Predator: 10, Resource: 0.5},
		{Time: 0.1, Prey: 150, Predator: 8, Resource: 0.7},
		{Time: 0.2, Prey: 80, Predator: 12, Resource: 0.6},
	}

	s := Summarize(records)

	if s.MaxPrey != 150 || s.MinPrey != 80 {
		t.Errorf("prey bounds wrong: max=%g min=%g", s.MaxPrey, s.MinPrey)
	}
	if s.MaxPredator != 12 || s.MinPredator != 8 {
		t.Errorf("predator bounds wrong: max=%g min=%g", s.MaxPredator, s.MinPredator)
	}
	if s.FinalPrey != 80 || s.FinalPredator != 12 {
		t.Errorf("final values wrong: prey=%g predator=%g", s.FinalPrey, s.FinalPredator)
	}
	if math.Abs(s.AverageResourceLevel-0.6) > 1e-12 {
		t.Errorf("average resource wrong: %g", s.AverageResourceLevel)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.2345, 2); got != 1.23 {
		t.Errorf("Round(1.2345, 2) = %g", got)
	}
	if got := Round(99.96, 1); got != 100.0 {
		t.Errorf("Round(99.96, 1) = %g", got)
	}
}
