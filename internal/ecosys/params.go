package ecosys

import (
	"fmt"
	"math"
)

// Behavioral constants. These are part of the model contract: changing
// any of them changes which parameter regimes produce boom/bust cycles,
// extinction, or equilibrium.
const (
	// Dt is the fixed integration step.
	Dt = 0.01

	// RecordInterval is the trajectory sampling cadence in sim time.
	RecordInterval = 0.1

	// DefaultHorizon is the run duration when none is configured.
	DefaultHorizon = 100.0

	// EquilibriumWindow is the number of trailing recorded samples used
	// for the stability test.
	EquilibriumWindow = 50

	// EquilibriumTolerance is the coefficient-of-variation threshold
	// below which a population is considered stable.
	EquilibriumTolerance = 0.01

	// PostEquilibriumGrace is how much sim time remains after the
	// equilibrium latch before the run is cut short.
	PostEquilibriumGrace = 10.0

	// ExtinctionThreshold terminates the run when either population
	// drops below one individual.
	ExtinctionThreshold = 1.0

	// StarvationThreshold is the prey level below which predator
	// mortality is amplified.
	StarvationThreshold = 10.0

	// StarvationMultiplier scales predator death rate under starvation.
	StarvationMultiplier = 2.0

	// PredationCredit is the fraction of predation converted into
	// predator growth.
	PredationCredit = 0.5

	// SeasonPeriod is the length of one seasonal cycle in sim time.
	SeasonPeriod = 12.0
)

// PreyParams describes the prey population block.
type PreyParams struct {
	InitialPopulation float64 `yaml:"initial_population" json:"initialPopulation"`
	BirthRate         float64 `yaml:"birth_rate" json:"birthRate"`
	CarryingCapacity  float64 `yaml:"carrying_capacity" json:"carryingCapacity"`
}

// PredatorParams describes the predator population block.
type PredatorParams struct {
	InitialPopulation float64 `yaml:"initial_population" json:"initialPopulation"`
	HuntingEfficiency float64 `yaml:"hunting_efficiency" json:"huntingEfficiency"`
	DeathRate         float64 `yaml:"death_rate" json:"deathRate"`
}

// EnvironmentParams describes the resource forcing block.
type EnvironmentParams struct {
	ResourceAvailability float64 `yaml:"resource_availability" json:"resourceAvailability"`
	SeasonalVariation    bool    `yaml:"seasonal_variation" json:"seasonalVariation"`
	SeasonalAmplitude    float64 `yaml:"seasonal_amplitude" json:"seasonalAmplitude"`
}

// Parameters is a complete, immutable scenario parameter set. All three
// blocks are required; Validate rejects a partial set before any state
// is constructed.
type Parameters struct {
	Prey        *PreyParams        `yaml:"prey" json:"prey"`
	Predator    *PredatorParams    `yaml:"predator" json:"predator"`
	Environment *EnvironmentParams `yaml:"environment" json:"environment"`
}

// Validate checks structural and numeric validity. It returns an error
// wrapping ErrInvalidParameters on the first violation found.
func (p *Parameters) Validate() error {
	if p.Prey == nil {
		return fmt.Errorf("%w: missing prey block", ErrInvalidParameters)
	}
	if p.Predator == nil {
		return fmt.Errorf("%w: missing predator block", ErrInvalidParameters)
	}
	if p.Environment == nil {
		return fmt.Errorf("%w: missing environment block", ErrInvalidParameters)
	}

	fields := []struct {
		name string
		val  float64
	}{
		{"prey.initial_population", p.Prey.InitialPopulation},
		{"prey.birth_rate", p.Prey.BirthRate},
		{"prey.carrying_capacity", p.Prey.CarryingCapacity},
		{"predator.initial_population", p.Predator.InitialPopulation},
		{"predator.hunting_efficiency", p.Predator.HuntingEfficiency},
		{"predator.death_rate", p.Predator.DeathRate},
		{"environment.resource_availability", p.Environment.ResourceAvailability},
		{"environment.seasonal_amplitude", p.Environment.SeasonalAmplitude},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameters, f.name)
		}
		if f.val < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidParameters, f.name, f.val)
		}
	}

	// The prey competition term divides by carrying capacity; zero would
	// inject NaN into every step.
	if p.Prey.CarryingCapacity == 0 {
		return fmt.Errorf("%w: prey.carrying_capacity must be > 0", ErrNumericDegeneracy)
	}

	return nil
}

// Clone returns a deep copy, so a caller can hold parameters without
// sharing block pointers with the engine.
func (p *Parameters) Clone() *Parameters {
	c := &Parameters{}
	if p.Prey != nil {
		prey := *p.Prey
		c.Prey = &prey
	}
	if p.Predator != nil {
		pred := *p.Predator
		c.Predator = &pred
	}
	if p.Environment != nil {
		env := *p.Environment
		c.Environment = &env
	}
	return c
}
