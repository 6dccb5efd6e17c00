package config

import (
	"sort"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// Presets are the built-in scenarios, covering the model's main
// regimes: damped coexistence, boom/bust overshoot, and collapse.
var Presets = map[string]*Config{
	"baseline": {
		Name:        "baseline",
		Horizon:     DefaultHorizon,
		Prey:        &ecosys.PreyParams{InitialPopulation: 1000, BirthRate: 1.0, CarryingCapacity: 5000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 100, HuntingEfficiency: 0.01, DeathRate: 0.5},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.7},
	},
	"collapse": {
		Name:        "collapse",
		Horizon:     DefaultHorizon,
		Prey:        &ecosys.PreyParams{InitialPopulation: 500, BirthRate: 0.8, CarryingCapacity: 3000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 200, HuntingEfficiency: 0.02, DeathRate: 0.3},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.5},
	},
	"settling": {
		Name:        "settling",
		Horizon:     DefaultHorizon,
		Prey:        &ecosys.PreyParams{InitialPopulation: 50, BirthRate: 1.0, CarryingCapacity: 100},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 8, HuntingEfficiency: 0.1, DeathRate: 2.0},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 1.0},
	},
	"seasonal": {
		Name:    "seasonal",
		Horizon: DefaultHorizon,
		Prey:    &ecosys.PreyParams{InitialPopulation: 800, BirthRate: 0.9, CarryingCapacity: 4000},
		Predator: &ecosys.PredatorParams{
			InitialPopulation: 60, HuntingEfficiency: 0.008, DeathRate: 0.35,
		},
		Environment: &ecosys.EnvironmentParams{
			ResourceAvailability: 0.6,
			SeasonalVariation:    true,
			SeasonalAmplitude:    0.3,
		},
	},
}

// GetPreset returns a deep copy of a named preset, or nil when unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}

	c := *cfg
	prey := *cfg.Prey
	predator := *cfg.Predator
	env := *cfg.Environment
	c.Prey, c.Predator, c.Environment = &prey, &predator, &env
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
