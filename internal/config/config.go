// Package config loads and saves scenario definitions as YAML,
// validated against a CUE schema before use.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ecosim/internal/ecosys"
)

const (
	DefaultHorizon = ecosys.DefaultHorizon
	DefaultName    = "custom"
)

// Config is one simulation scenario: a named parameter set plus run
// duration.
type Config struct {
	Name        string                    `yaml:"name"`
	Horizon     float64                   `yaml:"horizon"`
	Prey        *ecosys.PreyParams        `yaml:"prey"`
	Predator    *ecosys.PredatorParams    `yaml:"predator"`
	Environment *ecosys.EnvironmentParams `yaml:"environment"`
}

// DefaultConfig returns the baseline scenario.
func DefaultConfig() *Config {
	return &Config{
		Name:        DefaultName,
		Horizon:     DefaultHorizon,
		Prey:        &ecosys.PreyParams{InitialPopulation: 1000, BirthRate: 1.0, CarryingCapacity: 5000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 100, HuntingEfficiency: 0.01, DeathRate: 0.5},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.7},
	}
}

// Load reads a YAML scenario file, validates it against the schema, and
// unmarshals it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchema(path, data); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a scenario to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters assembles the engine parameter set. The blocks are cloned
// so the config remains independent of the run.
func (c *Config) Parameters() *ecosys.Parameters {
	p := &ecosys.Parameters{
		Prey:        c.Prey,
		Predator:    c.Predator,
		Environment: c.Environment,
	}
	return p.Clone()
}
