package dynamics

import (
	"math"

	"github.com/san-kum/ecosim/internal/ecosys"
)

// Resource returns the environmental resource level at time t, always
// within [0, 1]. Without seasonal variation the level is the constant
// base availability; with it, a sinusoid of the configured amplitude is
// added over a 12-unit season cycle and the sum is clamped.
func Resource(t float64, env *ecosys.EnvironmentParams) float64 {
	base := env.ResourceAvailability
	if !env.SeasonalVariation {
		return base
	}

	level := base + env.SeasonalAmplitude*math.Sin(2*math.Pi*t/ecosys.SeasonPeriod)
	return math.Max(0, math.Min(1, level))
}
