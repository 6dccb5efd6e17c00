package dynamics

import (
	"math"
	"testing"

	"github.com/san-kum/ecosim/internal/ecosys"
)

func testParams() *ecosys.Parameters {
	return &ecosys.Parameters{
		Prey:        &ecosys.PreyParams{InitialPopulation: 1000, BirthRate: 1.0, CarryingCapacity: 5000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 100, HuntingEfficiency: 0.01, DeathRate: 0.5},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.7},
	}
}

func TestDeriveKnownValues(t *testing.T) {
	m := NewModel(testParams())

	// P=1000, Q=100, r=0.7:
	// dP = 0.7*1000 - 0.01*1000*100 - 1000²/5000 = 700 - 1000 - 200
	// dQ = 0.5*0.01*1000*100 - 0.5*100 = 500 - 50
	dP, dQ := m.Derive(1000, 100, 0.7)

	if math.Abs(dP-(-500)) > 1e-9 {
		t.Errorf("dP = %g, expected -500", dP)
	}
	if math.Abs(dQ-450) > 1e-9 {
		t.Errorf("dQ = %g, expected 450", dQ)
	}
}

func TestDeriveStarvationPenalty(t *testing.T) {
	m := NewModel(testParams())

	// Below the starvation threshold predator mortality doubles.
	_, dQScarce := m.Derive(9, 50, 0.7)
	_, dQFed := m.Derive(11, 50, 0.7)

	wantScarce := 0.5*0.01*9*50 - 0.5*50*2.0
	wantFed := 0.5*0.01*11*50 - 0.5*50
	if math.Abs(dQScarce-wantScarce) > 1e-9 {
		t.Errorf("starved dQ = %g, expected %g", dQScarce, wantScarce)
	}
	if math.Abs(dQFed-wantFed) > 1e-9 {
		t.Errorf("fed dQ = %g, expected %g", dQFed, wantFed)
	}
}

func TestDeriveResourceScalesBirthOnly(t *testing.T) {
	m := NewModel(testParams())

	// The competition term uses the raw birth rate, so halving the
	// resource level removes exactly half the growth term.
	dPFull, _ := m.Derive(500, 0, 1.0)
	dPHalf, _ := m.Derive(500, 0, 0.5)

	if math.Abs((dPFull-dPHalf)-0.5*500) > 1e-9 {
		t.Errorf("resource scaling off: full=%g half=%g", dPFull, dPHalf)
	}
}

func TestDeriveZeroPopulations(t *testing.T) {
	m := NewModel(testParams())

	dP, dQ := m.Derive(0, 0, 0.7)
	if dP != 0 || dQ != 0 {
		t.Errorf("empty system should be static, got dP=%g dQ=%g", dP, dQ)
	}
}

func TestResourceConstantWithoutSeasons(t *testing.T) {
	env := &ecosys.EnvironmentParams{ResourceAvailability: 0.7}

	for _, tm := range []float64{0, 3, 6, 50, 1000} {
		if got := Resource(tm, env); got != 0.7 {
			t.Errorf("Resource(%g) = %g, expected constant 0.7", tm, got)
		}
	}
}

func TestResourceSeasonalBounds(t *testing.T) {
	env := &ecosys.EnvironmentParams{
		ResourceAvailability: 0.8,
		SeasonalVariation:    true,
		SeasonalAmplitude:    0.5,
	}

	for tm := 0.0; tm < 36; tm += 0.25 {
		got := Resource(tm, env)
		if got < 0 || got > 1 {
			t.Fatalf("Resource(%g) = %g outside [0,1]", tm, got)
		}
	}

	// Peak season saturates against the upper clamp.
	if got := Resource(3, env); got != 1.0 {
		t.Errorf("Resource(3) = %g, expected clamp at 1", got)
	}
}

func TestResourceSeasonalPeriod(t *testing.T) {
	env := &ecosys.EnvironmentParams{
		ResourceAvailability: 0.5,
		SeasonalVariation:    true,
		SeasonalAmplitude:    0.3,
	}

	for tm := 0.0; tm < 12; tm += 0.5 {
		a := Resource(tm, env)
		b := Resource(tm+ecosys.SeasonPeriod, env)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("period broken at t=%g: %g vs %g", tm, a, b)
		}
	}
}

func TestInitialState(t *testing.T) {
	m := NewModel(testParams())
	s := m.InitialState()

	if s.Time != 0 || s.Prey != 1000 || s.Predator != 100 {
		t.Errorf("unexpected initial state: %+v", s)
	}
}
