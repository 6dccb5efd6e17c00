// Package integrators provides fixed-step numerical integration for the
// ecosystem model.
package integrators

import "github.com/san-kum/ecosim/internal/ecosys"

// System is any derivative source over (prey, predator, resource).
type System interface {
	Derive(prey, predator, resource float64) (dPrey, dPredator float64)
}

// RK4 is the classic fourth-order Runge-Kutta stepper. The resource
// level is sampled once at the step's start time and reused for all
// four stages: forcing is frozen within a micro-step. Output
// populations are floor-clamped at zero.
type RK4 struct{}

// NewRK4 returns a stateless RK4 stepper.
func NewRK4() *RK4 {
	return &RK4{}
}

// Step advances s by dt under the frozen resource level.
func (r *RK4) Step(sys System, s ecosys.State, resource, dt float64) ecosys.State {
	k1p, k1q := sys.Derive(s.Prey, s.Predator, resource)
	k2p, k2q := sys.Derive(s.Prey+dt*0.5*k1p, s.Predator+dt*0.5*k1q, resource)
	k3p, k3q := sys.Derive(s.Prey+dt*0.5*k2p, s.Predator+dt*0.5*k2q, resource)
	k4p, k4q := sys.Derive(s.Prey+dt*k3p, s.Predator+dt*k3q, resource)

	dt6 := dt / 6.0
	prey := s.Prey + dt6*(k1p+2*k2p+2*k3p+k4p)
	predator := s.Predator + dt6*(k1q+2*k2q+2*k3q+k4q)

	if prey < 0 {
		prey = 0
	}
	if predator < 0 {
		predator = 0
	}

	return ecosys.State{
		Time:     s.Time + dt,
		Prey:     prey,
		Predator: predator,
	}
}
