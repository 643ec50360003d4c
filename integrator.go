package reveal

import "github.com/charmbracelet/harmonica"

// Integrator advances a SpringState by one frame. Implementations must be
// pure: same inputs, same output, no retained state.
type Integrator interface {
	Step(s SpringState, cfg SpringConfig, dt float64) SpringState
}

// EulerIntegrator is the default integrator. See Step.
type EulerIntegrator struct{}

// Step implements Integrator.
func (EulerIntegrator) Step(s SpringState, cfg SpringConfig, dt float64) SpringState {
	return Step(s, cfg, dt)
}

// HarmonicaIntegrator solves the damped oscillator in closed form with
// harmonica instead of integrating numerically. It is exact for any dt, which
// makes long frames less lossy than Euler, at the price of a few exp/sin calls
// per step.
type HarmonicaIntegrator struct{}

// Step implements Integrator.
func (HarmonicaIntegrator) Step(s SpringState, cfg SpringConfig, dt float64) SpringState {
	dt, ok := clampDelta(dt)
	if !ok {
		return s
	}
	spring := harmonica.NewSpring(dt, cfg.AngularFrequency(), cfg.DampingRatio())
	pos, vel := spring.Update(s.Position, s.Velocity, 1)
	return guard(SpringState{Position: pos, Velocity: vel})
}
