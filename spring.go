package reveal

import (
	"errors"
	"fmt"
	"math"
)

// MaxFrameDelta caps the time step fed to an integrator. Frames that arrive
// later than this (tab backgrounded, dropped frames) are simulated as if only
// MaxFrameDelta elapsed.
const MaxFrameDelta = 1.0 / 30

// ErrInvalidSpring is wrapped by every SpringConfig validation failure.
var ErrInvalidSpring = errors.New("reveal: invalid spring config")

// SpringState is the physical state of a reveal. Position 0 is fully closed,
// 1 is fully revealed. Velocity is in position units per second.
type SpringState struct {
	Position float64
	Velocity float64
}

// SpringConfig holds the spring constants. An engine copies its config at
// construction; later edits to the caller's value have no effect.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
	// Precision is the tolerance applied to both |1-position| and |velocity|
	// when deciding whether the spring has settled.
	Precision float64 `yaml:"precision"`
}

// DefaultSpring is a near-critically damped spring that opens in roughly
// 0.7 seconds.
var DefaultSpring = SpringConfig{
	Stiffness: 170,
	Damping:   26,
	Mass:      1,
	Precision: 0.001,
}

// IsZero reports whether c is the zero value. Option structs treat a zero
// SpringConfig as "use DefaultSpring".
func (c SpringConfig) IsZero() bool {
	return c == SpringConfig{}
}

// Validate checks the config invariants: stiffness and mass positive,
// damping non-negative, precision positive, all finite.
func (c SpringConfig) Validate() error {
	switch {
	case !finite(c.Stiffness) || c.Stiffness <= 0:
		return fmt.Errorf("%w: stiffness must be positive, got %v", ErrInvalidSpring, c.Stiffness)
	case !finite(c.Mass) || c.Mass <= 0:
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidSpring, c.Mass)
	case !finite(c.Damping) || c.Damping < 0:
		return fmt.Errorf("%w: damping must not be negative, got %v", ErrInvalidSpring, c.Damping)
	case !finite(c.Precision) || c.Precision <= 0:
		return fmt.Errorf("%w: precision must be positive, got %v", ErrInvalidSpring, c.Precision)
	}
	return nil
}

// DampingRatio returns c / (2*sqrt(k*m)). 1 is critical damping.
func (c SpringConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// AngularFrequency returns the undamped angular frequency sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// Step advances s by dt seconds toward position 1 using semi-implicit Euler:
// velocity is updated from the spring force first, then position from the new
// velocity. A non-positive dt returns s unchanged and dt is capped at
// MaxFrameDelta. Position is never clamped; overshoot is left to the spring.
func Step(s SpringState, cfg SpringConfig, dt float64) SpringState {
	dt, ok := clampDelta(dt)
	if !ok {
		return s
	}
	accel := (cfg.Stiffness*(1-s.Position) - cfg.Damping*s.Velocity) / cfg.Mass
	next := SpringState{Velocity: s.Velocity + accel*dt}
	next.Position = s.Position + next.Velocity*dt
	return guard(next)
}

// Settled reports whether s is within cfg.Precision of rest at the target.
func Settled(s SpringState, cfg SpringConfig) bool {
	return math.Abs(1-s.Position) < cfg.Precision && math.Abs(s.Velocity) < cfg.Precision
}

func clampDelta(dt float64) (float64, bool) {
	if !(dt > 0) {
		return 0, false
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	return dt, true
}

// guard snaps a state that left the finite reals to rest at the target, so no
// NaN or Inf is ever written to a surface.
func guard(s SpringState) SpringState {
	if !finite(s.Position) || !finite(s.Velocity) {
		return SpringState{Position: 1}
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
