package softbody

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// AccelScale folds dt² into the force accumulator; forces are in px/frame².
	AccelScale = 1.0

	// PlasticStep is the per-frame rest drift at plasticity 1.
	PlasticStep = 0.05

	// DefaultRestingSpeed is the normal speed below which a bounce is dropped.
	DefaultRestingSpeed = 0.5

	DefaultStiffness    = 1.0
	DefaultIterations   = 5
	DefaultDamping      = 0.98
	DefaultGravity      = 0.2
	DefaultPressureGain = 1.5
	DefaultRecovery     = 0.08
	DefaultRestitution  = 0.4
	DefaultFriction     = 0.2

	// MinFill is the fill level of the lowest non-zero pressure slider.
	MinFill = 0.85

	MaxIterations   = 50
	MaxGravity      = 5.0
	MaxPressureGain = 10.0
)

// Material holds the engine-unit parameters applied to a body every frame.
type Material struct {
	Stiffness    float64 `yaml:"stiffness"`
	Iterations   int     `yaml:"iterations"`
	Damping      float64 `yaml:"damping"`
	Gravity      Vec     `yaml:"gravity"`
	Fill         float64 `yaml:"fill"`
	PressureGain float64 `yaml:"pressure_gain"`
	Recovery     float64 `yaml:"recovery"`
	Plasticity   float64 `yaml:"plasticity"`
	Restitution  float64 `yaml:"restitution"`
	Friction     float64 `yaml:"friction"`
}

// DefaultMaterial returns a firm, elastic, unpressurised material under light gravity.
func DefaultMaterial() Material {
	return Material{
		Stiffness:   DefaultStiffness,
		Iterations:  DefaultIterations,
		Damping:     DefaultDamping,
		Gravity:     V(0, DefaultGravity),
		Recovery:    DefaultRecovery,
		Restitution: DefaultRestitution,
		Friction:    DefaultFriction,
	}
}

// Validate rejects parameter combinations the engine cannot keep stable.
// Stability is enforced here rather than inside the step.
func (m Material) Validate() error {
	checks := []struct {
		name   string
		value  float64
		lo, hi float64
		openLo bool
	}{
		{"stiffness", m.Stiffness, 0, 1, true},
		{"damping", m.Damping, 0, 1, true},
		{"fill", m.Fill, 0, 1, false},
		{"pressure_gain", m.PressureGain, 0, MaxPressureGain, false},
		{"recovery", m.Recovery, 0, 0.5, false},
		{"plasticity", m.Plasticity, 0, 1, false},
		{"restitution", m.Restitution, 0, 1, false},
		{"friction", m.Friction, 0, 1, false},
		{"gravity", m.Gravity.Length(), 0, MaxGravity, false},
	}
	for _, c := range checks {
		if c.value > c.hi || c.value < c.lo || (c.openLo && c.value == c.lo) || math.IsNaN(c.value) {
			return fmt.Errorf("%w: %s=%g", ErrParameterBounds, c.name, c.value)
		}
	}
	if m.Iterations < 1 || m.Iterations > MaxIterations {
		return fmt.Errorf("%w: iterations=%d", ErrParameterBounds, m.Iterations)
	}
	return nil
}

// UIParams are the slider values hosts expose, each on a 0-100 scale.
type UIParams struct {
	Stiffness  float64 `yaml:"stiffness"`
	Viscosity  float64 `yaml:"viscosity"`
	Gravity    float64 `yaml:"gravity"`
	Pressure   float64 `yaml:"pressure"`
	Plasticity float64 `yaml:"plasticity"`
	Bounce     float64 `yaml:"bounce"`
	Friction   float64 `yaml:"friction"`
}

// DefaultUIParams matches DefaultMaterial as closely as the slider scales allow.
func DefaultUIParams() UIParams {
	return UIParams{
		Stiffness:  100,
		Viscosity:  10,
		Gravity:    40,
		Pressure:   0,
		Plasticity: 0,
		Bounce:     40,
		Friction:   20,
	}
}

func (u UIParams) Validate() error {
	fields := map[string]float64{
		"stiffness":  u.Stiffness,
		"viscosity":  u.Viscosity,
		"gravity":    u.Gravity,
		"pressure":   u.Pressure,
		"plasticity": u.Plasticity,
		"bounce":     u.Bounce,
		"friction":   u.Friction,
	}
	for name, v := range fields {
		if v < 0 || v > 100 || math.IsNaN(v) {
			return fmt.Errorf("%w: ui %s=%g (want 0-100)", ErrParameterBounds, name, v)
		}
	}
	return nil
}

// Material rescales slider values into engine units. Out-of-range sliders
// are clamped; call Validate first to reject them instead.
func (u UIParams) Material() Material {
	pct := func(v float64) float64 { return cp.Clamp01(v / 100) }

	stiff := pct(u.Stiffness)
	m := Material{
		Stiffness:   0.05 + 0.95*stiff,
		Iterations:  2 + int(stiff*4+0.5),
		Damping:     1 - 0.2*pct(u.Viscosity),
		Gravity:     V(0, 0.5*pct(u.Gravity)),
		Recovery:    0.02 + 0.1*stiff,
		Plasticity:  pct(u.Plasticity),
		Restitution: pct(u.Bounce),
		Friction:    pct(u.Friction),
	}
	// Fill below the rest polygon area would squash the toy, so the slider
	// only spans the inflated end of the range.
	if p := pct(u.Pressure); p > 0 {
		m.Fill = MinFill + (1-MinFill)*p
		m.PressureGain = DefaultPressureGain
	}
	return m
}
