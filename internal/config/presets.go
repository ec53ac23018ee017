package config

import (
	"sort"

	"github.com/san-kum/squishy/internal/softbody"
)

var center = softbody.V(DefaultWidth/2, DefaultHeight/3)

func ring(style string, radius float64, segments int) softbody.BodyConfig {
	b := softbody.RingConfig(center, radius, segments)
	b.Style = style
	return b
}

func toy(name string, params softbody.UIParams, bodies ...softbody.BodyConfig) *Config {
	cfg := DefaultConfig()
	cfg.Toy = name
	cfg.Params = params
	cfg.Bodies = bodies
	return cfg
}

func withRings(b softbody.BodyConfig, rings int, shear, spokes bool) softbody.BodyConfig {
	b.Rings = rings
	b.Shear = shear
	b.Spokes = spokes
	return b
}

func withBending(b softbody.BodyConfig) softbody.BodyConfig {
	b.Bending = true
	return b
}

func withStretch(b softbody.BodyConfig, maxStretch float64) softbody.BodyConfig {
	b.MaxStretch = maxStretch
	return b
}

func cloth() softbody.BodyConfig {
	b := softbody.GridConfig(softbody.V(DefaultWidth/2, 90), 160, 100, 8, 12)
	b.Style = "cloth"
	b.MaxStretch = 3
	return b
}

// Presets holds one config per toy. Toy differences are data: ring counts,
// bracing, break thresholds and slider values.
var Presets = map[string]*Config{
	"jelly": toy("jelly",
		softbody.UIParams{Stiffness: 60, Viscosity: 10, Gravity: 40, Pressure: 60, Bounce: 40, Friction: 20},
		ring("jelly", 50, 20)),
	"slime": toy("slime",
		softbody.UIParams{Stiffness: 20, Viscosity: 40, Gravity: 40, Pressure: 30, Plasticity: 60, Bounce: 5, Friction: 60},
		ring("slime", 55, 24)),
	"water_balloon": toy("water_balloon",
		softbody.UIParams{Stiffness: 40, Viscosity: 5, Gravity: 50, Pressure: 100, Bounce: 60, Friction: 20},
		ring("water_balloon", 50, 24)),
	"stress_ball": toy("stress_ball",
		softbody.UIParams{Stiffness: 50, Viscosity: 30, Gravity: 40, Pressure: 80, Plasticity: 10, Bounce: 20, Friction: 40},
		withRings(ring("stress_ball", 45, 20), 2, true, false)),
	"fat_cat": toy("fat_cat",
		softbody.UIParams{Stiffness: 35, Viscosity: 25, Gravity: 40, Pressure: 70, Bounce: 15, Friction: 50},
		withRings(ring("fat_cat", 60, 24), 2, false, true)),
	"dough": toy("dough",
		softbody.UIParams{Stiffness: 30, Viscosity: 50, Gravity: 40, Pressure: 40, Plasticity: 90, Friction: 80},
		ring("dough", 50, 20)),
	"tire": toy("tire",
		softbody.UIParams{Stiffness: 90, Viscosity: 5, Gravity: 40, Pressure: 90, Bounce: 70, Friction: 30},
		withBending(withRings(ring("tire", 50, 24), 2, true, false))),
	"rubber_band": toy("rubber_band",
		softbody.UIParams{Stiffness: 70, Viscosity: 5, Gravity: 30, Bounce: 80, Friction: 20},
		withStretch(ring("rubber_band", 60, 32), 2.5)),
	"pudding": toy("pudding",
		softbody.UIParams{Stiffness: 25, Viscosity: 20, Gravity: 40, Pressure: 50, Bounce: 10, Friction: 40},
		ring("pudding", 50, 20)),
	"bouncy_castle": toy("bouncy_castle",
		softbody.UIParams{Stiffness: 60, Viscosity: 5, Gravity: 40, Pressure: 100, Bounce: 95, Friction: 10},
		ring("bouncy_castle", 70, 28)),
	"rubber_duck": toy("rubber_duck",
		softbody.UIParams{Stiffness: 80, Viscosity: 10, Gravity: 40, Pressure: 70, Bounce: 50, Friction: 30},
		withBending(ring("rubber_duck", 40, 16))),
	"cloth": toy("cloth",
		softbody.UIParams{Stiffness: 80, Viscosity: 10, Gravity: 40, Friction: 20},
		cloth()),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
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
