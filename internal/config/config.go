package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/squishy/internal/softbody"
)

const (
	DefaultFrames = 600
	DefaultWidth  = 400.0
	DefaultHeight = 300.0
	DefaultToy    = "jelly"

	DefaultPointerRadius   = 30.0
	DefaultPointerStrength = 4.0
)

type Config struct {
	Toy    string            `yaml:"toy"`
	Frames int               `yaml:"frames"`
	Seed   int64             `yaml:"seed"`
	Arena  Arena             `yaml:"arena"`
	Params softbody.UIParams `yaml:"params"`

	// Material overrides the rescaled Params when set.
	Material *softbody.Material    `yaml:"material,omitempty"`
	Bodies   []softbody.BodyConfig `yaml:"bodies"`
	Pointer  PointerConfig         `yaml:"pointer"`
	Events   []Event               `yaml:"events,omitempty"`
}

// Arena is the rectangle the bodies live in. Without walls only the floor
// at Height bounds the scene.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Walls  bool    `yaml:"walls"`
}

type PointerConfig struct {
	Tool     string  `yaml:"tool"`
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

// Event is a scripted interaction fired at a given frame.
type Event struct {
	Frame    int          `yaml:"frame"`
	Action   string       `yaml:"action"`
	Body     int          `yaml:"body"`
	Other    int          `yaml:"other"`
	Index    int          `yaml:"index"`
	At       softbody.Vec `yaml:"at"`
	Radius   float64      `yaml:"radius"`
	Strength float64      `yaml:"strength"`
	Factor   float64      `yaml:"factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Toy:    DefaultToy,
		Frames: DefaultFrames,
		Arena:  Arena{Width: DefaultWidth, Height: DefaultHeight, Walls: true},
		Params: softbody.DefaultUIParams(),
		Bodies: []softbody.BodyConfig{
			softbody.RingConfig(softbody.V(DefaultWidth/2, DefaultHeight/3), 50, 20),
		},
		Pointer: PointerConfig{
			Tool:     softbody.Poke.String(),
			Radius:   DefaultPointerRadius,
			Strength: DefaultPointerStrength,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the named toy preset (or the defaults) and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Toy string `yaml:"toy"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	cfg := GetPreset(head.Toy)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configs the engine cannot run stably. This is the only
// place parameter ranges are enforced.
func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames=%d", softbody.ErrParameterBounds, c.Frames)
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena %gx%g", softbody.ErrInvalidGeometry, c.Arena.Width, c.Arena.Height)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.EngineMaterial().Validate(); err != nil {
		return fmt.Errorf("material: %w", err)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", softbody.ErrInvalidGeometry)
	}
	for i, b := range c.Bodies {
		if _, err := softbody.NewBody(b, c.EngineMaterial()); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	if _, err := softbody.ParseTool(c.Pointer.Tool); err != nil {
		return fmt.Errorf("pointer: %w", err)
	}
	if c.Pointer.Radius <= 0 {
		return fmt.Errorf("%w: pointer radius=%g", softbody.ErrParameterBounds, c.Pointer.Radius)
	}
	for i, e := range c.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// EngineMaterial returns the material every body is built with.
func (c *Config) EngineMaterial() softbody.Material {
	if c.Material != nil {
		return *c.Material
	}
	return c.Params.Material()
}

// Planes returns the static bounds of the arena.
func (c *Config) Planes() []softbody.Plane {
	if c.Arena.Walls {
		return softbody.Box(0, 0, c.Arena.Width, c.Arena.Height)
	}
	return []softbody.Plane{softbody.Floor(c.Arena.Height)}
}

// NewPointer builds the pointer described by the config.
func (c *Config) NewPointer() *softbody.Pointer {
	tool, err := softbody.ParseTool(c.Pointer.Tool)
	if err != nil {
		tool = softbody.Poke
	}
	return softbody.NewPointer(tool, c.Pointer.Radius, c.Pointer.Strength)
}

// Build creates a world holding every configured body.
func (c *Config) Build() (*softbody.World, error) {
	w := softbody.NewWorld(c.Planes()...)
	m := c.EngineMaterial()
	for i, b := range c.Bodies {
		if _, err := w.AddBody(b, m); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return w, nil
}

// Clone returns a deep copy safe to mutate.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = append([]softbody.BodyConfig(nil), c.Bodies...)
	out.Events = append([]Event(nil), c.Events...)
	if c.Material != nil {
		m := *c.Material
		out.Material = &m
	}
	return &out
}
