package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/squishy/internal/softbody"
)

// ParamNames lists the slider names accepted by SetParam.
func ParamNames() []string {
	names := make([]string, 0, len(sliders))
	for name := range sliders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var sliders = map[string]func(*softbody.UIParams) *float64{
	"stiffness":  func(u *softbody.UIParams) *float64 { return &u.Stiffness },
	"viscosity":  func(u *softbody.UIParams) *float64 { return &u.Viscosity },
	"gravity":    func(u *softbody.UIParams) *float64 { return &u.Gravity },
	"pressure":   func(u *softbody.UIParams) *float64 { return &u.Pressure },
	"plasticity": func(u *softbody.UIParams) *float64 { return &u.Plasticity },
	"bounce":     func(u *softbody.UIParams) *float64 { return &u.Bounce },
	"friction":   func(u *softbody.UIParams) *float64 { return &u.Friction },
}

// SetParam sets one slider by name. A material override is dropped so the
// slider takes effect.
func (c *Config) SetParam(name string, v float64) error {
	field, ok := sliders[name]
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	*field(&c.Params) = v
	c.Material = nil
	return nil
}

// Param returns the named slider value.
func (c *Config) Param(name string) (float64, error) {
	field, ok := sliders[name]
	if !ok {
		return 0, fmt.Errorf("unknown param: %s", name)
	}
	return *field(&c.Params), nil
}

// SetParams applies every entry of params.
func (c *Config) SetParams(params map[string]float64) error {
	for name, v := range params {
		if err := c.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}
