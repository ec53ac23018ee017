// Package metrics summarises a run frame by frame.
package metrics

import "github.com/san-kum/squishy/internal/softbody"

// Metric observes the world after every step.
type Metric interface {
	Name() string
	Observe(w *softbody.World, st softbody.StepStats)
	Value() float64
	Reset()
}

// Default returns the metrics recorded for every run.
func Default() []Metric {
	return []Metric{
		NewAreaRatio(),
		NewRadiusDeviation(),
		NewKineticEnergy(),
		NewStability(DefaultSpeedLimit),
		NewTornLinks(),
	}
}
