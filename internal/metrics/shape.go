package metrics

import (
	"math"

	"github.com/san-kum/squishy/internal/softbody"
)

// AreaRatio averages enclosed area over rest area across all closed bodies
// and frames. 1 means the toys held their volume.
type AreaRatio struct {
	name    string
	sum     float64
	samples int
}

func NewAreaRatio() *AreaRatio {
	return &AreaRatio{name: "area_ratio"}
}

func (a *AreaRatio) Name() string { return a.name }

func (a *AreaRatio) Observe(w *softbody.World, _ softbody.StepStats) {
	for _, b := range w.Bodies() {
		if base := b.BaseArea(); base > 0 {
			a.sum += b.Area() / base
			a.samples++
		}
	}
}

func (a *AreaRatio) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *AreaRatio) Reset() {
	a.sum = 0
	a.samples = 0
}

// RadiusDeviation tracks the largest relative deviation of a closed body's
// mean radius from its configured radius. It measures how far the toys
// wobbled.
type RadiusDeviation struct {
	name string
	max  float64
}

func NewRadiusDeviation() *RadiusDeviation {
	return &RadiusDeviation{name: "radius_deviation"}
}

func (r *RadiusDeviation) Name() string { return r.name }

func (r *RadiusDeviation) Observe(w *softbody.World, _ softbody.StepStats) {
	for _, b := range w.Bodies() {
		if !b.Closed() || b.Config.Radius <= 0 {
			continue
		}
		dev := math.Abs(b.MeanRadius()-b.Config.Radius) / b.Config.Radius
		r.max = math.Max(r.max, dev)
	}
}

func (r *RadiusDeviation) Value() float64 { return r.max }

func (r *RadiusDeviation) Reset() { r.max = 0 }
