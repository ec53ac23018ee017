package analysis

import (
	"math"

	"github.com/san-kum/squishy/internal/experiment"
)

// DefaultSettleTolerance is the mean-radius band, in pixels, a settled body stays in.
const DefaultSettleTolerance = 0.5

// SettleFrame returns the index after which every value stays within tol of
// the final value, or -1 for an empty series.
func SettleFrame(data []float64, tol float64) int {
	if len(data) == 0 {
		return -1
	}
	final := data[len(data)-1]
	for i := len(data) - 1; i >= 0; i-- {
		if math.Abs(data[i]-final) > tol {
			return i + 1
		}
	}
	return 0
}

func RadiusSeries(samples []experiment.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.MeanRadius
	}
	return out
}

func KineticSeries(samples []experiment.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Kinetic
	}
	return out
}

func HeightSeries(samples []experiment.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.CentroidY
	}
	return out
}

// Report summarises a run.
type Report struct {
	Frames        int
	FinalRadius   float64
	MinRadius     float64
	MaxRadius     float64
	WobblePeriod  float64
	Wobbles       bool
	SettleFrame   int
	PeakKinetic   float64
	FinalKinetic  float64
	LinksLost     int
	ContactFrames int
}

// Analyze builds a Report from samples. Settling is judged on mean radius
// within settleTol pixels.
func Analyze(samples []experiment.Sample, settleTol float64) Report {
	r := Report{Frames: len(samples), MinRadius: math.Inf(1), MaxRadius: math.Inf(-1)}
	if len(samples) == 0 {
		r.MinRadius, r.MaxRadius = 0, 0
		return r
	}

	radius := RadiusSeries(samples)
	for _, v := range radius {
		r.MinRadius = math.Min(r.MinRadius, v)
		r.MaxRadius = math.Max(r.MaxRadius, v)
	}
	r.FinalRadius = radius[len(radius)-1]
	r.WobblePeriod, r.Wobbles = DominantPeriod(radius)
	r.SettleFrame = SettleFrame(radius, settleTol)

	for _, s := range samples {
		r.PeakKinetic = math.Max(r.PeakKinetic, s.Kinetic)
		if s.Contacts > 0 {
			r.ContactFrames++
		}
	}
	last := samples[len(samples)-1]
	r.FinalKinetic = last.Kinetic
	r.LinksLost = samples[0].Links - last.Links
	return r
}
