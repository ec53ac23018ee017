package metrics

import (
	"math"

	"github.com/san-kum/squishy/internal/softbody"
)

// DefaultSpeedLimit is the per-frame speed above which a particle counts as
// blown up.
const DefaultSpeedLimit = 50.0

// Stability is the fraction of frames with finite positions and no particle
// faster than the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(w *softbody.World, _ softbody.StepStats) {
	s.samples++
	if !w.Valid() {
		s.violations++
		return
	}
	for _, b := range w.Bodies() {
		for i := range b.Particles {
			if v := b.Particles[i].Velocity().Length(); v > s.threshold || math.IsNaN(v) {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
