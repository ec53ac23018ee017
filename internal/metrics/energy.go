package metrics

import "github.com/san-kum/squishy/internal/softbody"

// KineticEnergy averages ½|v|² per particle over the run, with v the
// one-frame displacement and unit mass.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(w *softbody.World, _ softbody.StepStats) {
	e.last = Kinetic(w)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the energy of the most recent frame.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.samples = 0
	e.total = 0
	e.last = 0
}

// Kinetic returns the mean per-particle kinetic energy of the world.
func Kinetic(w *softbody.World) float64 {
	sum := 0.0
	n := 0
	for _, b := range w.Bodies() {
		for i := range b.Particles {
			sum += 0.5 * b.Particles[i].Velocity().LengthSq()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
