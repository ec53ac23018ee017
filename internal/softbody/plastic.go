package softbody

import "github.com/jakecoffman/cp"

// Plasticize drifts the rest configuration of b toward its current shape:
//
//	rest = lerp(rest, R(-angle)·(pos - centroid), plasticity*PlasticStep)
//
// and re-derives link rest lengths. Sustained load therefore leaves a
// permanent dent. Plasticity 0 leaves the rest state untouched.
func Plasticize(b *Body, plasticity float64) {
	if plasticity <= 0 {
		return
	}
	rate := cp.Clamp01(plasticity * PlasticStep)
	c := b.Centroid()
	angle := b.orient(c)
	for i := range b.Particles {
		p := &b.Particles[i]
		local := rotate(p.Pos.Sub(c), -angle)
		p.Rest = p.Rest.Lerp(local, rate)
	}
	b.syncRestLengths()
}
