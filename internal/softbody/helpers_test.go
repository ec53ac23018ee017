package softbody

import (
	"math"
	"testing"
)

func zeroGravity() Material {
	m := DefaultMaterial()
	m.Gravity = Vec{}
	return m
}

func mustBody(t *testing.T, cfg BodyConfig) *Body {
	t.Helper()
	b, err := NewBody(cfg, DefaultMaterial())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func mustAdd(t *testing.T, w *World, cfg BodyConfig, m Material) *Body {
	t.Helper()
	b, err := w.AddBody(cfg, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b Vec, tol float64) bool {
	return a.Distance(b) <= tol
}

// aspect returns the ratio of the major to minor spread of the particles.
func aspect(b *Body) float64 {
	c := b.Centroid()
	var sxx, syy, sxy float64
	for _, p := range b.Particles {
		d := p.Pos.Sub(c)
		sxx += d.X * d.X
		syy += d.Y * d.Y
		sxy += d.X * d.Y
	}
	tr := sxx + syy
	disc := math.Sqrt(tr*tr/4 - (sxx*syy - sxy*sxy))
	return math.Sqrt((tr/2 + disc) / (tr/2 - disc))
}
