package softbody

import "testing"

func squash(b *Body, sx, sy float64) {
	c := b.Centroid()
	for i := range b.Particles {
		d := b.Particles[i].Pos.Sub(c)
		b.Particles[i].Pos = c.Add(V(d.X*sx, d.Y*sy))
	}
}

func TestPlasticizeZeroLeavesRest(t *testing.T) {
	b := mustBody(t, RingConfig(V(10, 10), 40, 12))
	before := make([]Vec, len(b.Particles))
	for i := range b.Particles {
		before[i] = b.Particles[i].Rest
	}
	lengths := make([]float64, len(b.Links))
	for i := range b.Links {
		lengths[i] = b.Links[i].RestLength
	}

	squash(b, 1.5, 0.6)
	for i := 0; i < 100; i++ {
		Plasticize(b, 0)
	}

	for i := range b.Particles {
		if b.Particles[i].Rest != before[i] {
			t.Errorf("particle %d: rest changed from %v to %v", i, before[i], b.Particles[i].Rest)
		}
	}
	for i := range b.Links {
		if b.Links[i].RestLength != lengths[i] {
			t.Errorf("link %d: rest length changed from %f to %f", i, lengths[i], b.Links[i].RestLength)
		}
	}
}

func TestPlasticizeDriftsTowardCurrent(t *testing.T) {
	b := mustBody(t, RingConfig(V(0, 0), 40, 12))
	squash(b, 1.5, 0.6)

	start := b.Links[0].RestLength
	current := b.Links[0].Length(b.Particles)
	Plasticize(b, 1)
	after := b.Links[0].RestLength

	if (after-start)*(current-start) <= 0 || (current-after)*(current-start) <= 0 {
		t.Errorf("expected rest length to move toward %f from %f, got %f", current, start, after)
	}
}

func TestPlasticizeConverges(t *testing.T) {
	b := mustBody(t, RingConfig(V(0, 0), 40, 12))
	squash(b, 1.5, 0.6)

	for i := 0; i < 1000; i++ {
		Plasticize(b, 1)
	}

	for i := range b.Links {
		l := &b.Links[i]
		if got, want := l.RestLength, l.Length(b.Particles); !near(got, want, 1e-6) {
			t.Errorf("link %d: expected rest length %f, got %f", i, want, got)
		}
	}
}
