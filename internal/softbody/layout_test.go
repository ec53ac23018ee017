package softbody

import (
	"errors"
	"testing"
)

func TestRingLayout(t *testing.T) {
	tests := []struct {
		name      string
		cfg       BodyConfig
		particles int
		links     int
	}{
		{"single ring", RingConfig(V(0, 0), 30, 16), 16, 16},
		{"bending", BodyConfig{Kind: KindRing, Radius: 30, Segments: 16, Rings: 1, Bending: true}, 16, 32},
		{"spokes", BodyConfig{Kind: KindRing, Radius: 30, Segments: 16, Rings: 1, Spokes: true}, 17, 32},
		{"two rings", BodyConfig{Kind: KindRing, Radius: 30, Segments: 8, Rings: 2}, 16, 24},
		{"two rings shear", BodyConfig{Kind: KindRing, Radius: 30, Segments: 8, Rings: 2, Shear: true}, 16, 40},
	}

	for _, tt := range tests {
		b := mustBody(t, tt.cfg)
		if len(b.Particles) != tt.particles {
			t.Errorf("%s: expected %d particles, got %d", tt.name, tt.particles, len(b.Particles))
		}
		if len(b.Links) != tt.links {
			t.Errorf("%s: expected %d links, got %d", tt.name, tt.links, len(b.Links))
		}
		if got := len(b.Outline()); got != tt.cfg.Segments {
			t.Errorf("%s: expected outline of %d, got %d", tt.name, tt.cfg.Segments, got)
		}
	}
}

func TestGridLayout(t *testing.T) {
	b := mustBody(t, GridConfig(V(0, 0), 30, 20, 3, 4))

	if len(b.Particles) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(b.Particles))
	}
	// 9 horizontal, 8 vertical, 12 shear
	if len(b.Links) != 29 {
		t.Errorf("expected 29 links, got %d", len(b.Links))
	}
	for i, p := range b.Particles {
		if want := i < 4; p.Pinned != want {
			t.Errorf("particle %d: expected pinned=%v", i, want)
		}
	}
	if b.Closed() || b.Area() != 0 {
		t.Error("grid should be open with no area")
	}
}

func TestLayoutRestOffsetsCentred(t *testing.T) {
	for _, cfg := range []BodyConfig{
		RingConfig(V(50, -20), 25, 10),
		GridConfig(V(-3, 8), 40, 40, 5, 5),
	} {
		b := mustBody(t, cfg)
		var sum Vec
		for _, p := range b.Particles {
			sum = sum.Add(p.Rest)
		}
		if sum.Length() > 1e-9 {
			t.Errorf("%s: rest offsets should sum to zero, got %v", cfg.Kind, sum)
		}
		for i := range b.Particles {
			if !nearVec(b.RestPosition(i), b.Particles[i].Pos, 1e-9) {
				t.Errorf("%s: particle %d not at rest position", cfg.Kind, i)
			}
		}
	}
}

func TestLayoutInvalid(t *testing.T) {
	tests := []BodyConfig{
		{Kind: KindRing, Radius: 0, Segments: 8, Rings: 1},
		{Kind: KindRing, Radius: 10, Segments: 2, Rings: 1},
		{Kind: KindRing, Radius: 10, Segments: 8, Rings: 0},
		{Kind: KindGrid, Width: 10, Height: 10, Rows: 1, Cols: 4},
		{Kind: "blob"},
		{Kind: KindRing, Radius: 10, Segments: 8, Rings: 1, MaxStretch: 0.5},
	}

	for _, cfg := range tests {
		if _, err := NewBody(cfg, DefaultMaterial()); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%+v: expected ErrInvalidGeometry, got %v", cfg, err)
		}
	}
}
