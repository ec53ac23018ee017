package softbody

import (
	"errors"
	"math"
	"testing"
)

func TestWorldResetIdempotent(t *testing.T) {
	w := NewWorld(Floor(100))
	b := mustAdd(t, w, RingConfig(V(0, 0), 30, 12), DefaultMaterial())
	fresh := mustBody(t, b.Config)

	w.Run(80)
	if err := w.Reset(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := append([]Particle(nil), b.Particles...)
	if err := w.Reset(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range b.Particles {
		if b.Particles[i] != first[i] {
			t.Errorf("particle %d differs between resets", i)
		}
		if b.Particles[i] != fresh.Particles[i] {
			t.Errorf("particle %d differs from construction", i)
		}
	}
	if len(b.Links) != len(fresh.Links) {
		t.Errorf("expected %d links, got %d", len(fresh.Links), len(b.Links))
	}
}

func TestWorldUnknownBody(t *testing.T) {
	w := NewWorld()
	ops := map[string]error{
		"reset":      w.Reset(3),
		"flatten":    w.Flatten(3, 2),
		"roll round": w.RollRound(3),
		"push":       w.Push(3, V(1, 0)),
		"remove":     w.Remove(3),
	}
	for name, err := range ops {
		if !errors.Is(err, ErrUnknownBody) {
			t.Errorf("%s: expected ErrUnknownBody, got %v", name, err)
		}
	}
}

func TestWorldAddBodyValidates(t *testing.T) {
	w := NewWorld()
	m := DefaultMaterial()
	m.Stiffness = 2
	if _, err := w.AddBody(RingConfig(V(0, 0), 10, 8), m); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("expected no bodies, got %d", w.Len())
	}
}

func TestFlattenAndRollRound(t *testing.T) {
	w := NewWorld()
	b := mustAdd(t, w, RingConfig(V(0, 0), 40, 16), zeroGravity())

	if err := w.Flatten(b.ID, 0); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	if err := w.Flatten(b.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Run(300)
	if a := aspect(b); a < 3 {
		t.Errorf("expected a flattened body, got aspect %f", a)
	}

	if err := w.RollRound(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Run(300)
	if a := aspect(b); a > 1.1 {
		t.Errorf("expected a round body, got aspect %f", a)
	}
}

func TestPush(t *testing.T) {
	w := NewWorld()
	b := mustAdd(t, w, RingConfig(V(0, 0), 20, 8), zeroGravity())

	if err := w.Push(b.ID, V(3, -1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := b.Velocity(); !nearVec(v, V(3, -1), 1e-12) {
		t.Errorf("expected velocity (3,-1), got %v", v)
	}
}

func TestSplit(t *testing.T) {
	w := NewWorld()
	b := mustAdd(t, w, RingConfig(V(0, 0), 40, 16), zeroGravity())
	b.Push(V(1, 0))

	left, right, err := w.Split(b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Len() != 2 {
		t.Errorf("expected 2 bodies, got %d", w.Len())
	}
	if _, err := w.Body(b.ID); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("expected parent removed, got %v", err)
	}
	for _, child := range []*Body{left, right} {
		if !near(child.Config.Radius, 40/math.Sqrt2, 1e-9) {
			t.Errorf("expected child radius %f, got %f", 40/math.Sqrt2, child.Config.Radius)
		}
		if len(child.Outline()) != 16 {
			t.Errorf("expected 16 segments, got %d", len(child.Outline()))
		}
		if !nearVec(child.Velocity(), V(1, 0), 1e-9) {
			t.Errorf("expected inherited velocity, got %v", child.Velocity())
		}
	}
	if total := left.BaseArea() + right.BaseArea(); !near(total, math.Pi*1600, 1e-6) {
		t.Errorf("expected area preserved, got %f", total)
	}
	if left.ID == right.ID || left.ID == b.ID {
		t.Errorf("expected fresh ids, got %d and %d", left.ID, right.ID)
	}
}

func TestSplitRejects(t *testing.T) {
	w := NewWorld()
	cloth := mustAdd(t, w, GridConfig(V(0, 0), 20, 20, 3, 3), zeroGravity())
	tiny := mustAdd(t, w, RingConfig(V(100, 0), 5, 8), zeroGravity())

	if _, _, err := w.Split(cloth.ID); !errors.Is(err, ErrTopology) {
		t.Errorf("expected ErrTopology, got %v", err)
	}
	if _, _, err := w.Split(tiny.ID); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	var be *BodyError
	_, _, err := w.Split(cloth.ID)
	if !errors.As(err, &be) || be.BodyID != cloth.ID {
		t.Errorf("expected BodyError for body %d, got %v", cloth.ID, err)
	}
}

func TestMerge(t *testing.T) {
	w := NewWorld()
	a := mustAdd(t, w, RingConfig(V(0, 0), 30, 12), zeroGravity())
	b := mustAdd(t, w, RingConfig(V(100, 0), 40, 16), zeroGravity())

	merged, err := w.Merge(a.ID, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Len() != 1 {
		t.Errorf("expected 1 body, got %d", w.Len())
	}
	if !near(merged.Config.Radius, 50, 1e-9) {
		t.Errorf("expected radius 50, got %f", merged.Config.Radius)
	}
	if merged.Config.Segments != 16 {
		t.Errorf("expected 16 segments, got %d", merged.Config.Segments)
	}
	// area weighted: 900*0 + 1600*100 over 2500
	if c := merged.Centroid(); !nearVec(c, V(64, 0), 1e-6) {
		t.Errorf("expected centroid (64,0), got %v", c)
	}

	if _, err := w.Merge(merged.ID, merged.ID); err == nil {
		t.Error("expected error merging a body with itself")
	}
}

func TestMergeRejectsGrid(t *testing.T) {
	w := NewWorld()
	a := mustAdd(t, w, RingConfig(V(0, 0), 30, 12), zeroGravity())
	cloth := mustAdd(t, w, GridConfig(V(100, 0), 20, 20, 3, 3), zeroGravity())

	if _, err := w.Merge(a.ID, cloth.ID); !errors.Is(err, ErrTopology) {
		t.Errorf("expected ErrTopology, got %v", err)
	}
	if w.Len() != 2 {
		t.Errorf("expected bodies kept, got %d", w.Len())
	}
}

func TestStepTearsCloth(t *testing.T) {
	w := NewWorld()
	cfg := GridConfig(V(0, 0), 40, 40, 5, 5)
	cfg.MaxStretch = 1.5
	cloth := mustAdd(t, w, cfg, DefaultMaterial())
	links := len(cloth.Links)

	corner := ParticleRef{Body: cloth.ID, Index: 24}
	if err := w.SetPosition(corner, V(500, 500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := w.Step()

	if st.Torn == 0 {
		t.Error("expected links to tear")
	}
	if len(cloth.Links) != links-st.Torn {
		t.Errorf("expected %d links after pruning, got %d", links-st.Torn, len(cloth.Links))
	}
	if !w.Valid() {
		t.Error("expected finite positions")
	}
}

func TestSnapshot(t *testing.T) {
	w := NewWorld()
	ring := mustAdd(t, w, RingConfig(V(0, 0), 30, 12), zeroGravity())
	cloth := mustAdd(t, w, GridConfig(V(100, 0), 20, 20, 3, 3), zeroGravity())
	ring.Config.Style = "jelly"

	snaps := w.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Style != "jelly" || len(snaps[0].Outline) != 12 || snaps[0].Segments != nil {
		t.Errorf("unexpected ring snapshot: %+v", snaps[0])
	}
	if len(snaps[1].Segments) != cloth.ActiveLinks() || len(snaps[1].Pinned) != 3 {
		t.Errorf("expected %d segments and 3 pins, got %d and %d", cloth.ActiveLinks(), len(snaps[1].Segments), len(snaps[1].Pinned))
	}

	snaps[0].Outline[0] = V(1e6, 1e6)
	if ring.Particles[0].Pos == V(1e6, 1e6) {
		t.Error("snapshot should not alias body state")
	}
}
