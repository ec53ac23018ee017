package softbody

import "testing"

func TestSmoothClosed(t *testing.T) {
	pts := []Vec{V(0, 0), V(10, 0), V(10, 10), V(0, 10)}
	segs := Smooth(pts, true)

	if len(segs) != len(pts) {
		t.Fatalf("expected %d segments, got %d", len(pts), len(segs))
	}
	for i := range segs {
		next := segs[(i+1)%len(segs)]
		if segs[i].To != next.From {
			t.Errorf("segment %d does not join the next: %v vs %v", i, segs[i].To, next.From)
		}
		if segs[i].Ctrl != pts[i] {
			t.Errorf("segment %d: expected control %v, got %v", i, pts[i], segs[i].Ctrl)
		}
	}
}

func TestSmoothOpen(t *testing.T) {
	pts := []Vec{V(0, 0), V(5, 5), V(10, 0), V(15, 5)}
	segs := Smooth(pts, false)

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].From != pts[0] || segs[len(segs)-1].To != pts[3] {
		t.Error("open curve should start and end on the outline endpoints")
	}
}

func TestSample(t *testing.T) {
	segs := Smooth([]Vec{V(0, 0), V(10, 0), V(10, 10)}, true)
	pts := Sample(segs, 4)

	if len(pts) != 13 {
		t.Errorf("expected 13 points, got %d", len(pts))
	}
	if pts[0] != segs[0].From || pts[len(pts)-1] != segs[2].To {
		t.Error("sampled curve should start and end on segment endpoints")
	}
	if got := (Quad{From: V(0, 0), Ctrl: V(1, 2), To: V(2, 0)}).At(0.5); got != V(1, 1) {
		t.Errorf("expected curve midpoint (1,1), got %v", got)
	}
}
