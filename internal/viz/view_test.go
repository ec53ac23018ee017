package viz

import (
	"math"
	"testing"

	"github.com/san-kum/squishy/internal/softbody"
)

func TestFit(t *testing.T) {
	c := NewCanvas(50, 25) // 100x100 dots
	v := Fit(c, 200, 100)
	if v.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %v", v.Scale)
	}
	if v.OffsetX != 0 || v.OffsetY != 25 {
		t.Errorf("expected offsets 0,25, got %v,%v", v.OffsetX, v.OffsetY)
	}
	x, y := v.Dot(softbody.V(200, 100))
	if x != 100 || y != 75 {
		t.Errorf("expected (100,75), got (%d,%d)", x, y)
	}
}

func TestViewRoundTrip(t *testing.T) {
	c := NewCanvas(64, 22)
	v := Fit(c, 400, 300)
	p := v.World(40, 30)
	x, y := v.Dot(p)
	if x != 40 || y != 30 {
		t.Errorf("expected (40,30), got (%d,%d)", x, y)
	}

	cell := v.Cell(10, 5)
	want := v.World(21, 22)
	if math.Abs(cell.X-want.X) > 1e-9 || math.Abs(cell.Y-want.Y) > 1e-9 {
		t.Errorf("expected %v, got %v", want, cell)
	}
}

func TestPolyline(t *testing.T) {
	c := NewCanvas(20, 10)
	v := View{Scale: 1}
	square := []softbody.Vec{softbody.V(0, 0), softbody.V(10, 0), softbody.V(10, 10), softbody.V(0, 10)}

	v.Polyline(c, square, false)
	open := c.Count()
	c.Clear()
	v.Polyline(c, square, true)
	if c.Count() <= open {
		t.Errorf("expected closing edge to add dots, got %d vs %d", c.Count(), open)
	}
	if !c.Get(0, 5) {
		t.Error("expected closing edge at x=0")
	}
}
