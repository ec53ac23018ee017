package viz

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/squishy/internal/softbody"
)

func TestStyleFor(t *testing.T) {
	if _, ok := StyleFor("tire", softbody.KindRing).(tireStyle); !ok {
		t.Error("expected tire style for tire")
	}
	if _, ok := StyleFor("unknown", softbody.KindGrid).(clothStyle); !ok {
		t.Error("expected cloth fallback for grids")
	}
	if _, ok := StyleFor("", softbody.KindRing).(blobStyle); !ok {
		t.Error("expected blob fallback for rings")
	}
}

func TestRegisterStyle(t *testing.T) {
	RegisterStyle("ghost", blobStyle{color: lipgloss.Color("#ffffff")})
	defer delete(bodyStyles, "ghost")
	if StyleFor("ghost", softbody.KindRing).Color() != lipgloss.Color("#ffffff") {
		t.Error("expected registered style")
	}
}

func TestDrawWorld(t *testing.T) {
	w := softbody.NewWorld()
	ring := softbody.RingConfig(softbody.V(100, 100), 40, 16)
	ring.Style = "fat_cat"
	if _, err := w.AddBody(ring, softbody.DefaultMaterial()); err != nil {
		t.Fatal(err)
	}
	cloth := softbody.GridConfig(softbody.V(300, 100), 80, 60, 4, 5)
	cloth.Style = "cloth"
	if _, err := w.AddBody(cloth, softbody.DefaultMaterial()); err != nil {
		t.Fatal(err)
	}

	c := NewCanvas(100, 50)
	v := Fit(c, 400, 200)
	DrawWorld(c, v, w.Snapshot())

	// Outline passes through the rightmost ring particle.
	x, y := v.Dot(softbody.V(140, 100))
	found := false
	for dy := -1; dy <= 1 && !found; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if c.Get(x+dx, y+dy) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected ring outline near (140,100)")
	}
	// Pinned top row of the cloth.
	x, y = v.Dot(softbody.V(260, 70))
	if !c.Get(x, y) {
		t.Error("expected pinned cloth corner to be drawn")
	}
}
