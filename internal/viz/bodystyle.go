package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/squishy/internal/softbody"
)

// BodyStyle draws one body. Toys pick a style through the style tag on
// their layout; the engine never sees it.
type BodyStyle interface {
	Draw(c *Canvas, v View, s softbody.BodySnapshot)
	// Color is the body colour for terminals and exports.
	Color() lipgloss.Color
}

// curveSteps is how many points each outline curve is flattened into.
const curveSteps = 3

type blobStyle struct {
	color lipgloss.Color
}

func (b blobStyle) Color() lipgloss.Color { return b.color }

func (b blobStyle) Draw(c *Canvas, v View, s softbody.BodySnapshot) {
	v.Polyline(c, softbody.Sample(softbody.Smooth(s.Outline, true), curveSteps), false)
	drawPins(c, v, s)
}

// tireStyle adds a rim inside the tread.
type tireStyle struct {
	blobStyle
	rim float64
}

func (t tireStyle) Draw(c *Canvas, v View, s softbody.BodySnapshot) {
	t.blobStyle.Draw(c, v, s)
	inner := make([]softbody.Vec, len(s.Outline))
	for i, p := range s.Outline {
		inner[i] = s.Centroid.Lerp(p, t.rim)
	}
	v.Polyline(c, inner, true)
}

// faceStyle adds two eyes that ride on the centroid and scale with the body.
type faceStyle struct {
	blobStyle
	eyes [2]softbody.Vec
}

func (f faceStyle) Draw(c *Canvas, v View, s softbody.BodySnapshot) {
	f.blobStyle.Draw(c, v, s)
	for _, e := range f.eyes {
		x, y := v.Dot(s.Centroid.Add(e.Mult(s.MeanRadius)))
		c.Dot(x, y, 1)
	}
}

// bandStyle draws the raw outline so stretched segments stay visible.
type bandStyle struct {
	blobStyle
}

func (b bandStyle) Draw(c *Canvas, v View, s softbody.BodySnapshot) {
	v.Polyline(c, s.Outline, true)
	drawPins(c, v, s)
}

type clothStyle struct {
	color lipgloss.Color
}

func (cl clothStyle) Color() lipgloss.Color { return cl.color }

func (cl clothStyle) Draw(c *Canvas, v View, s softbody.BodySnapshot) {
	for _, seg := range s.Segments {
		v.Line(c, seg[0], seg[1])
	}
	drawPins(c, v, s)
}

func drawPins(c *Canvas, v View, s softbody.BodySnapshot) {
	for _, p := range s.Pinned {
		x, y := v.Dot(p)
		c.Dot(x, y, 1)
	}
}

var (
	defaultBlob  = blobStyle{color: lipgloss.Color("#7cf29a")}
	defaultCloth = clothStyle{color: lipgloss.Color("#c8d6ff")}
)

var bodyStyles = map[string]BodyStyle{
	"jelly":         blobStyle{color: lipgloss.Color("#ff5fa2")},
	"slime":         blobStyle{color: lipgloss.Color("#7cf29a")},
	"water_balloon": blobStyle{color: lipgloss.Color("#4fb3ff")},
	"stress_ball":   blobStyle{color: lipgloss.Color("#ffb347")},
	"dough":         blobStyle{color: lipgloss.Color("#f5deb3")},
	"pudding":       blobStyle{color: lipgloss.Color("#e8c07d")},
	"bouncy_castle": blobStyle{color: lipgloss.Color("#ff6b6b")},
	"tire":          tireStyle{blobStyle: blobStyle{color: lipgloss.Color("#9a9a9a")}, rim: 0.55},
	"fat_cat": faceStyle{
		blobStyle: blobStyle{color: lipgloss.Color("#ffa94d")},
		eyes:      [2]softbody.Vec{softbody.V(-0.35, -0.25), softbody.V(0.35, -0.25)},
	},
	"rubber_duck": faceStyle{
		blobStyle: blobStyle{color: lipgloss.Color("#ffe066")},
		eyes:      [2]softbody.Vec{softbody.V(0.2, -0.4), softbody.V(0.45, -0.35)},
	},
	"rubber_band": bandStyle{blobStyle{color: lipgloss.Color("#d9480f")}},
	"cloth":       defaultCloth,
}

// StyleFor returns the style registered for name, falling back on one that
// suits the body kind.
func StyleFor(name string, kind softbody.Kind) BodyStyle {
	if s, ok := bodyStyles[name]; ok {
		return s
	}
	if kind == softbody.KindGrid {
		return defaultCloth
	}
	return defaultBlob
}

// RegisterStyle adds or replaces a named style.
func RegisterStyle(name string, s BodyStyle) {
	bodyStyles[name] = s
}

// DrawWorld renders every snapshot onto c.
func DrawWorld(c *Canvas, v View, snaps []softbody.BodySnapshot) {
	for _, s := range snaps {
		StyleFor(s.Style, s.Kind).Draw(c, v, s)
	}
}
