package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/squishy/internal/softbody"
	"github.com/san-kum/squishy/internal/viz"
)

// Scene is what one SVG frame shows.
type Scene struct {
	Width, Height float64
	Bodies        []softbody.BodySnapshot
	// Trail is drawn as a polyline under the bodies, e.g. a centroid path.
	Trail []softbody.Vec
	Theme viz.Theme
}

// SceneToSVG draws closed bodies as filled quadratic outlines through the
// midpoints of their edges, open bodies as their active links, and pinned
// particles as dots.
func SceneToSVG(s Scene) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Theme.Background))

	if len(s.Trail) > 1 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3" d="%s"/>
`, s.Theme.Muted, polylinePath(s.Trail)))
	}

	for _, b := range s.Bodies {
		color := viz.StyleFor(b.Style, b.Kind).Color()
		sb.WriteString(fmt.Sprintf(`<g id="body-%d" class="%s">
`, b.ID, b.Style))
		if b.Kind == softbody.KindRing {
			sb.WriteString(fmt.Sprintf(`<path fill="%s" fill-opacity="0.6" stroke="%s" stroke-width="2" d="%s"/>
`, color, color, OutlinePath(b.Outline)))
		} else {
			for _, seg := range b.Segments {
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, color))
			}
		}
		for _, p := range b.Pinned {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, p.X, p.Y, s.Theme.Arena))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// OutlinePath returns SVG path data for a closed smoothed outline.
func OutlinePath(points []softbody.Vec) string {
	segs := softbody.Smooth(points, true)
	if len(segs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("M%.1f,%.1f", segs[0].From.X, segs[0].From.Y))
	for _, q := range segs {
		sb.WriteString(fmt.Sprintf(" Q%.1f,%.1f %.1f,%.1f", q.Ctrl.X, q.Ctrl.Y, q.To.X, q.To.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

func polylinePath(points []softbody.Vec) string {
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, t viz.Theme) string {
	if canvas == nil {
		return ""
	}
	dw, dh := canvas.Dots()
	width, height := float64(dw)*scale, float64(dh)*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, t.Background, t.Arena))

	r := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if canvas.Get(x, y) {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r))
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
