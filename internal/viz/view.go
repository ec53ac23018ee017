package viz

import (
	"math"

	"github.com/san-kum/squishy/internal/softbody"
)

// View maps arena coordinates onto canvas dots with a uniform scale. The
// arena is centred on the canvas.
type View struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit returns the view that shows a width by height arena on c.
func Fit(c *Canvas, width, height float64) View {
	dw, dh := c.Dots()
	if width <= 0 || height <= 0 {
		return View{Scale: 1}
	}
	s := math.Min(float64(dw)/width, float64(dh)/height)
	return View{
		Scale:   s,
		OffsetX: (float64(dw) - width*s) / 2,
		OffsetY: (float64(dh) - height*s) / 2,
	}
}

// Dot returns the canvas dot nearest to p.
func (v View) Dot(p softbody.Vec) (int, int) {
	return int(math.Floor(p.X*v.Scale + v.OffsetX)), int(math.Floor(p.Y*v.Scale + v.OffsetY))
}

// World maps a dot back to arena coordinates, at the dot's centre.
func (v View) World(x, y int) softbody.Vec {
	if v.Scale == 0 {
		return softbody.Vec{}
	}
	return softbody.V((float64(x)+0.5-v.OffsetX)/v.Scale, (float64(y)+0.5-v.OffsetY)/v.Scale)
}

// Cell maps a terminal cell of the canvas to arena coordinates at its centre.
func (v View) Cell(col, row int) softbody.Vec {
	return v.World(col*2+1, row*4+2)
}

// Line draws the segment a-b.
func (v View) Line(c *Canvas, a, b softbody.Vec) {
	x0, y0 := v.Dot(a)
	x1, y1 := v.Dot(b)
	c.DrawLine(x0, y0, x1, y1)
}

// Polyline draws consecutive segments through points, closing the loop
// when closed is set.
func (v View) Polyline(c *Canvas, points []softbody.Vec, closed bool) {
	for i := 1; i < len(points); i++ {
		v.Line(c, points[i-1], points[i])
	}
	if closed && len(points) > 2 {
		v.Line(c, points[len(points)-1], points[0])
	}
}
