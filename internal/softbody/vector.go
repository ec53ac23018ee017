package softbody

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is the 2D vector type of the engine. Screen convention: +Y points down.
type Vec = cp.Vector

// V is shorthand for a Vec literal.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func rotate(v Vec, angle float64) Vec {
	return v.Rotate(cp.ForAngle(angle))
}

func finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func mean(points []Vec) Vec {
	if len(points) == 0 {
		return Vec{}
	}
	var sum Vec
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mult(1 / float64(len(points)))
}
