package softbody

import "math"

// SignedArea is the shoelace area of a closed polygon. Counter-clockwise
// traversal in a y-up frame gives a positive value; reversing the order
// flips the sign.
func SignedArea(points []Vec) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// RegularPolygonArea is the area of an n-gon with circumradius r.
func RegularPolygonArea(n int, r float64) float64 {
	return float64(n) * r * r * math.Sin(2*math.Pi/float64(n)) / 2
}

// MaintainShape accumulates the pressure and recovery forces of b for the
// next integration.
//
// Pressure pushes every outline particle radially from the outline centroid
// by (target-area)/target*PressureGain, so the push-back follows the total
// area lost rather than any single dent. Recovery pulls every particle toward
// its rest position, rotated to the best-fit body orientation.
func MaintainShape(b *Body, m Material) {
	if b.Closed() && m.PressureGain > 0 {
		applyPressure(b, m.Fill, m.PressureGain)
	}
	if m.Recovery > 0 {
		applyRecovery(b, m.Recovery)
	}
}

func applyPressure(b *Body, fill, gain float64) {
	target := b.TargetArea(fill)
	if target <= 0 {
		return
	}
	mag := (target - b.Area()) / target * gain
	c := b.outlineCentroid()
	for _, idx := range b.outline {
		p := &b.Particles[idx]
		dir := p.Pos.Sub(c)
		d := dir.Length()
		if d == 0 {
			continue
		}
		p.AddForce(dir.Mult(mag / d))
	}
}

func applyRecovery(b *Body, gain float64) {
	c := b.Centroid()
	angle := b.orient(c)
	for i := range b.Particles {
		p := &b.Particles[i]
		target := c.Add(rotate(p.Rest, angle))
		p.AddForce(target.Sub(p.Pos).Mult(gain))
	}
}
