package softbody

// Quad is a quadratic Bézier segment.
type Quad struct {
	From, Ctrl, To Vec
}

// At evaluates the curve at t in [0, 1].
func (q Quad) At(t float64) Vec {
	a := q.From.Lerp(q.Ctrl, t)
	b := q.Ctrl.Lerp(q.To, t)
	return a.Lerp(b, t)
}

// Smooth turns an outline into quadratic segments through the midpoints of
// consecutive points, using each point as the control. A closed outline wraps
// around; an open one starts and ends at its first and last points.
func Smooth(points []Vec, closed bool) []Quad {
	n := len(points)
	if n < 3 {
		if n == 2 {
			mid := points[0].Lerp(points[1], 0.5)
			return []Quad{{From: points[0], Ctrl: mid, To: points[1]}}
		}
		return nil
	}
	mid := func(i int) Vec { return points[i%n].Lerp(points[(i+1)%n], 0.5) }

	if closed {
		out := make([]Quad, n)
		for i := 0; i < n; i++ {
			out[i] = Quad{From: mid(i + n - 1), Ctrl: points[i], To: mid(i)}
		}
		return out
	}
	out := make([]Quad, 0, n-2)
	for i := 1; i < n-1; i++ {
		from, to := mid(i-1), mid(i)
		if i == 1 {
			from = points[0]
		}
		if i == n-2 {
			to = points[n-1]
		}
		out = append(out, Quad{From: from, Ctrl: points[i], To: to})
	}
	return out
}

// Sample flattens segments into a polyline with steps points per segment.
func Sample(segs []Quad, steps int) []Vec {
	if steps < 1 {
		steps = 1
	}
	out := make([]Vec, 0, len(segs)*steps+1)
	for i, q := range segs {
		for s := 0; s < steps; s++ {
			out = append(out, q.At(float64(s)/float64(steps)))
		}
		if i == len(segs)-1 {
			out = append(out, q.To)
		}
	}
	return out
}
