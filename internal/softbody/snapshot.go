package softbody

// BodySnapshot is a read-only copy of what a renderer needs for one body.
type BodySnapshot struct {
	ID       int
	Style    string
	Kind     Kind
	Outline  []Vec
	Centroid Vec
	Rows     int
	Cols     int
	// Segments holds the endpoints of active links for open bodies.
	Segments   [][2]Vec
	Pinned     []Vec
	Area       float64
	MeanRadius float64
}

// Snapshot copies the render state of every body in insertion order.
func (w *World) Snapshot() []BodySnapshot {
	out := make([]BodySnapshot, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, b.Snapshot())
	}
	return out
}

// Snapshot copies the render state of b.
func (b *Body) Snapshot() BodySnapshot {
	s := BodySnapshot{
		ID:         b.ID,
		Style:      b.Config.Style,
		Kind:       b.Config.Kind,
		Outline:    b.Outline(),
		Centroid:   b.Centroid(),
		Area:       b.Area(),
		MeanRadius: b.MeanRadius(),
	}
	if !b.Closed() {
		s.Rows, s.Cols = b.Config.Rows, b.Config.Cols
		for i := range b.Links {
			l := &b.Links[i]
			if l.Broken() {
				continue
			}
			s.Segments = append(s.Segments, [2]Vec{b.Particles[l.A].Pos, b.Particles[l.B].Pos})
		}
	}
	for i := range b.Particles {
		if b.Particles[i].Pinned {
			s.Pinned = append(s.Pinned, b.Particles[i].Pos)
		}
	}
	return s
}
