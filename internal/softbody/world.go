package softbody

import (
	"fmt"
	"math"
)

// MinSplitRadius is the smallest child radius Split will produce.
const MinSplitRadius = 4.0

// StepStats reports what happened during one frame.
type StepStats struct {
	Frame    int
	Torn     int
	Contacts int
	Overlaps int
}

// World owns a set of bodies and the static bounds around them. It is not
// safe for concurrent use; each Step runs to completion before the next call.
type World struct {
	Planes       []Plane
	RestingSpeed float64
	// InterBody enables particle-particle collision between different bodies.
	InterBody bool

	bodies  []*Body
	nextID  int
	frame   int
	applied map[opKey]struct{}
	moved   map[ParticleRef]struct{}
}

// NewWorld returns an empty world bounded by planes.
func NewWorld(planes ...Plane) *World {
	return &World{
		Planes:       planes,
		RestingSpeed: DefaultRestingSpeed,
		InterBody:    true,
		applied:      make(map[opKey]struct{}),
		moved:        make(map[ParticleRef]struct{}),
	}
}

// AddBody builds a body from cfg with material m and adds it to the world.
func (w *World) AddBody(cfg BodyConfig, m Material) (*Body, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	b, err := NewBody(cfg, m)
	if err != nil {
		return nil, err
	}
	w.adopt(b)
	return b, nil
}

func (w *World) adopt(b *Body) {
	b.ID = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
}

// Body returns the body with the given id.
func (w *World) Body(id int) (*Body, error) {
	for _, b := range w.bodies {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownBody, id)
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	return append([]*Body(nil), w.bodies...)
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Remove deletes a body from the world.
func (w *World) Remove(id int) error {
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownBody, id)
}

// SetMaterial replaces the material of one body.
func (w *World) SetMaterial(id int, m Material) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return &BodyError{BodyID: id, Op: "set material", Wrapped: err}
	}
	b.Material = m
	return nil
}

// SetMaterialAll replaces the material of every body.
func (w *World) SetMaterialAll(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, b := range w.bodies {
		b.Material = m
	}
	return nil
}

// Frame returns the number of completed steps.
func (w *World) Frame() int { return w.frame }

// Step advances the world one frame. Each body is integrated, relaxed
// against its links and the bounds, given its shape forces for the next
// frame and clamped to the bounds. Bodies are then separated pairwise and
// projected back inside the bounds, plasticity is applied and torn links
// are pruned.
func (w *World) Step() StepStats {
	st := StepStats{}
	for _, b := range w.bodies {
		m := b.Material
		Integrate(b, m)
		st.Torn += Solve(b, m.Iterations, m.Stiffness, w.Planes...)
		MaintainShape(b, m)
		st.Contacts += ResolveBounds(b, w.Planes, Contact{
			Restitution:  m.Restitution,
			Friction:     m.Friction,
			RestingSpeed: w.RestingSpeed,
		})
	}
	if w.InterBody {
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				st.Overlaps += ResolveBodies(w.bodies[i], w.bodies[j])
			}
		}
		if st.Overlaps > 0 {
			for _, b := range w.bodies {
				ProjectBounds(b, w.Planes)
			}
		}
	}
	for _, b := range w.bodies {
		Plasticize(b, b.Material.Plasticity)
		PruneBroken(b)
		w.settleHeld(b)
	}

	clear(w.applied)
	clear(w.moved)
	w.frame++
	st.Frame = w.frame
	return st
}

// settleHeld zeroes the velocity of held particles the pointer did not move
// this frame, so a still hold releases at rest.
func (w *World) settleHeld(b *Body) {
	for i := range b.Particles {
		p := &b.Particles[i]
		if !p.Held {
			continue
		}
		if _, ok := w.moved[ParticleRef{Body: b.ID, Index: i}]; !ok {
			p.Prev = p.Pos
		}
	}
}

// Run steps the world n times and returns the stats of the last frame.
func (w *World) Run(n int) StepStats {
	var st StepStats
	for i := 0; i < n; i++ {
		st = w.Step()
	}
	return st
}

// Reset restores a body to its construction layout.
func (w *World) Reset(id int) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	if err := b.Reset(); err != nil {
		return &BodyError{BodyID: id, Op: "reset", Wrapped: err}
	}
	return nil
}

// Flatten squashes the rest shape of a body by factor.
func (w *World) Flatten(id int, factor float64) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	if err := b.Flatten(factor); err != nil {
		return &BodyError{BodyID: id, Op: "flatten", Wrapped: err}
	}
	return nil
}

// RollRound restores the undeformed rest shape of a body.
func (w *World) RollRound(id int) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	if err := b.RollRound(); err != nil {
		return &BodyError{BodyID: id, Op: "roll round", Wrapped: err}
	}
	return nil
}

// Push adds an impulse to every movable particle of a body.
func (w *World) Push(id int, impulse Vec) error {
	b, err := w.Body(id)
	if err != nil {
		return err
	}
	b.Push(impulse)
	return nil
}

// Split replaces a ring body with two half-area rings placed along its
// principal axis. The children keep the parent's velocity.
func (w *World) Split(id int) (*Body, *Body, error) {
	b, err := w.Body(id)
	if err != nil {
		return nil, nil, err
	}
	if !b.Closed() {
		return nil, nil, &BodyError{BodyID: id, Op: "split", Wrapped: ErrTopology}
	}
	r := b.Config.Radius / math.Sqrt2
	if r < MinSplitRadius {
		return nil, nil, &BodyError{BodyID: id, Op: "split",
			Wrapped: fmt.Errorf("%w: child radius %g below %g", ErrInvalidGeometry, r, MinSplitRadius)}
	}

	c := b.Centroid()
	axis := principalAxis(b.Outline(), c).Mult(r)
	vel := b.Velocity()
	children := make([]*Body, 0, 2)
	for _, center := range []Vec{c.Sub(axis), c.Add(axis)} {
		cfg := b.Config
		cfg.Center = center
		cfg.Radius = r
		child, err := NewBody(cfg, b.Material)
		if err != nil {
			return nil, nil, &BodyError{BodyID: id, Op: "split", Wrapped: err}
		}
		child.Push(vel)
		children = append(children, child)
	}

	if err := w.Remove(id); err != nil {
		return nil, nil, err
	}
	for _, child := range children {
		w.adopt(child)
	}
	return children[0], children[1], nil
}

// Merge replaces two ring bodies with one ring of their combined area at
// their area-weighted centroid. The merged body takes the first body's
// layout and material.
func (w *World) Merge(a, b int) (*Body, error) {
	if a == b {
		return nil, fmt.Errorf("%w: cannot merge body %d with itself", ErrInvalidGeometry, a)
	}
	ba, err := w.Body(a)
	if err != nil {
		return nil, err
	}
	bb, err := w.Body(b)
	if err != nil {
		return nil, err
	}
	for _, x := range []*Body{ba, bb} {
		if !x.Closed() {
			return nil, &BodyError{BodyID: x.ID, Op: "merge", Wrapped: ErrTopology}
		}
	}

	wa, wb := ba.BaseArea(), bb.BaseArea()
	total := wa + wb
	cfg := ba.Config
	cfg.Radius = math.Sqrt(ba.Config.Radius*ba.Config.Radius + bb.Config.Radius*bb.Config.Radius)
	cfg.Segments = max(ba.Config.Segments, bb.Config.Segments)
	cfg.Rings = max(ba.Config.Rings, bb.Config.Rings)
	cfg.Center = ba.Centroid().Mult(wa / total).Add(bb.Centroid().Mult(wb / total))
	cfg.ParticleRadius = 0

	merged, err := NewBody(cfg, ba.Material)
	if err != nil {
		return nil, &BodyError{BodyID: a, Op: "merge", Wrapped: err}
	}
	merged.Push(ba.Velocity().Mult(wa / total).Add(bb.Velocity().Mult(wb / total)))

	_ = w.Remove(a)
	_ = w.Remove(b)
	w.adopt(merged)
	return merged, nil
}

// Valid reports whether every particle in the world has finite coordinates.
func (w *World) Valid() bool {
	for _, b := range w.bodies {
		if !b.Valid() {
			return false
		}
	}
	return true
}

// principalAxis returns the unit direction of greatest spread of points
// around c. A circle has no preferred direction and yields +X.
func principalAxis(points []Vec, c Vec) Vec {
	var sxx, syy, sxy float64
	for _, p := range points {
		d := p.Sub(c)
		sxx += d.X * d.X
		syy += d.Y * d.Y
		sxy += d.X * d.Y
	}
	angle := 0.5 * math.Atan2(2*sxy, sxx-syy)
	return V(math.Cos(angle), math.Sin(angle))
}
