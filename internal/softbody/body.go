package softbody

import (
	"fmt"
	"math"
)

// Body is a particle set with its links and the layout it was built from.
// Particle and link slices are owned by the body and mutated in place by
// whichever component is running.
type Body struct {
	ID        int
	Config    BodyConfig
	Material  Material
	Particles []Particle
	Links     []Link

	// outline lists particle indices in drawing order: the outer ring for
	// ring bodies, row-major for grids.
	outline []int
	angle   float64
}

// NewBody builds a body from its layout config.
func NewBody(cfg BodyConfig, m Material) (*Body, error) {
	b := &Body{Config: cfg, Material: m}
	if err := b.rebuild(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body) rebuild() error {
	l, err := buildLayout(b.Config)
	if err != nil {
		return err
	}
	b.Particles = l.particles
	b.Links = l.links
	b.outline = l.outline
	b.angle = 0
	return nil
}

// Reset restores the construction layout. Calling it twice yields the same state.
func (b *Body) Reset() error {
	return b.rebuild()
}

// Closed reports whether the outline is a loop with an enclosed area.
func (b *Body) Closed() bool {
	return b.Config.Kind == KindRing
}

// Outline returns a copy of the outline positions in drawing order.
func (b *Body) Outline() []Vec {
	out := make([]Vec, len(b.outline))
	for i, idx := range b.outline {
		out[i] = b.Particles[idx].Pos
	}
	return out
}

// OutlineIndices returns the particle indices of the outline.
func (b *Body) OutlineIndices() []int {
	return append([]int(nil), b.outline...)
}

// Centroid returns the mean particle position.
func (b *Body) Centroid() Vec {
	var sum Vec
	for i := range b.Particles {
		sum = sum.Add(b.Particles[i].Pos)
	}
	if len(b.Particles) == 0 {
		return sum
	}
	return sum.Mult(1 / float64(len(b.Particles)))
}

func (b *Body) outlineCentroid() Vec {
	return mean(b.Outline())
}

// Area returns the enclosed outline area, or 0 for open bodies.
func (b *Body) Area() float64 {
	if !b.Closed() {
		return 0
	}
	return math.Abs(SignedArea(b.Outline()))
}

// BaseArea is the area of the undeformed circle of the configured radius.
func (b *Body) BaseArea() float64 {
	if !b.Closed() {
		return 0
	}
	return math.Pi * b.Config.Radius * b.Config.Radius
}

// TargetArea is the area pressure pushes toward at the given fill level.
func (b *Body) TargetArea(fill float64) float64 {
	return b.BaseArea() * fill
}

// MeanRadius returns the mean distance of outline particles from their centroid.
func (b *Body) MeanRadius() float64 {
	pts := b.Outline()
	if len(pts) == 0 {
		return 0
	}
	c := mean(pts)
	sum := 0.0
	for _, p := range pts {
		sum += p.Distance(c)
	}
	return sum / float64(len(pts))
}

// Velocity returns the mean one-frame displacement of the body.
func (b *Body) Velocity() Vec {
	var sum Vec
	for i := range b.Particles {
		sum = sum.Add(b.Particles[i].Velocity())
	}
	if len(b.Particles) == 0 {
		return sum
	}
	return sum.Mult(1 / float64(len(b.Particles)))
}

// Extent returns the axis-aligned bounds of the particles including their radii.
func (b *Body) Extent() (lo, hi Vec) {
	if len(b.Particles) == 0 {
		return
	}
	lo = V(math.Inf(1), math.Inf(1))
	hi = V(math.Inf(-1), math.Inf(-1))
	for i := range b.Particles {
		p := &b.Particles[i]
		lo = V(math.Min(lo.X, p.Pos.X-p.Radius), math.Min(lo.Y, p.Pos.Y-p.Radius))
		hi = V(math.Max(hi.X, p.Pos.X+p.Radius), math.Max(hi.Y, p.Pos.Y+p.Radius))
	}
	return lo, hi
}

// Valid reports whether every particle position is finite.
func (b *Body) Valid() bool {
	for i := range b.Particles {
		if !finite(b.Particles[i].Pos) || !finite(b.Particles[i].Prev) {
			return false
		}
	}
	return true
}

// ActiveLinks counts links that have not torn.
func (b *Body) ActiveLinks() int {
	n := 0
	for i := range b.Links {
		if !b.Links[i].Broken() {
			n++
		}
	}
	return n
}

// RestPosition returns the world-space rest position of particle i.
func (b *Body) RestPosition(i int) Vec {
	return b.Centroid().Add(rotate(b.Particles[i].Rest, b.angle))
}

// Angle returns the body-frame orientation found by the last shape match.
func (b *Body) Angle() float64 {
	return b.angle
}

// orient finds the rotation that best maps rest offsets onto the current
// offsets around c and stores it as the body angle.
func (b *Body) orient(c Vec) float64 {
	var num, den float64
	for i := range b.Particles {
		r := b.Particles[i].Rest
		q := b.Particles[i].Pos.Sub(c)
		num += r.Cross(q)
		den += r.Dot(q)
	}
	if num != 0 || den != 0 {
		b.angle = math.Atan2(num, den)
	}
	return b.angle
}

// syncRestLengths re-derives link rest lengths from the rest offsets.
func (b *Body) syncRestLengths() {
	for i := range b.Links {
		l := &b.Links[i]
		rest := b.Particles[l.A].Rest.Distance(b.Particles[l.B].Rest)
		if rest >= minRestLength {
			l.RestLength = rest
		}
	}
}

// Flatten squashes the rest shape: x is scaled by factor and y by 1/factor,
// keeping the rest area. Recovery then pulls the body into the new shape.
func (b *Body) Flatten(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: flatten factor=%g", ErrParameterBounds, factor)
	}
	for i := range b.Particles {
		r := b.Particles[i].Rest
		b.Particles[i].Rest = V(r.X*factor, r.Y/factor)
	}
	b.syncRestLengths()
	return nil
}

// RollRound restores the rest shape to the undeformed layout without moving
// any particle.
func (b *Body) RollRound() error {
	offsets, err := layoutOffsets(b.Config)
	if err != nil {
		return err
	}
	if len(offsets) != len(b.Particles) {
		return fmt.Errorf("%w: layout has %d particles, body has %d", ErrInvalidGeometry, len(offsets), len(b.Particles))
	}
	for i := range b.Particles {
		b.Particles[i].Rest = offsets[i]
	}
	b.syncRestLengths()
	return nil
}

// Push adds an impulse to every movable particle by rewriting the previous position.
func (b *Body) Push(impulse Vec) {
	for i := range b.Particles {
		p := &b.Particles[i]
		if p.Movable() {
			p.Prev = p.Prev.Sub(impulse)
		}
	}
}

// Translate moves every particle, its history included, by offset.
func (b *Body) Translate(offset Vec) {
	for i := range b.Particles {
		b.Particles[i].Pos = b.Particles[i].Pos.Add(offset)
		b.Particles[i].Prev = b.Particles[i].Prev.Add(offset)
	}
}

func (b *Body) particle(i int) (*Particle, error) {
	if i < 0 || i >= len(b.Particles) {
		return nil, fmt.Errorf("%w: %d of %d", ErrUnknownParticle, i, len(b.Particles))
	}
	return &b.Particles[i], nil
}
