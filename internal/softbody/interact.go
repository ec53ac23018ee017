package softbody

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// ParticleRef addresses one particle of one body.
type ParticleRef struct {
	Body  int
	Index int
}

type opKind uint8

const (
	opForce opKind = iota
	opRadial
	opPinch
)

// opKey identifies an interaction call within a frame. Repeating a call with
// identical arguments before the next Step is a no-op.
type opKey struct {
	op       opKind
	ref      ParticleRef
	at       Vec
	radius   float64
	strength float64
}

// once records k and reports whether it is new this frame.
func (w *World) once(k opKey) bool {
	if _, ok := w.applied[k]; ok {
		return false
	}
	w.applied[k] = struct{}{}
	return true
}

func (w *World) resolve(ref ParticleRef) (*Particle, error) {
	b, err := w.Body(ref.Body)
	if err != nil {
		return nil, err
	}
	return b.particle(ref.Index)
}

// Pin fixes a particle in place. Pinned particles ignore forces, relaxation
// and collision.
func (w *World) Pin(ref ParticleRef) error {
	p, err := w.resolve(ref)
	if err != nil {
		return err
	}
	p.Pinned = true
	p.Prev = p.Pos
	p.Acc = Vec{}
	return nil
}

// Unpin releases a pinned particle at rest.
func (w *World) Unpin(ref ParticleRef) error {
	p, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if p.Pinned {
		p.Pinned = false
		p.Prev = p.Pos
	}
	return nil
}

// ApplyForce accumulates f on one particle for the next integration.
func (w *World) ApplyForce(ref ParticleRef, f Vec) error {
	p, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if w.once(opKey{op: opForce, ref: ref, at: f}) {
		p.AddForce(f)
	}
	return nil
}

// ApplyRadialForce pushes every free particle within radius of center away
// from it, with strength falling off linearly to zero at the radius.
// Negative strength pulls inward. Returns the number of particles affected.
func (w *World) ApplyRadialForce(center Vec, radius, strength float64) int {
	if radius <= 0 || strength == 0 || !w.once(opKey{op: opRadial, at: center, radius: radius, strength: strength}) {
		return 0
	}
	n := 0
	for _, b := range w.bodies {
		for i := range b.Particles {
			p := &b.Particles[i]
			dir := p.Pos.Sub(center)
			d := dir.Length()
			if d == 0 || d > radius || !p.Movable() {
				continue
			}
			p.AddForce(dir.Mult(strength * (1 - d/radius) / d))
			n++
		}
	}
	return n
}

// SetPosition drags a particle to target and holds it there until Release.
// The previous position is the pre-drag position, so the drag speed carries
// over as velocity when the particle is let go.
func (w *World) SetPosition(ref ParticleRef, target Vec) error {
	p, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if p.Pinned {
		return nil
	}
	if p.Held && p.Pos == target {
		return nil
	}
	w.moved[ref] = struct{}{}
	p.Prev = p.Pos
	p.Pos = target
	p.Held = true
	p.Acc = Vec{}
	return nil
}

// Pinch pulls every unpinned particle within radius toward center and holds
// it. strength is the fraction of the distance covered at the center,
// falling off linearly to zero at the radius. Returns the number of
// particles pinched.
func (w *World) Pinch(center Vec, radius, strength float64) int {
	if radius <= 0 || strength <= 0 || !w.once(opKey{op: opPinch, at: center, radius: radius, strength: strength}) {
		return 0
	}
	n := 0
	for _, b := range w.bodies {
		for i := range b.Particles {
			p := &b.Particles[i]
			d := p.Pos.Distance(center)
			if d > radius || p.Pinned {
				continue
			}
			t := cp.Clamp01(strength * (1 - d/radius))
			p.Prev = p.Pos
			p.Pos = p.Pos.Lerp(center, t)
			p.Held = true
			p.Acc = Vec{}
			w.moved[ParticleRef{Body: b.ID, Index: i}] = struct{}{}
			n++
		}
	}
	return n
}

// Release frees every held particle.
func (w *World) Release() int {
	n := 0
	for _, b := range w.bodies {
		for i := range b.Particles {
			if b.Particles[i].Held {
				b.Particles[i].Held = false
				n++
			}
		}
	}
	return n
}

// Grab returns the particle nearest to center within radius.
func (w *World) Grab(center Vec, radius float64) (ParticleRef, bool) {
	best := ParticleRef{Body: -1, Index: -1}
	bestDist := radius
	found := false
	for _, b := range w.bodies {
		for i := range b.Particles {
			if d := b.Particles[i].Pos.Distance(center); d <= bestDist {
				best = ParticleRef{Body: b.ID, Index: i}
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}

func (r ParticleRef) String() string {
	return fmt.Sprintf("body %d particle %d", r.Body, r.Index)
}
