package softbody

import "math"

// Plane is a static half-plane. A point is inside when Pos·Normal >= Offset.
type Plane struct {
	Normal Vec
	Offset float64
}

// Floor keeps particles above y (screen coordinates, +Y down).
func Floor(y float64) Plane { return Plane{Normal: V(0, -1), Offset: -y} }

// Ceiling keeps particles below y.
func Ceiling(y float64) Plane { return Plane{Normal: V(0, 1), Offset: y} }

// LeftWall keeps particles right of x.
func LeftWall(x float64) Plane { return Plane{Normal: V(1, 0), Offset: x} }

// RightWall keeps particles left of x.
func RightWall(x float64) Plane { return Plane{Normal: V(-1, 0), Offset: -x} }

// Box returns the four planes enclosing the rectangle.
func Box(minX, minY, maxX, maxY float64) []Plane {
	return []Plane{Floor(maxY), Ceiling(minY), LeftWall(minX), RightWall(maxX)}
}

// Depth is how far p lies outside the plane; non-positive means inside.
func (pl Plane) Depth(p Vec) float64 {
	return pl.Offset - p.Dot(pl.Normal)
}

// Contact tunes static collision response.
type Contact struct {
	Restitution  float64
	Friction     float64
	RestingSpeed float64
}

// contactSlop is how close to a plane a particle counts as touching it.
const contactSlop = 1e-6

// ProjectBounds moves movable particles that lie outside a plane back onto
// it without touching their history. Returns the number of corrections.
func ProjectBounds(b *Body, planes []Plane) int {
	n := 0
	for _, pl := range planes {
		for i := range b.Particles {
			p := &b.Particles[i]
			if !p.Movable() {
				continue
			}
			if depth := pl.Depth(p.Pos); depth > 0 {
				p.Pos = p.Pos.Add(pl.Normal.Mult(depth))
				n++
			}
		}
	}
	return n
}

// ResolveBounds handles every particle that penetrates a plane or rests on
// it without moving away. Penetrating centres are projected back. The normal
// speed the particle carried into the frame is reflected and scaled by
// restitution; forces added during the frame are not, so a body pressed
// into the floor stays put. The tangential component of the step velocity
// is scaled by 1-friction. Both are written back through Prev. Rebounds
// under RestingSpeed are dropped so bodies settle instead of micro-bouncing.
// Returns the number of contacts.
func ResolveBounds(b *Body, planes []Plane, c Contact) int {
	contacts := 0
	for i := range b.Particles {
		p := &b.Particles[i]
		if !p.Movable() {
			continue
		}
		for _, pl := range planes {
			depth := pl.Depth(p.Pos)
			v := p.Velocity()
			vn := v.Dot(pl.Normal)
			if depth <= -contactSlop || (depth <= 0 && vn > 0) {
				continue
			}
			contacts++
			tangent := v.Sub(pl.Normal.Mult(vn))
			if depth > 0 {
				p.Pos = p.Pos.Add(pl.Normal.Mult(depth))
			}

			out := 0.0
			if in := p.carried.Dot(pl.Normal); in < 0 {
				out = -in * c.Restitution
				if out < c.RestingSpeed {
					out = 0
				}
			}
			v = tangent.Mult(1 - c.Friction).Add(pl.Normal.Mult(out))
			p.Prev = p.Pos.Sub(v)
		}
	}
	return contacts
}

// SeparationPasses caps the sweeps ResolveBodies makes over the particle pairs.
const SeparationPasses = 16

// separationSlop is the overlap left unresolved to stop the sweeps.
const separationSlop = 1e-9

// ResolveBodies separates overlapping particles of two different bodies.
// Each particle of a pair closer than the sum of their radii moves half the
// overlap along the separating axis; a pinned or held particle stays and its
// partner takes the whole overlap. A push can reopen a pair already handled,
// so the sweep repeats until none overlaps or SeparationPasses is reached.
// Coincident pairs are skipped. Returns the number of corrections made.
func ResolveBodies(a, b *Body) int {
	if a == b || !overlapping(a, b) {
		return 0
	}
	resolved := 0
	for pass := 0; pass < SeparationPasses; pass++ {
		n := separate(a, b)
		if n == 0 {
			break
		}
		resolved += n
	}
	return resolved
}

func separate(a, b *Body) int {
	n := 0
	for i := range a.Particles {
		pa := &a.Particles[i]
		for j := range b.Particles {
			pb := &b.Particles[j]
			ma, mb := pa.Movable(), pb.Movable()
			if !ma && !mb {
				continue
			}
			diff := pb.Pos.Sub(pa.Pos)
			d := diff.Length()
			minDist := pa.Radius + pb.Radius
			if d >= minDist-separationSlop || d == 0 {
				continue
			}
			push := diff.Mult((minDist - d) / d)
			switch {
			case ma && mb:
				half := push.Mult(0.5)
				pa.Pos = pa.Pos.Sub(half)
				pb.Pos = pb.Pos.Add(half)
			case ma:
				pa.Pos = pa.Pos.Sub(push)
			default:
				pb.Pos = pb.Pos.Add(push)
			}
			n++
		}
	}
	return n
}

func overlapping(a, b *Body) bool {
	aLo, aHi := a.Extent()
	bLo, bHi := b.Extent()
	return !(aHi.X < bLo.X || bHi.X < aLo.X || aHi.Y < bLo.Y || bHi.Y < aLo.Y)
}

// Penetration returns the deepest plane penetration of any particle centre.
func Penetration(b *Body, planes []Plane) float64 {
	worst := 0.0
	for i := range b.Particles {
		for _, pl := range planes {
			worst = math.Max(worst, pl.Depth(b.Particles[i].Pos))
		}
	}
	return worst
}
