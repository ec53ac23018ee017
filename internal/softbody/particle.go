package softbody

// InteractionState is the pointer state of a single particle.
type InteractionState uint8

const (
	// Free particles take part in every component.
	Free InteractionState = iota
	// Held particles follow a drag or pinch and skip integration and collision.
	Held
)

func (s InteractionState) String() string {
	if s == Held {
		return "held"
	}
	return "free"
}

// Particle is a point mass owned by a Body.
//
// Velocity is never stored: it is inferred from Pos - Prev, so direct
// position overrides (drag, pinch) cannot inject unbounded speed.
type Particle struct {
	Pos  Vec
	Prev Vec
	// Rest is the particle's offset from the body centroid in the body frame.
	Rest   Vec
	Acc    Vec
	Radius float64
	Pinned bool
	Held   bool

	// carried is the damped velocity the last integration started from,
	// before forces. Contacts bounce this, never the forces pressing a
	// particle into a plane.
	carried Vec
}

func newParticle(pos Vec, radius float64) Particle {
	return Particle{Pos: pos, Prev: pos, Radius: radius}
}

// Velocity returns the one-frame position delta.
func (p *Particle) Velocity() Vec {
	return p.Pos.Sub(p.Prev)
}

// Movable reports whether integration, relaxation and collision may move the particle.
func (p *Particle) Movable() bool {
	return !p.Pinned && !p.Held
}

// State returns the interaction state of the particle.
func (p *Particle) State() InteractionState {
	if p.Held {
		return Held
	}
	return Free
}

// AddForce accumulates an acceleration for the next integration. Forces on
// pinned or held particles are discarded.
func (p *Particle) AddForce(f Vec) {
	if !p.Movable() {
		return
	}
	p.Acc = p.Acc.Add(f)
}
