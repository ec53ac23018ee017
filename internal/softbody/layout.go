package softbody

import (
	"fmt"
	"math"
)

// Kind is the particle topology of a body.
type Kind string

const (
	// KindRing is a closed loop (optionally several concentric loops) for blob-like bodies.
	KindRing Kind = "ring"
	// KindGrid is a rows×cols lattice for cloth-like bodies.
	KindGrid Kind = "grid"
)

// BodyConfig describes how a body is laid out. Per-toy differences (ring
// counts, break thresholds, bracing) live here as data.
type BodyConfig struct {
	Kind   Kind   `yaml:"kind"`
	Style  string `yaml:"style"`
	Center Vec    `yaml:"center"`

	// Ring layout.
	Radius   float64 `yaml:"radius"`
	Segments int     `yaml:"segments"`
	Rings    int     `yaml:"rings"`
	Spokes   bool    `yaml:"spokes"`

	// Grid layout.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Rows   int     `yaml:"rows"`
	Cols   int     `yaml:"cols"`
	PinTop bool    `yaml:"pin_top"`

	// ParticleRadius is the collision radius; zero derives it from the spacing.
	ParticleRadius float64 `yaml:"particle_radius"`
	// Bending adds skip-one links along rings and grid lines.
	Bending bool `yaml:"bending"`
	// Shear adds diagonal links between neighbouring rings or grid cells.
	Shear bool `yaml:"shear"`
	// MaxStretch is copied to every link; zero disables tearing.
	MaxStretch float64 `yaml:"max_stretch"`
}

// RingConfig returns a single-loop ring layout.
func RingConfig(center Vec, radius float64, segments int) BodyConfig {
	return BodyConfig{Kind: KindRing, Center: center, Radius: radius, Segments: segments, Rings: 1}
}

// GridConfig returns a cloth layout hanging from its top row.
func GridConfig(center Vec, width, height float64, rows, cols int) BodyConfig {
	return BodyConfig{Kind: KindGrid, Center: center, Width: width, Height: height, Rows: rows, Cols: cols, PinTop: true, Shear: true}
}

func (c BodyConfig) validate() error {
	switch c.Kind {
	case KindRing:
		if c.Radius <= 0 || c.Segments < 3 || c.Rings < 1 {
			return fmt.Errorf("%w: ring radius=%g segments=%d rings=%d", ErrInvalidGeometry, c.Radius, c.Segments, c.Rings)
		}
	case KindGrid:
		if c.Width <= 0 || c.Height <= 0 || c.Rows < 2 || c.Cols < 2 {
			return fmt.Errorf("%w: grid %gx%g with %dx%d particles", ErrInvalidGeometry, c.Width, c.Height, c.Rows, c.Cols)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidGeometry, c.Kind)
	}
	if c.ParticleRadius < 0 || c.MaxStretch < 0 || (c.MaxStretch > 0 && c.MaxStretch < 1) {
		return fmt.Errorf("%w: particle_radius=%g max_stretch=%g", ErrInvalidGeometry, c.ParticleRadius, c.MaxStretch)
	}
	return nil
}

type layout struct {
	particles []Particle
	links     []Link
	outline   []int
}

func (l *layout) link(a, b int, maxStretch float64) {
	rest := l.particles[a].Pos.Distance(l.particles[b].Pos)
	if a == b || rest < minRestLength {
		return
	}
	l.links = append(l.links, Link{A: a, B: b, RestLength: rest, MaxStretch: maxStretch})
}

func buildLayout(c BodyConfig) (*layout, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	var l *layout
	if c.Kind == KindRing {
		l = buildRing(c)
	} else {
		l = buildGrid(c)
	}

	positions := make([]Vec, len(l.particles))
	for i := range l.particles {
		positions[i] = l.particles[i].Pos
	}
	centroid := mean(positions)
	for i := range l.particles {
		l.particles[i].Rest = l.particles[i].Pos.Sub(centroid)
	}
	return l, nil
}

func buildRing(c BodyConfig) *layout {
	n := c.Segments
	pr := c.ParticleRadius
	if pr == 0 {
		pr = c.Radius * math.Sin(math.Pi/float64(n))
	}

	l := &layout{}
	for r := 0; r < c.Rings; r++ {
		radius := c.Radius * float64(c.Rings-r) / float64(c.Rings)
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(i) / float64(n)
			pos := c.Center.Add(V(radius*math.Cos(angle), radius*math.Sin(angle)))
			l.particles = append(l.particles, newParticle(pos, pr))
		}
	}
	idx := func(ring, i int) int { return ring*n + (i+n)%n }

	for i := 0; i < n; i++ {
		l.outline = append(l.outline, idx(0, i))
	}
	for r := 0; r < c.Rings; r++ {
		for i := 0; i < n; i++ {
			l.link(idx(r, i), idx(r, i+1), c.MaxStretch)
		}
		if c.Bending {
			for i := 0; i < n; i++ {
				l.link(idx(r, i), idx(r, i+2), c.MaxStretch)
			}
		}
		if r+1 < c.Rings {
			for i := 0; i < n; i++ {
				l.link(idx(r, i), idx(r+1, i), c.MaxStretch)
				if c.Shear {
					l.link(idx(r, i), idx(r+1, i+1), c.MaxStretch)
					l.link(idx(r, i+1), idx(r+1, i), c.MaxStretch)
				}
			}
		}
	}

	if c.Spokes {
		hub := len(l.particles)
		l.particles = append(l.particles, newParticle(c.Center, pr))
		inner := c.Rings - 1
		for i := 0; i < n; i++ {
			l.link(hub, idx(inner, i), c.MaxStretch)
		}
	}
	return l
}

func buildGrid(c BodyConfig) *layout {
	dx := c.Width / float64(c.Cols-1)
	dy := c.Height / float64(c.Rows-1)
	pr := c.ParticleRadius
	if pr == 0 {
		pr = 0.5 * math.Min(dx, dy)
	}
	origin := c.Center.Sub(V(c.Width/2, c.Height/2))

	l := &layout{}
	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			p := newParticle(origin.Add(V(float64(col)*dx, float64(r)*dy)), pr)
			p.Pinned = c.PinTop && r == 0
			l.particles = append(l.particles, p)
		}
	}
	idx := func(r, col int) int { return r*c.Cols + col }

	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			if col+1 < c.Cols {
				l.link(idx(r, col), idx(r, col+1), c.MaxStretch)
			}
			if r+1 < c.Rows {
				l.link(idx(r, col), idx(r+1, col), c.MaxStretch)
			}
			if c.Shear && r+1 < c.Rows && col+1 < c.Cols {
				l.link(idx(r, col), idx(r+1, col+1), c.MaxStretch)
				l.link(idx(r, col+1), idx(r+1, col), c.MaxStretch)
			}
			if c.Bending {
				if col+2 < c.Cols {
					l.link(idx(r, col), idx(r, col+2), c.MaxStretch)
				}
				if r+2 < c.Rows {
					l.link(idx(r, col), idx(r+2, col), c.MaxStretch)
				}
			}
		}
	}

	for i := range l.particles {
		l.outline = append(l.outline, i)
	}
	return l
}

// layoutOffsets returns the rest offsets of the undeformed layout.
func layoutOffsets(c BodyConfig) ([]Vec, error) {
	c.Center = Vec{}
	l, err := buildLayout(c)
	if err != nil {
		return nil, err
	}
	out := make([]Vec, len(l.particles))
	for i := range l.particles {
		out[i] = l.particles[i].Rest
	}
	return out, nil
}
