package softbody

// LinkState tracks whether a link still participates in relaxation.
type LinkState uint8

const (
	LinkActive LinkState = iota
	// LinkBroken links were torn by overstretching and are pruned after the frame.
	LinkBroken
)

// minRestLength guards every division by a rest length.
const minRestLength = 1e-9

// Link is a distance constraint between two particles of the same body.
type Link struct {
	A, B       int
	RestLength float64
	// MaxStretch is the tearing factor; zero makes the link unbreakable.
	MaxStretch float64
	// Stiffness weights the global stiffness for this link; zero means 1.
	Stiffness float64
	State     LinkState
}

func (l *Link) Broken() bool {
	return l.State == LinkBroken
}

// Length returns the current endpoint distance.
func (l *Link) Length(ps []Particle) float64 {
	return ps[l.B].Pos.Distance(ps[l.A].Pos)
}

// Strain returns current length over rest length, or 0 for degenerate links.
func (l *Link) Strain(ps []Particle) float64 {
	if l.RestLength < minRestLength {
		return 0
	}
	return l.Length(ps) / l.RestLength
}

func (l *Link) weight() float64 {
	if l.Stiffness <= 0 {
		return 1
	}
	return l.Stiffness
}
