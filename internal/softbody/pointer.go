package softbody

import "fmt"

// Tool selects what a pointer does to the bodies under it.
type Tool uint8

const (
	// Poke pushes particles away from the pointer.
	Poke Tool = iota
	// Drag grabs the nearest particle and moves it with the pointer.
	Drag
	// Pinch squeezes the particles under the pointer together.
	Pinch
	// Pin toggles the pin on the nearest particle.
	Pin
)

var toolNames = []string{"poke", "drag", "pinch", "pin"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", uint8(t))
}

// ParseTool maps a tool name to its Tool.
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Pointer translates host pointer events into interaction calls on a World.
// Hosts call Down, Move and Up as events arrive and Hold once per frame
// while the button is down.
type Pointer struct {
	Tool     Tool
	Radius   float64
	Strength float64

	down    bool
	pos     Vec
	grabbed ParticleRef
	holding bool
}

// NewPointer returns a pointer with the given tool and reach.
func NewPointer(tool Tool, radius, strength float64) *Pointer {
	return &Pointer{Tool: tool, Radius: radius, Strength: strength}
}

// Down starts an interaction at pos.
func (p *Pointer) Down(w *World, pos Vec) {
	p.down = true
	p.pos = pos
	switch p.Tool {
	case Drag:
		p.grabbed, p.holding = w.Grab(pos, p.Radius)
		if p.holding {
			_ = w.SetPosition(p.grabbed, pos)
		}
	case Pin:
		ref, ok := w.Grab(pos, p.Radius)
		if !ok {
			return
		}
		if pt, err := w.resolve(ref); err == nil && pt.Pinned {
			_ = w.Unpin(ref)
		} else {
			_ = w.Pin(ref)
		}
	default:
		p.Hold(w)
	}
}

// Move follows the pointer while it is down.
func (p *Pointer) Move(w *World, pos Vec) {
	p.pos = pos
	if !p.down {
		return
	}
	if p.Tool == Drag {
		if p.holding {
			if err := w.SetPosition(p.grabbed, pos); err != nil {
				p.holding = false
			}
		}
		return
	}
	p.Hold(w)
}

// Hold repeats the continuous effect of the tool at the current position.
func (p *Pointer) Hold(w *World) {
	if !p.down {
		return
	}
	switch p.Tool {
	case Poke:
		w.ApplyRadialForce(p.pos, p.Radius, p.Strength)
	case Pinch:
		w.Pinch(p.pos, p.Radius, p.Strength)
	case Drag:
		if p.holding {
			_ = w.SetPosition(p.grabbed, p.pos)
		}
	}
}

// Up ends the interaction and lets held particles go.
func (p *Pointer) Up(w *World) {
	if !p.down {
		return
	}
	p.down = false
	p.holding = false
	if p.Tool == Drag || p.Tool == Pinch {
		w.Release()
	}
}

// Active reports whether the pointer is down.
func (p *Pointer) Active() bool { return p.down }

// Position returns the last pointer position.
func (p *Pointer) Position() Vec { return p.pos }
