package config

import (
	"fmt"

	"github.com/san-kum/squishy/internal/softbody"
)

// Event actions.
const (
	ActionPoke      = "poke"
	ActionPinch     = "pinch"
	ActionDrag      = "drag"
	ActionRelease   = "release"
	ActionPin       = "pin"
	ActionUnpin     = "unpin"
	ActionPush      = "push"
	ActionFlatten   = "flatten"
	ActionRollRound = "roll_round"
	ActionReset     = "reset"
	ActionSplit     = "split"
	ActionMerge     = "merge"
)

var actions = map[string]bool{
	ActionPoke: true, ActionPinch: true, ActionDrag: true, ActionRelease: true,
	ActionPin: true, ActionUnpin: true, ActionPush: true, ActionFlatten: true,
	ActionRollRound: true, ActionReset: true, ActionSplit: true, ActionMerge: true,
}

func (e Event) Validate() error {
	if !actions[e.Action] {
		return fmt.Errorf("unknown action %q", e.Action)
	}
	if e.Frame < 0 {
		return fmt.Errorf("%w: frame=%d", softbody.ErrParameterBounds, e.Frame)
	}
	switch e.Action {
	case ActionPoke, ActionPinch:
		if e.Radius <= 0 {
			return fmt.Errorf("%w: %s radius=%g", softbody.ErrParameterBounds, e.Action, e.Radius)
		}
	case ActionFlatten:
		if e.Factor <= 0 {
			return fmt.Errorf("%w: flatten factor=%g", softbody.ErrParameterBounds, e.Factor)
		}
	}
	return nil
}

// Apply performs the event on w. Body and Other are indices into the
// world's current body list, so scripts stay valid after a split renumbers
// ids.
func (e Event) Apply(w *softbody.World) error {
	body := func(i int) (int, error) {
		bodies := w.Bodies()
		if i < 0 || i >= len(bodies) {
			return 0, fmt.Errorf("%w: index %d of %d", softbody.ErrUnknownBody, i, len(bodies))
		}
		return bodies[i].ID, nil
	}

	switch e.Action {
	case ActionPoke:
		w.ApplyRadialForce(e.At, e.Radius, e.Strength)
		return nil
	case ActionPinch:
		w.Pinch(e.At, e.Radius, e.Strength)
		return nil
	case ActionRelease:
		w.Release()
		return nil
	}

	id, err := body(e.Body)
	if err != nil {
		return err
	}
	ref := softbody.ParticleRef{Body: id, Index: e.Index}
	switch e.Action {
	case ActionDrag:
		return w.SetPosition(ref, e.At)
	case ActionPin:
		return w.Pin(ref)
	case ActionUnpin:
		return w.Unpin(ref)
	case ActionPush:
		return w.Push(id, e.At)
	case ActionFlatten:
		return w.Flatten(id, e.Factor)
	case ActionRollRound:
		return w.RollRound(id)
	case ActionReset:
		return w.Reset(id)
	case ActionSplit:
		_, _, err := w.Split(id)
		return err
	case ActionMerge:
		other, err := body(e.Other)
		if err != nil {
			return err
		}
		_, err = w.Merge(id, other)
		return err
	}
	return fmt.Errorf("unknown action %q", e.Action)
}
