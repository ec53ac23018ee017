package softbody

import (
	"errors"
	"fmt"
)

// Domain errors for body and world operations.
var (
	// ErrParameterBounds indicates a material or UI parameter outside its valid range.
	ErrParameterBounds = errors.New("softbody: parameter out of valid bounds")

	// ErrInvalidGeometry indicates a body layout that cannot be built.
	ErrInvalidGeometry = errors.New("softbody: invalid body geometry")

	// ErrUnknownBody indicates a body id that is not part of the world.
	ErrUnknownBody = errors.New("softbody: unknown body")

	// ErrUnknownParticle indicates a particle index outside the body.
	ErrUnknownParticle = errors.New("softbody: unknown particle")

	// ErrTopology indicates an operation that the body topology does not support.
	ErrTopology = errors.New("softbody: operation not supported for body topology")
)

// BodyError wraps an error with the body and operation it came from.
type BodyError struct {
	BodyID  int
	Op      string
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %s: %v", e.BodyID, e.Op, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
