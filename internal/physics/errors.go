package physics

import (
	"errors"
	"fmt"
)

// Domain errors for chain validation.
var (
	// ErrInvalidState indicates a body holding NaN or Inf values.
	ErrInvalidState = errors.New("physics: invalid state (NaN or Inf detected)")

	// ErrEmptyChain indicates an operation that needs at least one body.
	ErrEmptyChain = errors.New("physics: chain has no bodies")
)

// BodyError reports which body of a chain failed validation.
type BodyError struct {
	Index   int
	Wrapped error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %s", e.Index, e.Wrapped)
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
