package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a control point with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidSize indicates a surface resized to a non-positive extent.
	ErrInvalidSize = errors.New("dynamo: surface size must be positive")

	// ErrUnknownPreset indicates a preset name with no definition.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownPath indicates a pointer path name with no definition.
	ErrUnknownPath = errors.New("dynamo: unknown pointer path")

	// ErrUnknownIntegrator indicates an integrator name with no implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// SimulationError wraps an error with the frame it occurred on.
type SimulationError struct {
	Frame   int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
