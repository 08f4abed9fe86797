package thermal

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and stepping.
var (
	// ErrConfigMismatch indicates body count disagrees with a vector or matrix dimension.
	ErrConfigMismatch = errors.New("thermal: configuration mismatch")

	// ErrInvalidParameter indicates a non-positive or non-finite physical parameter.
	ErrInvalidParameter = errors.New("thermal: invalid parameter")

	// ErrLookupNotFound indicates a material or coefficient identifier is absent.
	ErrLookupNotFound = errors.New("thermal: lookup not found")

	// ErrUnstable indicates a step would produce NaN or Inf temperatures.
	ErrUnstable = errors.New("thermal: simulation unstable (temperature diverged)")
)

// SimulationError wraps an error with stepping context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
