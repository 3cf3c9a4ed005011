package sim

import (
	"errors"

	"github.com/san-kum/springsim/internal/pendulum"
)

var (
	// ErrInvalidState indicates a position or velocity went NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

// SimulationError wraps an error with the step at which the run stopped.
// State is the last state that was successfully committed.
type SimulationError struct {
	Step    int
	Time    float64
	State   pendulum.State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return SimError{Time: e.Time, Step: e.Step, Message: e.Wrapped.Error()}.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
