package pendulum

import (
	"errors"
	"fmt"
)

var (
	// ErrDegeneratePosition indicates the mass sits exactly on the anchor,
	// where the spring direction is undefined.
	ErrDegeneratePosition = errors.New("pendulum: mass position coincides with anchor")

	// ErrUnknownEngine indicates an engine value outside Euler, Midpoint and RK4.
	ErrUnknownEngine = errors.New("pendulum: unknown engine")
)

// StepError reports which stage of an integrator failed. The state passed
// to the integrator is unchanged when a StepError is returned.
type StepError struct {
	Engine Engine
	Stage  int
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pendulum: %s stage %d: %v", e.Engine, e.Stage, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
