package pendulum

import (
	"fmt"
	"strings"
)

// Engine selects the integration scheme used by State.Step.
type Engine int

const (
	Euler Engine = iota
	Midpoint
	RK4
)

var engineNames = map[Engine]string{
	Euler:    "Euler",
	Midpoint: "Midpoint",
	RK4:      "RK4",
}

// Engines lists every engine in dispatch order.
func Engines() []Engine {
	return []Engine{Euler, Midpoint, RK4}
}

func (e Engine) String() string {
	if name, ok := engineNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

func (e Engine) Valid() bool {
	_, ok := engineNames[e]
	return ok
}

// Evaluations returns the number of force evaluations one step costs.
func (e Engine) Evaluations() int {
	switch e {
	case Euler:
		return 1
	case Midpoint:
		return 2
	case RK4:
		return 4
	default:
		return 0
	}
}

// Integrator returns the step function for e.
func (e Engine) Integrator() (Integrator, error) {
	switch e {
	case Euler:
		return StepEuler, nil
	case Midpoint:
		return StepMidpoint, nil
	case RK4:
		return StepRK4, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEngine, int(e))
	}
}

// ParseEngine accepts engine names case-insensitively. "rk2" is an alias
// for Midpoint.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler":
		return Euler, nil
	case "midpoint", "rk2":
		return Midpoint, nil
	case "rk4":
		return RK4, nil
	default:
		return Euler, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

func (e Engine) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEngine, int(e))
	}
	return []byte(strings.ToLower(e.String())), nil
}

func (e *Engine) UnmarshalText(text []byte) error {
	parsed, err := ParseEngine(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
