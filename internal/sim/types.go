package sim

import (
	"fmt"

	"github.com/san-kum/springsim/internal/pendulum"
)

type Metric interface {
	Name() string
	Observe(s pendulum.State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s pendulum.State, t float64)
}

// Switch changes the engine once simulated time reaches At.
type Switch struct {
	At     float64
	Engine pendulum.Engine
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
	Switches      []Switch
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Sample is the recorded state after a step (or the initial state at t=0).
type Sample struct {
	Time   float64
	Pos    pendulum.Vec
	Vel    pendulum.Vec
	Engine pendulum.Engine
}

func (s Sample) Distance() float64 {
	return s.Pos.Length()
}

type Result struct {
	Samples     []Sample
	Metrics     map[string]float64
	Final       pendulum.State
	EnergyDrift float64
	StepsTaken  int
	Evaluations int
}

// Distances returns the distance from the anchor at every sample.
func (r *Result) Distances() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Distance()
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
