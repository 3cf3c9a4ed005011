package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/springsim/internal/pendulum"
)

// Simulator drives a pendulum State through fixed steps. It owns no state
// between runs apart from its metrics, which are reset at the start of Run.
type Simulator struct {
	forces    pendulum.ForceModel
	metrics   []Metric
	observers []Observer
}

// New returns a Simulator using fm, or the spring-plus-gravity model when
// fm is nil.
func New(fm pendulum.ForceModel) *Simulator {
	if fm == nil {
		fm = pendulum.SpringGravity{}
	}
	return &Simulator{
		forces:    fm,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 pendulum.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	switches := sortedSwitches(cfg.Switches)
	counter := &pendulum.Counter{Model: s.forces}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.Samples = append(result.Samples, sampleOf(x, t))
	initialEnergy := x.Energy()

	finish := func() {
		result.Final = x
		result.Evaluations = counter.Calls
		if initialEnergy != 0 {
			result.EnergyDrift = math.Abs(x.Energy()-initialEnergy) / math.Abs(initialEnergy)
		}
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			finish()
			return result, ctx.Err()
		default:
		}

		for len(switches) > 0 && t >= switches[0].At-dt/2 {
			x.Engine = switches[0].Engine
			switches = switches[1:]
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		next := x
		if err := next.StepWith(counter, dt); err != nil {
			finish()
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: err}
		}

		if cfg.ValidateState && !(next.Pos.IsValid() && next.Vel.IsValid()) {
			finish()
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrInvalidState}
		}

		x = next
		t = float64(i+1) * dt
		result.StepsTaken++
		result.Samples = append(result.Samples, sampleOf(x, t))
	}

	finish()
	return result, nil
}

func (s *Simulator) validateConfig(x0 pendulum.State, cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if !x0.Engine.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, pendulum.ErrUnknownEngine)
	}
	for _, sw := range cfg.Switches {
		if !sw.Engine.Valid() {
			return fmt.Errorf("%w: switch at t=%.4f: %w", ErrInvalidConfig, sw.At, pendulum.ErrUnknownEngine)
		}
	}
	return nil
}

func sortedSwitches(in []Switch) []Switch {
	out := make([]Switch, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

func sampleOf(x pendulum.State, t float64) Sample {
	return Sample{Time: t, Pos: x.Pos, Vel: x.Vel, Engine: x.Engine}
}

// RunWithCallback steps x0 until the duration elapses or callback returns
// false. The callback sees every state before it is advanced.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 pendulum.State, cfg Config, callback func(pendulum.State, float64) bool) error {
	if err := s.validateConfig(x0, cfg); err != nil {
		return err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	x := x0.Clone()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		if !callback(x, t) {
			return nil
		}

		next := x
		if err := next.StepWith(s.forces, cfg.Dt); err != nil {
			return &SimulationError{Step: i, Time: t, State: x, Wrapped: err}
		}

		if cfg.ValidateState && !(next.Pos.IsValid() && next.Vel.IsValid()) {
			return &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrInvalidState}
		}
		x = next
	}

	return nil
}
