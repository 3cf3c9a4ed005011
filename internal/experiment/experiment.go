package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/metrics"
	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/sim"
)

// Experiment binds a validated run configuration to a simulator with the
// default metric set.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{cfg: cfg, simulator: sim.New(nil)}
	for _, m := range e.newMetrics() {
		e.simulator.AddMetric(m)
	}
	return e, nil
}

func (e *Experiment) newMetrics() []sim.Metric {
	return metrics.Default(e.cfg.StabilityThreshold)
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.cfg.State(), e.cfg.SimConfig())
}

// Compare runs the configured initial state under each engine. Engine
// switches from the configuration are ignored so each run stays on one
// engine.
func (e *Experiment) Compare(ctx context.Context, engines []pendulum.Engine) ([]*sim.Result, error) {
	if len(engines) == 0 {
		return nil, fmt.Errorf("experiment: no engines to compare")
	}
	simCfg := e.cfg.SimConfig()
	simCfg.Switches = nil
	return sim.Compare(ctx, nil, e.cfg.State(), engines, simCfg, e.newMetrics)
}

// Observe attaches o to every subsequent Run.
func (e *Experiment) Observe(o sim.Observer) {
	e.simulator.AddObserver(o)
}

// Crossing is the first state found at or beyond a distance from the anchor.
type Crossing struct {
	Time  float64
	State pendulum.State
}

// Reach steps the configured initial state until the mass is at least
// distance from the anchor, checking the state before each step. Engine
// switches are ignored. A nil Crossing means the run ended first.
func (e *Experiment) Reach(ctx context.Context, distance float64) (*Crossing, error) {
	var hit *Crossing
	simCfg := e.cfg.SimConfig()
	simCfg.Switches = nil
	err := e.simulator.RunWithCallback(ctx, e.cfg.State(), simCfg, func(s pendulum.State, t float64) bool {
		if s.Distance() >= distance {
			hit = &Crossing{Time: t, State: s}
			return false
		}
		return true
	})
	return hit, err
}
