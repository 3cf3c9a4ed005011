package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/sim"
)

const (
	DefaultDt                 = 1.0 / 60
	DefaultDuration           = 10.0
	DefaultStabilityThreshold = 100.0
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Engine             pendulum.Engine `yaml:"engine"`
	Dt                 float64         `yaml:"dt"`
	Duration           float64         `yaml:"duration"`
	SpringConstant     float64         `yaml:"spring_constant"`
	RestLength         float64         `yaml:"rest_length"`
	InitState          InitStateConfig `yaml:"init_state"`
	LegacyRK4          bool            `yaml:"legacy_rk4"`
	StabilityThreshold float64         `yaml:"stability_threshold"`
	Switches           []SwitchConfig  `yaml:"switches,omitempty"`
}

type InitStateConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

type SwitchConfig struct {
	At     float64         `yaml:"at"`
	Engine pendulum.Engine `yaml:"engine"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:         pendulum.Euler,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		SpringConstant: pendulum.DefaultSpringConstant,
		RestLength:     pendulum.DefaultRestLength,
		InitState: InitStateConfig{
			X:  pendulum.DefaultX,
			Y:  pendulum.DefaultY,
			VX: pendulum.DefaultVX,
			VY: pendulum.DefaultVY,
		},
		StabilityThreshold: DefaultStabilityThreshold,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values a run needs. The pendulum core accepts any
// numbers; this is the boundary where nonsense gets rejected.
func (c *Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %g", ErrInvalidConfig, c.Duration)
	}
	if c.RestLength <= 0 {
		return fmt.Errorf("%w: rest_length must be positive, got %g", ErrInvalidConfig, c.RestLength)
	}
	if c.InitState.X == 0 && c.InitState.Y == 0 {
		return fmt.Errorf("%w: initial position must not be the anchor: %w", ErrInvalidConfig, pendulum.ErrDegeneratePosition)
	}
	if !c.Engine.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, pendulum.ErrUnknownEngine)
	}
	for _, sw := range c.Switches {
		if !sw.Engine.Valid() {
			return fmt.Errorf("%w: switch at %g: %w", ErrInvalidConfig, sw.At, pendulum.ErrUnknownEngine)
		}
		if sw.At < 0 {
			return fmt.Errorf("%w: switch time must not be negative, got %g", ErrInvalidConfig, sw.At)
		}
	}
	return nil
}

func (c *Config) State() pendulum.State {
	s := pendulum.New(
		c.SpringConstant,
		c.RestLength,
		c.InitState.X,
		c.InitState.Y,
		c.InitState.VX,
		c.InitState.VY,
		c.Engine,
	)
	s.LegacyRK4 = c.LegacyRK4
	return s
}

func (c *Config) SimConfig() sim.Config {
	cfg := sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		ValidateState: true,
	}
	for _, sw := range c.Switches {
		cfg.Switches = append(cfg.Switches, sim.Switch{At: sw.At, Engine: sw.Engine})
	}
	return cfg
}

// SetParam overrides one physical parameter by its pendulum name (k, l,
// init_x, init_y, init_vx, init_vy).
func (c *Config) SetParam(name string, value float64) error {
	s := c.State()
	if err := s.SetParam(name, value); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.SpringConstant = s.K
	c.RestLength = s.L
	c.InitState = InitStateConfig{
		X:  s.Initial.Pos.X,
		Y:  s.Initial.Pos.Y,
		VX: s.Initial.Vel.X,
		VY: s.Initial.Vel.Y,
	}
	return nil
}

// Clone returns a deep copy, so presets can be modified by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Switches = append([]SwitchConfig(nil), c.Switches...)
	return &out
}
