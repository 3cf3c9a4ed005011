package config

import (
	"sort"

	"github.com/san-kum/springsim/internal/pendulum"
)

func preset(engine pendulum.Engine, k, l, x, y, vx, vy, duration float64) *Config {
	cfg := DefaultConfig()
	cfg.Engine = engine
	cfg.SpringConstant = k
	cfg.RestLength = l
	cfg.InitState = InitStateConfig{X: x, Y: y, VX: vx, VY: vy}
	cfg.Duration = duration
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"stiff":   preset(pendulum.RK4, 40, 5, 2, 2, 5, 5, 10),
	"slack":   preset(pendulum.Midpoint, 1.5, 5, 2, 2, 5, 5, 20),
	"hang":    preset(pendulum.RK4, 7, 5, 0.01, 5.5, 0, 0, 10),
	"swing":   preset(pendulum.RK4, 7, 5, 5, 1, 0, 0, 20),
	"legacy": func() *Config {
		cfg := preset(pendulum.RK4, 7, 5, 2, 2, 5, 5, 10)
		cfg.LegacyRK4 = true
		return cfg
	}(),
	"handover": func() *Config {
		cfg := preset(pendulum.Euler, 7, 5, 2, 2, 5, 5, 10)
		cfg.Switches = []SwitchConfig{{At: 5, Engine: pendulum.RK4}}
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
