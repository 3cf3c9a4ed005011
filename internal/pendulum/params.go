package pendulum

import "fmt"

// Params exposes the tunable values by name, for settings panels and
// config overrides.
func (s State) Params() map[string]float64 {
	return map[string]float64{
		"k":       s.K,
		"l":       s.L,
		"init_x":  s.Initial.Pos.X,
		"init_y":  s.Initial.Pos.Y,
		"init_vx": s.Initial.Vel.X,
		"init_vy": s.Initial.Vel.Y,
	}
}

// SetParam sets one named value. Initial conditions take effect on the
// next Reset. No range checks are applied.
func (s *State) SetParam(name string, value float64) error {
	switch name {
	case "k":
		s.K = value
	case "l":
		s.L = value
	case "init_x":
		s.Initial.Pos.X = value
	case "init_y":
		s.Initial.Pos.Y = value
	case "init_vx":
		s.Initial.Vel.X = value
	case "init_vy":
		s.Initial.Vel.Y = value
	default:
		return fmt.Errorf("pendulum: unknown param: %s", name)
	}
	return nil
}
