package pendulum

// Gravity is the constant acceleration along +y, in simulation units.
const Gravity = 4.1

type ForceModel interface {
	Forces(s State) (Vec, error)
}

// ForceFunc adapts a plain function to ForceModel.
type ForceFunc func(s State) (Vec, error)

func (f ForceFunc) Forces(s State) (Vec, error) {
	return f(s)
}

// SpringGravity is the net force of the spring plus gravity on a unit mass.
// The spring pushes outward when shorter than L and pulls inward when longer.
type SpringGravity struct{}

func (SpringGravity) Forces(s State) (Vec, error) {
	if s.Pos.IsZero() {
		return Vec{}, ErrDegeneratePosition
	}
	dist := s.Pos.Length()
	invDist := 1.0 / dist
	spring := s.K * (s.L - dist)
	norm := spring * invDist
	return Vec{
		X: norm * s.Pos.X,
		Y: norm*s.Pos.Y + Gravity,
	}, nil
}

// Counter wraps a ForceModel and counts evaluations.
type Counter struct {
	Model ForceModel
	Calls int
}

func (c *Counter) Forces(s State) (Vec, error) {
	c.Calls++
	return c.Model.Forces(s)
}
