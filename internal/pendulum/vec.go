package pendulum

import (
	"fmt"
	"math"
)

type Vec struct {
	X, Y float64
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

func (v Vec) Add(other Vec) Vec {
	return Vec{v.X + other.X, v.Y + other.Y}
}

func (v Vec) Mult(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
