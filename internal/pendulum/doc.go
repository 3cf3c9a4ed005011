// Package pendulum implements a 2D spring pendulum anchored at the origin.
//
// The mass hangs from a spring whose other end is fixed at (0, 0). Each
// step the net force (spring plus constant [Gravity]) is evaluated and the
// state is advanced with one of three engines:
//
//   - [Euler]: one force evaluation per step
//   - [Midpoint]: two evaluations, half step through a scratch copy
//   - [RK4]: four evaluations blended 1-2-2-1
//
// All engines are built on [Apply], which updates velocity first and then
// moves the position with the updated velocity.
//
// # Example
//
//	s := pendulum.Default()
//	s.Engine = pendulum.RK4
//	for i := 0; i < 60; i++ {
//	    if err := s.Step(1.0 / 60); err != nil {
//	        return err
//	    }
//	}
//
// # Thread Safety
//
// A State is owned by a single caller. Step must not be called on the same
// State from two goroutines at once.
package pendulum
