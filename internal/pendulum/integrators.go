package pendulum

// Integrator advances s by dt using fm. On error s is left unchanged.
type Integrator func(s *State, fm ForceModel, dt float64) error

// Apply performs one explicit substep: velocity first, then position with
// the updated velocity.
func Apply(s *State, f Vec, dt float64) {
	s.Vel.X += f.X * dt
	s.Vel.Y += f.Y * dt
	s.Pos.X += s.Vel.X * dt
	s.Pos.Y += s.Vel.Y * dt
}

func StepEuler(s *State, fm ForceModel, dt float64) error {
	f, err := fm.Forces(*s)
	if err != nil {
		return &StepError{Engine: Euler, Stage: 1, Err: err}
	}
	Apply(s, f, dt)
	return nil
}

func StepMidpoint(s *State, fm ForceModel, dt float64) error {
	k1, err := fm.Forces(*s)
	if err != nil {
		return &StepError{Engine: Midpoint, Stage: 1, Err: err}
	}

	mid := s.Clone()
	Apply(&mid, k1, dt*0.5)
	k2, err := fm.Forces(mid)
	if err != nil {
		return &StepError{Engine: Midpoint, Stage: 2, Err: err}
	}

	Apply(s, k2, dt)
	return nil
}

// StepRK4 runs the four-stage scheme with Apply as the stage primitive:
// each slope is the force at a scratch copy advanced by the previous slope.
func StepRK4(s *State, fm ForceModel, dt float64) error {
	dt2 := dt * 0.5

	k1, err := fm.Forces(*s)
	if err != nil {
		return &StepError{Engine: RK4, Stage: 1, Err: err}
	}

	s2 := s.Clone()
	Apply(&s2, k1, dt2)
	k2, err := fm.Forces(s2)
	if err != nil {
		return &StepError{Engine: RK4, Stage: 2, Err: err}
	}

	s3 := s.Clone()
	Apply(&s3, k2, dt2)
	k3, err := fm.Forces(s3)
	if err != nil {
		return &StepError{Engine: RK4, Stage: 3, Err: err}
	}

	s4 := s.Clone()
	Apply(&s4, k3, dt)
	k4, err := fm.Forces(s4)
	if err != nil {
		return &StepError{Engine: RK4, Stage: 4, Err: err}
	}

	k4y := k4.Y
	if s.LegacyRK4 {
		k4y = k4.X
	}
	avg := Vec{
		X: (k1.X + 2*k2.X + 2*k3.X + k4.X) / 6,
		Y: (k1.Y + 2*k2.Y + 2*k3.Y + k4y) / 6,
	}

	Apply(s, avg, dt)
	return nil
}
