package pendulum

const (
	DefaultSpringConstant = 7.0
	DefaultRestLength     = 5.0
	DefaultX              = 2.0
	DefaultY              = 2.0
	DefaultVX             = 5.0
	DefaultVY             = 5.0
)

// Snapshot holds the initial conditions restored by Reset.
type Snapshot struct {
	Pos Vec
	Vel Vec
}

// State is a spring pendulum with unit mass. Positions are relative to the
// anchor at the origin. The zero State is not usable: L must be positive and
// Pos must differ from (0, 0) whenever forces are evaluated.
type State struct {
	K   float64
	L   float64
	Pos Vec
	Vel Vec

	Initial Snapshot
	Engine  Engine

	// LegacyRK4 makes the RK4 blend reuse the x component of the fourth
	// slope for y, matching trajectories recorded by older builds.
	LegacyRK4 bool
}

func New(k, l, x, y, vx, vy float64, engine Engine) State {
	pos, vel := Vec{x, y}, Vec{vx, vy}
	return State{
		K:       k,
		L:       l,
		Pos:     pos,
		Vel:     vel,
		Initial: Snapshot{Pos: pos, Vel: vel},
		Engine:  engine,
	}
}

func Default() State {
	return New(DefaultSpringConstant, DefaultRestLength, DefaultX, DefaultY, DefaultVX, DefaultVY, Euler)
}

// Clone returns an independent copy. State holds no references, so the
// copy never aliases s.
func (s State) Clone() State {
	return s
}

// Reset restores position and velocity from the initial snapshot.
func (s *State) Reset() {
	s.Pos = s.Initial.Pos
	s.Vel = s.Initial.Vel
}

func (s *State) SetSpringConstant(k float64) { s.K = k }
func (s *State) SetRestLength(l float64)     { s.L = l }
func (s *State) SetEngine(e Engine)          { s.Engine = e }

// SetInitial replaces the snapshot used by Reset without moving the mass.
func (s *State) SetInitial(x, y, vx, vy float64) {
	s.Initial = Snapshot{Pos: Vec{x, y}, Vel: Vec{vx, vy}}
}

// Remember stores the live position and velocity as the initial snapshot.
func (s *State) Remember() {
	s.Initial = Snapshot{Pos: s.Pos, Vel: s.Vel}
}

// Distance returns the distance from the mass to the anchor.
func (s State) Distance() float64 {
	return s.Pos.Length()
}

// Compressed reports whether the spring is shorter than its rest length.
func (s State) Compressed() bool {
	return s.Distance() < s.L
}

func (s State) Forces() (Vec, error) {
	return SpringGravity{}.Forces(s)
}

// Energy returns kinetic plus spring plus gravitational potential energy.
// Gravity acts along +y, so its potential decreases with y.
func (s State) Energy() float64 {
	ke := 0.5 * (s.Vel.X*s.Vel.X + s.Vel.Y*s.Vel.Y)
	stretch := s.Distance() - s.L
	pe := 0.5*s.K*stretch*stretch - Gravity*s.Pos.Y
	return ke + pe
}

// Step advances s by dt with the configured engine.
func (s *State) Step(dt float64) error {
	return s.StepWith(SpringGravity{}, dt)
}

// StepWith advances s by dt with the configured engine and a caller
// supplied force model.
func (s *State) StepWith(fm ForceModel, dt float64) error {
	integ, err := s.Engine.Integrator()
	if err != nil {
		return err
	}
	return integ(s, fm, dt)
}
