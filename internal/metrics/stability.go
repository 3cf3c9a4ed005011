package metrics

import "github.com/san-kum/springsim/internal/pendulum"

// Stability is the fraction of observed states that stay within threshold
// of the anchor and hold finite values.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x pendulum.State, t float64) {
	s.samples++
	if !x.Pos.IsValid() || !x.Vel.IsValid() || x.Distance() > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
