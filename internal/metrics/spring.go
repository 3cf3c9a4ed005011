package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/sim"
)

// Compression is the fraction of observed states with the spring shorter
// than its rest length.
type Compression struct {
	compressed int
	samples    int
}

func NewCompression() *Compression {
	return &Compression{}
}

func (c *Compression) Name() string { return "compression" }

func (c *Compression) Observe(s pendulum.State, t float64) {
	c.samples++
	if s.Compressed() {
		c.compressed++
	}
}

func (c *Compression) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.compressed) / float64(c.samples)
}

func (c *Compression) Reset() {
	c.compressed = 0
	c.samples = 0
}

// MaxDistance tracks the farthest the mass got from the anchor.
type MaxDistance struct {
	max float64
}

func NewMaxDistance() *MaxDistance {
	return &MaxDistance{}
}

func (m *MaxDistance) Name() string { return "max_distance" }

func (m *MaxDistance) Observe(s pendulum.State, t float64) {
	m.max = math.Max(m.max, s.Distance())
}

func (m *MaxDistance) Value() float64 { return m.max }

func (m *MaxDistance) Reset() { m.max = 0 }

// Default returns a fresh set of the metrics reported by every run.
func Default(stabilityThreshold float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewStability(stabilityThreshold),
		NewCompression(),
		NewMaxDistance(),
	}
}
