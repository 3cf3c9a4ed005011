package report

import (
	"fmt"
	"io"

	"github.com/san-kum/springsim/internal/pendulum"
)

// Tracer is a sim.Observer that prints every Every-th state of a run.
// Every <= 1 prints them all.
type Tracer struct {
	W     io.Writer
	Every int

	n int
}

func NewTracer(w io.Writer, every int) *Tracer {
	return &Tracer{W: w, Every: every}
}

func (tr *Tracer) OnStep(s pendulum.State, t float64) {
	step := tr.n
	tr.n++
	if tr.Every > 1 && step%tr.Every != 0 {
		return
	}
	fmt.Fprintf(tr.W, "%6d t=%8.4f %-8s pos=%s vel=%s d=%.4f\n",
		step, t, s.Engine, s.Pos, s.Vel, s.Distance())
}
