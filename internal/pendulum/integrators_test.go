package pendulum_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/pendulum"
)

const frame = 1.0 / 60

// failOnCall returns a force model that delegates to SpringGravity and
// fails on the nth evaluation.
func failOnCall(n int) pendulum.ForceModel {
	calls := 0
	return pendulum.ForceFunc(func(s pendulum.State) (pendulum.Vec, error) {
		calls++
		if calls == n {
			return pendulum.Vec{}, errors.New("injected")
		}
		return pendulum.SpringGravity{}.Forces(s)
	})
}

// forceFree has no force except at the anchor, where it fails.
var forceFree = pendulum.ForceFunc(func(s pendulum.State) (pendulum.Vec, error) {
	if s.Pos.IsZero() {
		return pendulum.Vec{}, pendulum.ErrDegeneratePosition
	}
	return pendulum.Vec{}, nil
})

var _ = Describe("Forces", func() {
	It("combines spring and gravity", func() {
		f, err := pendulum.Default().Forces()
		Expect(err).NotTo(HaveOccurred())
		spring := 7 * (5 - math.Sqrt(8)) / math.Sqrt(8)
		Expect(f.X).To(BeNumerically("~", spring*2, 1e-12))
		Expect(f.Y).To(BeNumerically("~", spring*2+pendulum.Gravity, 1e-12))
	})

	It("pulls inward when stretched", func() {
		s := pendulum.New(1, 1, 3, 0, 0, 0, pendulum.Euler)
		f, err := s.Forces()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.X).To(BeNumerically("~", -2, 1e-12))
		Expect(f.Y).To(BeNumerically("~", pendulum.Gravity, 1e-12))
	})

	It("rejects a mass on the anchor", func() {
		s := pendulum.New(1, 1, 0, 0, 0, 0, pendulum.Euler)
		_, err := s.Forces()
		Expect(err).To(MatchError(pendulum.ErrDegeneratePosition))
	})

	It("is deterministic", func() {
		s := pendulum.New(3.3, 1.7, -0.4, 2.9, 1, -1, pendulum.Euler)
		a, _ := s.Forces()
		b, _ := s.Forces()
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("Apply", func() {
	It("moves the position with the updated velocity", func() {
		s := pendulum.New(1, 1, 1, 2, 3, 4, pendulum.Euler)
		f := pendulum.Vec{X: 10, Y: -20}
		dt := 0.1
		pendulum.Apply(&s, f, dt)

		Expect(s.Vel.X).To(BeNumerically("~", 3+10*dt, 1e-12))
		Expect(s.Vel.Y).To(BeNumerically("~", 4-20*dt, 1e-12))
		Expect(s.Pos.X).To(BeNumerically("~", 1+(3+10*dt)*dt, 1e-12))
		Expect(s.Pos.Y).To(BeNumerically("~", 2+(4-20*dt)*dt, 1e-12))
		Expect(s.Pos.X).NotTo(BeNumerically("~", 1+3*dt, 1e-6))
	})
})

var _ = Describe("Step", func() {
	It("matches the hand-computed Euler step", func() {
		s := pendulum.Default()
		Expect(s.Step(frame)).To(Succeed())

		Expect(s.Vel.X).To(BeNumerically("~", 5.1792, 1e-3))
		Expect(s.Vel.Y).To(BeNumerically("~", 5.2475, 1e-3))
		Expect(s.Pos.X).To(BeNumerically("~", 2.0863, 1e-3))
		Expect(s.Pos.Y).To(BeNumerically("~", 2.0875, 1e-3))
	})

	DescribeTable("is deterministic",
		func(engine pendulum.Engine) {
			a := pendulum.Default()
			a.Engine = engine
			b := a.Clone()
			for i := 0; i < 120; i++ {
				Expect(a.Step(frame)).To(Succeed())
				Expect(b.Step(frame)).To(Succeed())
			}
			Expect(a).To(Equal(b))
		},
		Entry("euler", pendulum.Euler),
		Entry("midpoint", pendulum.Midpoint),
		Entry("rk4", pendulum.RK4),
	)

	DescribeTable("is a no-op for a zero step",
		func(engine pendulum.Engine) {
			s := pendulum.Default()
			s.Engine = engine
			before := s
			Expect(s.Step(0)).To(Succeed())
			Expect(s).To(Equal(before))
		},
		Entry("euler", pendulum.Euler),
		Entry("midpoint", pendulum.Midpoint),
		Entry("rk4", pendulum.RK4),
	)

	DescribeTable("evaluates forces once per stage",
		func(engine pendulum.Engine, want int) {
			s := pendulum.Default()
			s.Engine = engine
			counter := &pendulum.Counter{Model: pendulum.SpringGravity{}}
			Expect(s.StepWith(counter, frame)).To(Succeed())
			Expect(counter.Calls).To(Equal(want))
			Expect(engine.Evaluations()).To(Equal(want))
		},
		Entry("euler", pendulum.Euler, 1),
		Entry("midpoint", pendulum.Midpoint, 2),
		Entry("rk4", pendulum.RK4, 4),
	)

	It("gives distinct results per engine", func() {
		results := map[pendulum.Engine]pendulum.State{}
		for _, engine := range pendulum.Engines() {
			s := pendulum.Default()
			s.Engine = engine
			Expect(s.Step(frame)).To(Succeed())
			results[engine] = s
		}
		Expect(results[pendulum.Midpoint].Pos).NotTo(Equal(results[pendulum.Euler].Pos))
		Expect(results[pendulum.RK4].Pos).NotTo(Equal(results[pendulum.Euler].Pos))
		Expect(results[pendulum.RK4].Pos).NotTo(Equal(results[pendulum.Midpoint].Pos))
	})

	It("Midpoint applies the half-step force to the original state", func() {
		s := pendulum.Default()
		s.Engine = pendulum.Midpoint
		k1, _ := s.Forces()
		mid := s.Clone()
		pendulum.Apply(&mid, k1, frame/2)
		k2, _ := mid.Forces()
		want := s.Clone()
		pendulum.Apply(&want, k2, frame)

		Expect(s.Step(frame)).To(Succeed())
		Expect(s).To(Equal(want))
	})

	Describe("RK4 blend", func() {
		It("only the y component changes in legacy mode", func() {
			fixed := pendulum.Default()
			fixed.Engine = pendulum.RK4
			legacy := fixed.Clone()
			legacy.LegacyRK4 = true

			Expect(fixed.Step(frame)).To(Succeed())
			Expect(legacy.Step(frame)).To(Succeed())

			Expect(legacy.Vel.X).To(Equal(fixed.Vel.X))
			Expect(legacy.Pos.X).To(Equal(fixed.Pos.X))
			Expect(legacy.Vel.Y).NotTo(Equal(fixed.Vel.Y))
		})

		It("tracks Midpoint closely over a short run", func() {
			rk4 := pendulum.Default()
			rk4.Engine = pendulum.RK4
			mid := pendulum.Default()
			mid.Engine = pendulum.Midpoint
			for i := 0; i < 60; i++ {
				Expect(rk4.Step(frame)).To(Succeed())
				Expect(mid.Step(frame)).To(Succeed())
			}
			Expect(rk4.Pos.X).To(BeNumerically("~", mid.Pos.X, 0.05))
			Expect(rk4.Pos.Y).To(BeNumerically("~", mid.Pos.Y, 0.05))
		})
	})

	Describe("atomicity", func() {
		DescribeTable("leaves the state unchanged when a stage fails",
			func(engine pendulum.Engine, failAt int) {
				s := pendulum.Default()
				s.Engine = engine
				before := s

				err := s.StepWith(failOnCall(failAt), frame)
				Expect(err).To(HaveOccurred())

				var stepErr *pendulum.StepError
				Expect(errors.As(err, &stepErr)).To(BeTrue())
				Expect(stepErr.Engine).To(Equal(engine))
				Expect(stepErr.Stage).To(Equal(failAt))
				Expect(s).To(Equal(before))
			},
			Entry("euler stage 1", pendulum.Euler, 1),
			Entry("midpoint stage 1", pendulum.Midpoint, 1),
			Entry("midpoint stage 2", pendulum.Midpoint, 2),
			Entry("rk4 stage 1", pendulum.RK4, 1),
			Entry("rk4 stage 2", pendulum.RK4, 2),
			Entry("rk4 stage 3", pendulum.RK4, 3),
			Entry("rk4 stage 4", pendulum.RK4, 4),
		)

		DescribeTable("survives a scratch copy driven through the anchor",
			func(engine pendulum.Engine) {
				// A half step of 0.5 moves (1, 1) by (-2, -2) * 0.5 onto the anchor.
				s := pendulum.New(1, 1, 1, 1, -2, -2, engine)
				before := s

				err := s.StepWith(forceFree, 1)
				Expect(err).To(MatchError(pendulum.ErrDegeneratePosition))
				Expect(s).To(Equal(before))
			},
			Entry("midpoint", pendulum.Midpoint),
			Entry("rk4", pendulum.RK4),
		)
	})

	It("fails on a degenerate position without moving", func() {
		s := pendulum.New(7, 5, 0, 0, 1, 1, pendulum.RK4)
		err := s.Step(frame)
		Expect(err).To(MatchError(pendulum.ErrDegeneratePosition))
		Expect(s.Pos.IsZero()).To(BeTrue())
		Expect(s.Vel).To(Equal(pendulum.Vec{X: 1, Y: 1}))
	})

	It("rejects an unknown engine", func() {
		s := pendulum.Default()
		s.Engine = pendulum.Engine(42)
		before := s
		Expect(s.Step(frame)).To(MatchError(pendulum.ErrUnknownEngine))
		Expect(s).To(Equal(before))
	})

	It("continues smoothly after switching engines mid-run", func() {
		s := pendulum.Default()
		for i := 0; i < 10; i++ {
			Expect(s.Step(frame)).To(Succeed())
		}

		s.Engine = pendulum.RK4
		prev := s
		want := s.Clone()
		Expect(pendulum.StepRK4(&want, pendulum.SpringGravity{}, frame)).To(Succeed())

		for i := 0; i < 10; i++ {
			Expect(s.Step(frame)).To(Succeed())
			if i == 0 {
				Expect(s).To(Equal(want))
			}
			Expect(s.Pos.X).To(BeNumerically("~", prev.Pos.X, 0.2))
			Expect(s.Pos.Y).To(BeNumerically("~", prev.Pos.Y, 0.2))
			Expect(s.Vel.X).To(BeNumerically("~", prev.Vel.X, 0.5))
			Expect(s.Vel.Y).To(BeNumerically("~", prev.Vel.Y, 0.5))
			prev = s
		}
		Expect(s.Initial).To(Equal(pendulum.Default().Initial))
	})
})
