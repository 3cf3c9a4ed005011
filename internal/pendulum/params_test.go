package pendulum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/pendulum"
)

var _ = Describe("Params", func() {
	It("lists every tunable value", func() {
		Expect(pendulum.Default().Params()).To(Equal(map[string]float64{
			"k": 7, "l": 5, "init_x": 2, "init_y": 2, "init_vx": 5, "init_vy": 5,
		}))
	})

	It("sets values without range checks", func() {
		s := pendulum.Default()
		Expect(s.SetParam("l", -3)).To(Succeed())
		Expect(s.SetParam("k", 0)).To(Succeed())
		Expect(s.L).To(Equal(-3.0))
		Expect(s.K).To(BeZero())
	})

	It("applies initial conditions on reset", func() {
		s := pendulum.Default()
		for name, v := range map[string]float64{"init_x": -1, "init_y": 4, "init_vx": 0, "init_vy": 0.5} {
			Expect(s.SetParam(name, v)).To(Succeed())
		}
		Expect(s.Pos).To(Equal(pendulum.Vec{X: 2, Y: 2}))

		s.Reset()
		Expect(s.Pos).To(Equal(pendulum.Vec{X: -1, Y: 4}))
		Expect(s.Vel).To(Equal(pendulum.Vec{X: 0, Y: 0.5}))
	})

	It("rejects unknown names", func() {
		s := pendulum.Default()
		Expect(s.SetParam("gravity", 9.81)).To(MatchError(ContainSubstring("unknown param")))
	})

	It("produces finite forces for a non-positive rest length", func() {
		s := pendulum.Default()
		s.L = -2
		f, err := s.Forces()
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IsValid()).To(BeTrue())
	})
})
