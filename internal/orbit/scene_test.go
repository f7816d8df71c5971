package orbit_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/orbit"
)

func angularGap(a, b float64) float64 {
	d := orbit.Wrap(a - b)
	return math.Min(d, orbit.TwoPi-d)
}

var _ = Describe("Scene", func() {
	var sc *orbit.Scene

	BeforeEach(func() {
		sc = orbit.NewScene()
		Expect(sc.Register(orbit.Body{ID: "sun", Size: 10, SelfRotationSpeed: 0.002})).To(Succeed())
	})

	Describe("Step", func() {
		It("places a body on its orbit after ten ticks", func() {
			Expect(sc.Register(orbit.Body{
				ID: "earth", ParentID: "sun", Size: 1, OrbitalRadius: 10, AngularSpeed: 0.1,
			})).To(Succeed())

			var updates []orbit.Update
			for i := 0; i < 10; i++ {
				updates = sc.Step(1)
			}

			earth, ok := sc.Registry().Get("earth")
			Expect(ok).To(BeTrue())
			Expect(earth.Angle).To(BeNumerically("~", 1.0, 1e-9))

			Expect(updates).To(HaveLen(2))
			u := updates[1]
			Expect(u.BodyID).To(Equal("earth"))
			Expect(u.Position.X).To(BeNumerically("~", 5.403, 1e-3))
			Expect(u.Position.Y).To(BeZero())
			Expect(u.Position.Z).To(BeNumerically("~", 8.415, 1e-3))
		})

		It("keeps a zero-distance body at the origin", func() {
			for i := 0; i < 1000; i++ {
				u := sc.Step(1)[0]
				Expect(u.Position.X).To(BeZero())
				Expect(u.Position.Y).To(BeZero())
				Expect(u.Position.Z).To(BeZero())
			}
			sun, _ := sc.Registry().Get("sun")
			Expect(sun.Angle).To(BeZero())
		})

		It("spins bodies independently of their orbit", func() {
			u := sc.Step(10)[0]
			Expect(u.RotationY).To(BeNumerically("~", 0.02, 1e-12))
		})

		It("keeps every position on its orbit circle", func() {
			Expect(sc.Register(orbit.Body{
				ID: "mars", ParentID: "sun", OrbitalRadius: 42, AngularSpeed: 0.008, Angle: 2.2,
			})).To(Succeed())
			Expect(sc.Register(orbit.Body{
				ID: "venus", ParentID: "sun", OrbitalRadius: 25, AngularSpeed: -0.015, Angle: 0.3,
			})).To(Succeed())

			for i := 0; i < 5000; i++ {
				for _, u := range sc.Step(0.7) {
					b, _ := sc.Registry().Get(u.BodyID)
					r2 := u.Position.X*u.Position.X + u.Position.Z*u.Position.Z
					Expect(r2).To(BeNumerically("~", b.OrbitalRadius*b.OrbitalRadius, 1e-6))
				}
			}
		})

		It("advances angles by n times speed times delta modulo a full turn", func() {
			const (
				initial = 5.9
				speed   = 0.37
				delta   = 0.25
				n       = 400
			)
			Expect(sc.Register(orbit.Body{
				ID: "p", ParentID: "sun", OrbitalRadius: 3, AngularSpeed: speed, Angle: initial,
			})).To(Succeed())
			for i := 0; i < n; i++ {
				sc.Step(delta)
			}
			p, _ := sc.Registry().Get("p")
			Expect(angularGap(p.Angle, initial+n*speed*delta)).To(BeNumerically("<", 1e-9))
			Expect(p.Angle).To(BeNumerically(">=", 0))
			Expect(p.Angle).To(BeNumerically("<", orbit.TwoPi))
		})

		It("treats n steps of delta like one step of n times delta", func() {
			other := orbit.NewScene()
			Expect(other.Register(orbit.Body{ID: "sun", SelfRotationSpeed: 0.002})).To(Succeed())
			for _, s := range []*orbit.Scene{sc, other} {
				Expect(s.Register(orbit.Body{
					ID: "jupiter", ParentID: "sun", OrbitalRadius: 58, AngularSpeed: 0.006, Angle: 1.1,
				})).To(Succeed())
			}

			for i := 0; i < 120; i++ {
				sc.Step(0.5)
			}
			other.Step(60)

			a, _ := sc.Registry().Get("jupiter")
			b, _ := other.Registry().Get("jupiter")
			Expect(angularGap(a.Angle, b.Angle)).To(BeNumerically("<", 1e-9))
			Expect(angularGap(a.Rotation, b.Rotation)).To(BeNumerically("<", 1e-9))
			Expect(sc.Ticks()).To(BeNumerically("~", other.Ticks(), 1e-9))
		})

		It("reuses its update buffer", func() {
			first := sc.Step(1)
			second := sc.Step(1)
			Expect(&first[0]).To(BeIdenticalTo(&second[0]))
		})
	})

	Describe("parent frames", func() {
		BeforeEach(func() {
			Expect(sc.Register(orbit.Body{
				ID: "earth", ParentID: "sun", OrbitalRadius: 34, AngularSpeed: 0.01,
			})).To(Succeed())
			Expect(sc.Register(orbit.Body{
				ID: "moon", ParentID: "earth", OrbitalRadius: 4, AngularSpeed: 0.05, Angle: 0.5,
			})).To(Succeed())
		})

		It("does not disturb a child's local angle when the parent moves", func() {
			moon, _ := sc.Registry().Get("moon")
			earth, _ := sc.Registry().Get("earth")
			earth.AngularSpeed = 1.3
			earth.OrbitalRadius = 50

			sc.Step(3)
			Expect(moon.Angle).To(BeNumerically("~", 0.5+3*0.05, 1e-12))
			Expect(moon.Position().X).To(BeNumerically("~", 4*math.Cos(0.65), 1e-12))
			Expect(moon.Position().Z).To(BeNumerically("~", 4*math.Sin(0.65), 1e-12))
		})

		It("composes world positions from local frames", func() {
			sc.Step(7)
			earth, _ := sc.Registry().Get("earth")
			moon, _ := sc.Registry().Get("moon")

			world, ok := sc.WorldPosition("moon")
			Expect(ok).To(BeTrue())
			Expect(world.X).To(BeNumerically("~", earth.Position().X+moon.Position().X, 1e-12))
			Expect(world.Z).To(BeNumerically("~", earth.Position().Z+moon.Position().Z, 1e-12))

			_, ok = sc.WorldPosition("pluto")
			Expect(ok).To(BeFalse())
		})
	})
})
