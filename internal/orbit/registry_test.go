package orbit_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/orbit"
)

var _ = Describe("Registry", func() {
	var reg *orbit.Registry

	BeforeEach(func() {
		reg = orbit.NewRegistry()
	})

	It("preserves insertion order", func() {
		names := []string{"sun", "mercury", "venus", "earth", "moon"}
		Expect(reg.Register(orbit.Body{ID: "sun"})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "mercury", ParentID: "sun", OrbitalRadius: 18})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "venus", ParentID: "sun", OrbitalRadius: 25})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "earth", ParentID: "sun", OrbitalRadius: 34})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "moon", ParentID: "earth", OrbitalRadius: 4})).To(Succeed())

		var got []string
		for _, b := range reg.All() {
			got = append(got, b.ID)
		}
		Expect(got).To(Equal(names))
		Expect(reg.Len()).To(Equal(5))
		Expect(reg.Depth("moon")).To(Equal(2))
		Expect(reg.Depth("nope")).To(Equal(-1))
		Expect(reg.Children("sun")).To(HaveLen(3))
	})

	It("rejects a parent that is not registered yet", func() {
		err := reg.Register(orbit.Body{ID: "moon", ParentID: "earth", OrbitalRadius: 4})
		Expect(err).To(MatchError(orbit.ErrUnknownParent))

		var cfgErr *orbit.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Body).To(Equal("moon"))
		Expect(cfgErr.Field).To(Equal("parent"))
		Expect(reg.Len()).To(BeZero())
	})

	It("rejects registering the same body twice", func() {
		Expect(reg.Register(orbit.Body{ID: "sun"})).To(Succeed())
		err := reg.Register(orbit.Body{ID: "sun", OrbitalRadius: 3})
		Expect(err).To(MatchError(orbit.ErrDuplicateBody))
		Expect(reg.Len()).To(Equal(1))

		sun, _ := reg.Get("sun")
		Expect(sun.OrbitalRadius).To(BeZero())
	})

	It("rejects trees deeper than sun, planet, moon", func() {
		Expect(reg.Register(orbit.Body{ID: "sun"})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "earth", ParentID: "sun", OrbitalRadius: 34})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "moon", ParentID: "earth", OrbitalRadius: 4})).To(Succeed())
		err := reg.Register(orbit.Body{ID: "lander", ParentID: "moon", OrbitalRadius: 1})
		Expect(err).To(MatchError(orbit.ErrTooDeep))
	})

	DescribeTable("invalid bodies",
		func(b orbit.Body, want error, field string) {
			err := reg.Register(b)
			Expect(err).To(MatchError(want))
			var cfgErr *orbit.ConfigError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("empty id", orbit.Body{}, orbit.ErrEmptyID, "id"),
		Entry("negative distance", orbit.Body{ID: "x", OrbitalRadius: -1}, orbit.ErrNegativeRadius, "distance"),
		Entry("negative size", orbit.Body{ID: "x", Size: -2}, orbit.ErrNegativeRadius, "radius"),
		Entry("NaN speed", orbit.Body{ID: "x", AngularSpeed: math.NaN()}, orbit.ErrNonFinite, "orbital_speed"),
		Entry("Inf spin", orbit.Body{ID: "x", SelfRotationSpeed: math.Inf(1)}, orbit.ErrNonFinite, "self_rotation_speed"),
		Entry("bad color", orbit.Body{ID: "x", Color: "red"}, orbit.ErrInvalidColor, "color"),
		Entry("short color", orbit.Body{ID: "x", Color: "#fff"}, orbit.ErrInvalidColor, "color"),
	)

	It("hands out copies from Lookup", func() {
		Expect(reg.Register(orbit.Body{ID: "sun"})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "p", ParentID: "sun", OrbitalRadius: 3, AngularSpeed: 0.1})).To(Succeed())

		cp, ok := reg.Lookup("p")
		Expect(ok).To(BeTrue())
		cp.OrbitalRadius = -5
		cp.AngularSpeed = math.NaN()

		live, _ := reg.Get("p")
		Expect(live.OrbitalRadius).To(Equal(3.0))
		Expect(live.AngularSpeed).To(Equal(0.1))
		Expect(cp.Position()).To(Equal(live.Position()))

		_, ok = reg.Lookup("nope")
		Expect(ok).To(BeFalse())
	})

	It("wraps initial angles into a single turn", func() {
		Expect(reg.Register(orbit.Body{ID: "sun"})).To(Succeed())
		Expect(reg.Register(orbit.Body{ID: "p", ParentID: "sun", OrbitalRadius: 1, Angle: -math.Pi / 2})).To(Succeed())
		p, _ := reg.Get("p")
		Expect(p.Angle).To(BeNumerically("~", 1.5*math.Pi, 1e-12))
		Expect(p.Position().Z).To(BeNumerically("~", -1, 1e-12))
	})
})
