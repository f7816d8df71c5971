package scene

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soypat/geometry/md3"

	"github.com/san-kum/orrery/internal/orbit"
)

func newTestScene() *orbit.Scene {
	sc := orbit.NewScene()
	for _, b := range []orbit.Body{
		{ID: "sun", SelfRotationSpeed: 0.002},
		{ID: "earth", ParentID: "sun", OrbitalRadius: 34, AngularSpeed: 0.01, SelfRotationSpeed: 0.01},
		{ID: "moon", ParentID: "earth", OrbitalRadius: 4, AngularSpeed: 0.05, Angle: 1},
		{ID: "mars", ParentID: "sun", OrbitalRadius: 42, AngularSpeed: 0.008, Angle: 2},
	} {
		if err := sc.Register(b); err != nil {
			panic(err)
		}
	}
	return sc
}

// manualScheduler fires frames only when the test says so.
type manualScheduler struct {
	pending FrameFunc
}

func (m *manualScheduler) RequestFrame(cb FrameFunc) { m.pending = cb }

func (m *manualScheduler) fire(now time.Time) bool {
	cb := m.pending
	m.pending = nil
	if cb == nil {
		return false
	}
	cb(now)
	return true
}

func TestBinder(t *testing.T) {
	Convey("Binding a scene to an in-memory graph", t, func() {
		sc := newTestScene()
		g := NewGraph()
		b := Bind(sc, g)

		So(b.IDs(), ShouldResemble, []string{"sun", "earth", "moon", "mars"})

		Convey("attaches moons under their planet's pivot", func() {
			moonPivot, ok := g.Pivot("moon")
			So(ok, ShouldBeTrue)
			earthPivot, _ := g.Pivot("earth")
			So(moonPivot.Parent(), ShouldEqual, earthPivot)

			sunPivot, _ := g.Pivot("sun")
			So(sunPivot.Parent(), ShouldEqual, g.Root())
			So(len(sunPivot.Children()), ShouldEqual, 3)
		})

		Convey("applies positions to pivots and spin to bodies", func() {
			for i := 0; i < 25; i++ {
				b.Apply(sc.Step(1))
			}
			earth, _ := sc.Registry().Get("earth")
			pivot, _ := g.Pivot("earth")
			node, _ := g.Body("earth")

			So(pivot.Position, ShouldResemble, earth.Position())
			So(node.RotationY, ShouldAlmostEqual, 0.25, 1e-12)
			So(node.Position, ShouldResemble, md3.Vec{})
		})

		Convey("agrees with the model's world positions", func() {
			for i := 0; i < 40; i++ {
				b.Apply(sc.Step(1.5))
			}
			want, _ := sc.WorldPosition("moon")
			moon, _ := g.Body("moon")
			got := moon.World()
			So(got.X, ShouldAlmostEqual, want.X, 1e-9)
			So(got.Y, ShouldAlmostEqual, want.Y, 1e-9)
			So(got.Z, ShouldAlmostEqual, want.Z, 1e-9)
		})
	})
}

func TestTransform(t *testing.T) {
	Convey("A rotated parent rotates its children's frame", t, func() {
		parent := &Transform{Position: md3.Vec{X: 10}}
		child := &Transform{Position: md3.Vec{X: 1}}
		parent.Attach(child)
		parent.SetRotationY(math.Pi / 2)

		w := child.World()
		So(w.X, ShouldAlmostEqual, 10, 1e-12)
		So(w.Z, ShouldAlmostEqual, -1, 1e-12)

		Convey("and reattaching moves the child", func() {
			other := &Transform{}
			other.Attach(child)
			So(len(parent.Children()), ShouldEqual, 0)
			So(child.Parent(), ShouldEqual, other)
			So(child.World(), ShouldResemble, md3.Vec{X: 1})
		})
	})
}

func TestLoop(t *testing.T) {
	Convey("A loop driven frame by frame", t, func() {
		sc := newTestScene()
		g := NewGraph()
		sched := &manualScheduler{}
		loop := NewLoop(sc, orbit.NewClock(60), Bind(sc, g), sched)

		var frames int
		loop.OnFrame = func(updates []orbit.Update, ticks float64) {
			frames++
			So(len(updates), ShouldEqual, 4)
		}
		loop.Start()

		start := time.Unix(0, 0)
		So(sched.fire(start), ShouldBeTrue)
		So(sc.Ticks(), ShouldEqual, 0.0)

		Convey("advances by wall-clock time, not by frame count", func() {
			// 30 Hz for one second then 120 Hz for one second.
			now := start
			for i := 0; i < 30; i++ {
				now = now.Add(time.Second / 30)
				sched.fire(now)
			}
			for i := 0; i < 120; i++ {
				now = now.Add(time.Second / 120)
				sched.fire(now)
			}
			So(sc.Ticks(), ShouldAlmostEqual, 120.0, 1e-3)
			So(frames, ShouldEqual, 151)
			So(loop.Frames(), ShouldEqual, 151)

			mars, _ := g.Pivot("mars")
			body, _ := sc.Registry().Get("mars")
			So(mars.Position, ShouldResemble, body.Position())
		})

		Convey("stops requesting frames once stopped", func() {
			loop.Stop()
			So(sched.fire(start.Add(time.Second)), ShouldBeTrue)
			So(sched.fire(start.Add(2*time.Second)), ShouldBeFalse)
			So(frames, ShouldEqual, 1)
		})
	})
}

func TestTickerScheduler(t *testing.T) {
	Convey("The ticker scheduler runs until cancelled", t, func() {
		sched := NewTickerScheduler(200)
		So(sched.Interval(), ShouldEqual, 5*time.Millisecond)

		sc := newTestScene()
		loop := NewLoop(sc, orbit.NewClock(60), nil, sched)
		loop.Start()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		err := sched.Run(ctx)

		So(err, ShouldEqual, context.DeadlineExceeded)
		So(loop.Frames(), ShouldBeGreaterThan, 1)
		So(sc.Ticks(), ShouldBeGreaterThan, 0.0)
	})
}

func TestStarfield(t *testing.T) {
	Convey("A seeded starfield", t, func() {
		a := NewStarfield(500, 2000, rand.New(rand.NewSource(9)))
		b := NewStarfield(500, 2000, rand.New(rand.NewSource(9)))

		So(len(a.Points), ShouldEqual, 500)
		So(a.Points, ShouldResemble, b.Points)
		for _, p := range a.Points {
			So(math.Abs(p.X), ShouldBeLessThanOrEqualTo, 1000.0)
			So(math.Abs(p.Y), ShouldBeLessThanOrEqualTo, 1000.0)
			So(math.Abs(p.Z), ShouldBeLessThanOrEqualTo, 1000.0)
		}
		So(len(NewStarfield(-3, 10, rand.New(rand.NewSource(1))).Points), ShouldEqual, 0)
	})
}

func TestIllumination(t *testing.T) {
	Convey("A body lit by the sun", t, func() {
		sun := md3.Vec{}
		body := md3.Vec{X: 10}

		Convey("is fully bright with the light behind the viewer", func() {
			So(Illumination(body, sun, md3.Vec{X: 5}, DefaultAmbient), ShouldAlmostEqual, 1.0, 1e-12)
		})
		Convey("shows only ambient light when backlit", func() {
			So(Illumination(body, sun, md3.Vec{X: 20}, DefaultAmbient), ShouldAlmostEqual, DefaultAmbient, 1e-12)
		})
		Convey("is half lit from the side", func() {
			So(Illumination(body, sun, md3.Vec{X: 10, Y: 10}, 0), ShouldAlmostEqual, 0.5, 1e-12)
		})
		Convey("is fully bright at the light itself", func() {
			So(Illumination(sun, sun, md3.Vec{Z: 3}, DefaultAmbient), ShouldEqual, 1.0)
		})
	})
}
