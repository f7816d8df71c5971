package gui

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/soypat/geometry/md3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	ColBg    = rl.NewColor(4, 4, 10, 255)
	ColOrbit = rl.NewColor(60, 60, 80, 255)
	ColStar  = rl.NewColor(220, 220, 220, 255)
	ColText  = rl.NewColor(140, 140, 140, 255)
	ColBody  = rl.NewColor(180, 180, 180, 255)
)

const ringSegments = 128

type Options struct {
	Title          string
	TickRate       float64
	FPS            int
	CameraDistance float64
	CameraHeight   float64
	Logger         *slog.Logger
}

// windowScheduler runs the pending frame callback once per raylib frame.
type windowScheduler struct {
	pending scene.FrameFunc
}

func (w *windowScheduler) RequestFrame(cb scene.FrameFunc) { w.pending = cb }

func (w *windowScheduler) fire(now time.Time) {
	cb := w.pending
	w.pending = nil
	if cb != nil {
		cb(now)
	}
}

type App struct {
	sc      *orbit.Scene
	stars   *scene.Starfield
	nodes   *factory
	loop    *scene.Loop
	sched   *windowScheduler
	cam     *viz.Camera
	opts    Options
	running bool
}

func NewApp(sc *orbit.Scene, stars *scene.Starfield, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	nodes := newFactory()
	sched := &windowScheduler{}
	loop := scene.NewLoop(sc, orbit.NewClock(opts.TickRate), scene.Bind(sc, nodes), sched)
	loop.Logger = opts.Logger

	return &App{
		sc:      sc,
		stars:   stars,
		nodes:   nodes,
		loop:    loop,
		sched:   sched,
		cam:     viz.NewCamera(opts.CameraDistance, opts.CameraHeight),
		opts:    opts,
		running: true,
	}
}

// Run opens a resizable window and blocks until it is closed.
func Run(sc *orbit.Scene, stars *scene.Starfield, opts Options) error {
	app := NewApp(sc, stars, opts)

	title := opts.Title
	if title == "" {
		title = "orrery"
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(app.opts.FPS))

	app.opts.Logger.Info("window open", "title", title, "bodies", sc.Registry().Len(), "fps", app.opts.FPS)
	app.loop.Start()
	for !rl.WindowShouldClose() {
		app.sched.fire(time.Now())
		app.handleInput()
		app.cam.Update()
		app.draw()
	}
	app.opts.Logger.Info("window closed", "frames", app.loop.Frames(), "ticks", sc.Ticks())
	return nil
}

func (a *App) handleInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		a.cam.Orbit(float64(d.X)*0.005, float64(d.Y)*0.005)
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.cam.ZoomIn()
	} else if wheel < 0 {
		a.cam.ZoomOut()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
		if a.running {
			a.loop.Start()
		} else {
			a.loop.Stop()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.cam.Reset()
	}
}

func (a *App) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(a.cam.Eye()),
		Target:     vec(a.cam.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(a.cam.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.camera3D())
	if a.stars != nil {
		for _, p := range a.stars.Points {
			rl.DrawPoint3D(vec(p), ColStar)
		}
	}
	eye := a.cam.Eye()
	light := a.light()
	a.nodes.walk(func(n *node, world, center md3.Vec) {
		b := n.body
		if b.Orbits() {
			drawRing(vec(center), float32(b.OrbitalRadius))
		}
		shade := 1.0
		if !b.IsRoot() {
			shade = scene.Illumination(world, light, eye, scene.DefaultAmbient)
		}
		drawBody(n, vec(world), shade)
	})
	rl.EndMode3D()

	status := "running"
	if !a.running {
		status = "paused"
	}
	rl.DrawText(fmt.Sprintf("%s  ticks %.0f  %s", a.sc.Name, a.sc.Ticks(), status), 12, 12, 20, ColText)
	rl.DrawText("drag orbit  wheel zoom  space pause  r reset", 12, int32(rl.GetScreenHeight())-28, 16, ColText)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 12)
	rl.EndDrawing()
}

func drawRing(center rl.Vector3, radius float32) {
	step := 2 * math32.Pi / ringSegments
	prev := rl.NewVector3(center.X+radius, center.Y, center.Z)
	for i := 1; i <= ringSegments; i++ {
		a := float32(i) * step
		next := rl.NewVector3(center.X+radius*math32.Cos(a), center.Y, center.Z+radius*math32.Sin(a))
		rl.DrawLine3D(prev, next, ColOrbit)
		prev = next
	}
}

// drawBody draws the sphere plus a short meridian marker so spin is
// visible on untextured spheres.
func drawBody(n *node, at rl.Vector3, shade float64) {
	size := float32(n.body.Size)
	if size <= 0 {
		size = 0.2
	}
	col := dim(parseColor(n.body.Color, ColBody), shade)
	rl.DrawSphere(at, size, col)

	rot := float32(n.rotY)
	tip := rl.NewVector3(at.X+1.3*size*math32.Cos(rot), at.Y, at.Z-1.3*size*math32.Sin(rot))
	rl.DrawLine3D(at, tip, rl.White)
}

// light is the world position of the first root body, the sun.
func (a *App) light() md3.Vec {
	for _, b := range a.sc.Bodies() {
		if b.IsRoot() {
			p, _ := a.sc.WorldPosition(b.ID)
			return p
		}
	}
	return md3.Vec{}
}

func dim(c rl.Color, f float64) rl.Color {
	return rl.NewColor(uint8(float64(c.R)*f), uint8(float64(c.G)*f), uint8(float64(c.B)*f), c.A)
}

func vec(p md3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z))
}

// parseColor reads "#rrggbb" into an opaque colour.
func parseColor(hex string, fallback rl.Color) rl.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return rl.GetColor(uint(v<<8 | 0xff))
}
