package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/soypat/geometry/md3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	width         = 100
	height        = 30
	panelWidth    = 42
	trackCapacity = 240
	orbitStep     = 0.08
)

type frameMsg time.Time

// Options configures the live view.
type Options struct {
	Name           string
	TickRate       float64
	FPS            int
	CameraDistance float64
	CameraHeight   float64
	Theme          string
}

// frameScheduler is the scene.Scheduler behind the live view: bubbletea
// delivers a frameMsg per refresh and the pending callback runs on it.
type frameScheduler struct {
	pending scene.FrameFunc
}

func (f *frameScheduler) RequestFrame(cb scene.FrameFunc) { f.pending = cb }

func (f *frameScheduler) fire(now time.Time) {
	cb := f.pending
	f.pending = nil
	if cb != nil {
		cb(now)
	}
}

// Model is the bubbletea model of the live orrery view.
type Model struct {
	opts     Options
	sc       *orbit.Scene
	graph    *scene.Graph
	binder   *scene.Binder
	loop     *scene.Loop
	sched    *frameScheduler
	stars    *scene.Starfield
	renderer *Renderer
	styles   styles
	themeIdx int

	ids      []string
	focusIdx int
	follow   bool
	running  bool
	showHelp bool
	track    []float64
	interval time.Duration
}

// NewModel binds sc to an in-memory graph and prepares the view.
func NewModel(sc *orbit.Scene, stars *scene.Starfield, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.CameraDistance == 0 {
		opts.CameraDistance, opts.CameraHeight = 140, 50
	}

	g := scene.NewGraph()
	binder := scene.Bind(sc, g)
	sched := &frameScheduler{}
	loop := scene.NewLoop(sc, orbit.NewClock(opts.TickRate), binder, sched)

	cam := NewCamera(opts.CameraDistance, opts.CameraHeight)
	r := NewRenderer(width-panelWidth, height, cam)

	m := Model{
		opts:     opts,
		sc:       sc,
		graph:    g,
		binder:   binder,
		loop:     loop,
		sched:    sched,
		stars:    stars,
		renderer: r,
		themeIdx: themeIndex(opts.Theme),
		styles:   newStyles(GetTheme(opts.Theme)),
		ids:      binder.IDs(),
		running:  true,
		track:    make([]float64, 0, trackCapacity),
		interval: time.Second / time.Duration(opts.FPS),
	}
	loop.Start()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the scene once per frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - panelWidth - 4
		h := msg.Height - 2
		m.renderer.Canvas.Resize(w, h)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case frameMsg:
		m.sched.fire(time.Time(msg))
		m.frame()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cam := m.renderer.Camera
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
		if m.running {
			m.loop.Start()
		} else {
			m.loop.Stop()
		}
	case ".":
		if !m.running {
			m.binder.Apply(m.sc.Step(1))
		}
	case "left", "h":
		cam.Orbit(-orbitStep, 0)
	case "right", "l":
		cam.Orbit(orbitStep, 0)
	case "up", "k":
		cam.Orbit(0, orbitStep)
	case "down", "j":
		cam.Orbit(0, -orbitStep)
	case "+", "=":
		cam.ZoomIn()
	case "-", "_":
		cam.ZoomOut()
	case "]":
		if len(m.ids) == 0 {
			break
		}
		m.focusIdx = (m.focusIdx + 1) % len(m.ids)
		m.track = m.track[:0]
	case "[":
		if len(m.ids) == 0 {
			break
		}
		m.focusIdx = (m.focusIdx - 1 + len(m.ids)) % len(m.ids)
		m.track = m.track[:0]
	case "f":
		m.follow = !m.follow
		if !m.follow {
			cam.Target = md3.Vec{}
		}
	case "o":
		m.renderer.ShowOrbits = !m.renderer.ShowOrbits
	case "s":
		m.renderer.ShowStars = !m.renderer.ShowStars
	case "n":
		m.renderer.Labels = (m.renderer.Labels + 1) % 3
	case "r":
		cam.Reset()
		m.follow = false
	case "t":
		m.themeIdx = (m.themeIdx + 1) % len(Themes)
		m.styles = newStyles(Themes[m.themeIdx])
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) focused() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.focusIdx]
}

// frame runs after the scene step: camera easing and the focus track.
func (m *Model) frame() {
	cam := m.renderer.Camera
	if node, ok := m.graph.Body(m.focused()); ok {
		world := node.World()
		if m.follow {
			cam.Target = world
		}
		if m.running {
			m.track = append(m.track, world.X)
			if len(m.track) > trackCapacity {
				m.track = m.track[1:]
			}
		}
	}
	cam.Update()
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	m.renderer.Draw(m.sc, m.graph, m.stars, m.focused())
	canvasView := m.styles.canvas.Render(m.renderer.Canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(m.stats()))
}

func (m Model) stats() string {
	var s strings.Builder
	title := m.opts.Name
	if title == "" {
		title = "orrery"
	}
	s.WriteString(m.styles.header.Render(strings.ToUpper(title)) + "\n")

	status := m.styles.running.Render("RUNNING")
	if !m.running {
		status = m.styles.paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Ticks", fmt.Sprintf("%.0f", m.sc.Ticks()))
	row("Frames", fmt.Sprintf("%d", m.loop.Frames()))
	row("Bodies", fmt.Sprintf("%d", len(m.ids)))
	s.WriteString("\n")

	if b, ok := m.sc.Registry().Lookup(m.focused()); ok {
		s.WriteString(swatch(b.Color) + m.styles.focus.Render(b.ID) + "\n")
		parent := b.ParentID
		if parent == "" {
			parent = "-"
		}
		row("Parent", parent)
		row("Distance", fmt.Sprintf("%.2f", b.OrbitalRadius))
		row("Speed", fmt.Sprintf("%+.4f rad/t", b.AngularSpeed))
		row("Period", period(&b))
		row("Angle", fmt.Sprintf("%.1f°", b.Angle*180/math.Pi))
		row("Spin", fmt.Sprintf("%.1f°", b.Rotation*180/math.Pi))
		if w, ok := m.sc.WorldPosition(b.ID); ok {
			row("World", fmt.Sprintf("%.1f, %.1f, %.1f", w.X, w.Y, w.Z))
		}
	}

	if len(m.track) > 1 {
		chart := asciigraph.Plot(m.track, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("world x"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(m.styles.help.Render("space pause  . step  ←→↑↓ orbit\n+/- zoom  [ ] focus  f follow\no orbits  s stars  n labels\nt theme  r reset  q quit"))
	} else {
		s.WriteString(m.styles.help.Render("? help  q quit"))
	}
	return s.String()
}

func period(b *orbit.Body) string {
	if !b.Orbits() || b.AngularSpeed == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f ticks", orbit.TwoPi/math.Abs(b.AngularSpeed))
}

// Run starts the live view and blocks until the user quits.
func Run(sc *orbit.Scene, stars *scene.Starfield, opts Options) error {
	p := tea.NewProgram(NewModel(sc, stars, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
