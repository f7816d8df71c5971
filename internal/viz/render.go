package viz

import (
	"math"
	"sort"

	"github.com/soypat/geometry/md3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
)

const ringSegments = 96

// LabelMode selects which bodies get a name tag.
type LabelMode int

const (
	LabelFocused LabelMode = iota
	LabelAll
	LabelNone
)

// Renderer draws an orrery frame onto a braille canvas.
type Renderer struct {
	Canvas     *Canvas
	Camera     *Camera
	ShowStars  bool
	ShowOrbits bool
	Labels     LabelMode
}

func NewRenderer(w, h int, cam *Camera) *Renderer {
	return &Renderer{
		Canvas:     NewCanvas(w, h),
		Camera:     cam,
		ShowStars:  true,
		ShowOrbits: true,
	}
}

type projected struct {
	id     string
	x, y   int
	depth  float64
	radius int
}

// Draw renders the bodies of sc as bound into g. Bodies are painted far to
// near so nearer discs overdraw farther ones.
func (r *Renderer) Draw(sc *orbit.Scene, g *scene.Graph, stars *scene.Starfield, focus string) {
	c := r.Canvas
	c.Clear()
	sw, sh := c.SubSize()

	if r.ShowStars && stars != nil {
		for _, p := range stars.Points {
			if x, y, _, _, ok := r.Camera.Project(p, sw, sh); ok {
				c.Set(x, y)
			}
		}
	}

	bodies := sc.Bodies()
	if r.ShowOrbits {
		for _, b := range bodies {
			if b.Orbits() {
				r.drawRing(centerOf(g, b), b.OrbitalRadius, sw, sh)
			}
		}
	}

	discs := make([]projected, 0, len(bodies))
	for _, b := range bodies {
		node, ok := g.Body(b.ID)
		if !ok {
			continue
		}
		x, y, depth, scale, visible := r.Camera.Project(node.World(), sw, sh)
		if !visible {
			continue
		}
		discs = append(discs, projected{id: b.ID, x: x, y: y, depth: depth, radius: int(b.Size * scale)})
	}
	sort.Slice(discs, func(i, j int) bool { return discs[i].depth > discs[j].depth })
	for _, d := range discs {
		c.FillDisc(d.x, d.y, d.radius)
	}
	for _, d := range discs {
		if r.Labels == LabelAll || (r.Labels == LabelFocused && d.id == focus) {
			c.Label(d.x+2*(d.radius+2), d.y, d.id)
		}
	}
}

func (r *Renderer) drawRing(center md3.Vec, radius float64, sw, sh int) {
	var px, py int
	var prev bool
	for i := 0; i <= ringSegments; i++ {
		a := float64(i) / ringSegments * orbit.TwoPi
		sin, cos := math.Sincos(a)
		p := md3.Add(center, md3.Vec{X: radius * cos, Z: radius * sin})
		x, y, _, _, ok := r.Camera.Project(p, sw, sh)
		ok = ok && nearScreen(x, y, sw, sh)
		if ok && prev {
			r.Canvas.DrawLine(px, py, x, y)
		}
		px, py, prev = x, y, ok
	}
}

// centerOf returns the world position of the pivot b orbits around.
func centerOf(g *scene.Graph, b *orbit.Body) md3.Vec {
	if b.IsRoot() {
		return md3.Vec{}
	}
	if p, ok := g.Pivot(b.ParentID); ok {
		return p.World()
	}
	return md3.Vec{}
}

// nearScreen bounds line rasterisation for points just in front of the
// near plane, which project far outside the canvas.
func nearScreen(x, y, sw, sh int) bool {
	return x > -sw && x < 2*sw && y > -sh && y < 2*sh
}
