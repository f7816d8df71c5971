package gui

import (
	"github.com/soypat/geometry/md3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/scene"
)

// node is a raylib-side transform. Pivots carry orbital position; body
// nodes carry spin and the body's look.
type node struct {
	pos      md3.Vec
	rotY     float64
	body     *orbit.Body
	children []*node
}

func (n *node) SetPosition(p md3.Vec)      { n.pos = p }
func (n *node) SetRotationY(angle float64) { n.rotY = angle }

func (n *node) Attach(child scene.Node) {
	if c, ok := child.(*node); ok && c != n {
		n.children = append(n.children, c)
	}
}

// factory builds the window's node tree through scene.Bind.
type factory struct {
	root *node
}

func newFactory() *factory { return &factory{root: &node{}} }

func (f *factory) Root() scene.Node                  { return f.root }
func (f *factory) NewPivot(b *orbit.Body) scene.Node { return &node{} }
func (f *factory) NewBody(b *orbit.Body) scene.Node  { return &node{body: b} }

// walk visits every body node with the world position of its pivot and
// the world position of the pivot it orbits.
func (f *factory) walk(fn func(n *node, world, center md3.Vec)) {
	var visit func(n *node, origin md3.Vec)
	visit = func(n *node, origin md3.Vec) {
		world := md3.Add(origin, n.pos)
		for _, c := range n.children {
			if c.body != nil {
				fn(c, world, origin)
				continue
			}
			visit(c, world)
		}
	}
	visit(f.root, md3.Vec{})
}
