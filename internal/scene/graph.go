package scene

import "github.com/san-kum/orrery/internal/orbit"

// Factory creates renderer nodes for bodies. A body gets two nodes: a pivot
// that carries its orbital position and whose children are its moons, and a
// body node under the pivot that carries its spin.
type Factory interface {
	Root() Node
	NewPivot(b *orbit.Body) Node
	NewBody(b *orbit.Body) Node
}

// Graph is an in-memory Factory backed by Transforms.
type Graph struct {
	root   *Transform
	pivots map[string]*Transform
	bodies map[string]*Transform
}

func NewGraph() *Graph {
	return &Graph{
		root:   &Transform{Name: "root"},
		pivots: make(map[string]*Transform),
		bodies: make(map[string]*Transform),
	}
}

func (g *Graph) Root() Node { return g.root }

func (g *Graph) NewPivot(b *orbit.Body) Node {
	t := &Transform{Name: b.ID + "/pivot"}
	g.pivots[b.ID] = t
	return t
}

func (g *Graph) NewBody(b *orbit.Body) Node {
	t := &Transform{Name: b.ID}
	g.bodies[b.ID] = t
	return t
}

// Body returns the spinning node created for id.
func (g *Graph) Body(id string) (*Transform, bool) {
	t, ok := g.bodies[id]
	return t, ok
}

// Pivot returns the orbit pivot created for id.
func (g *Graph) Pivot(id string) (*Transform, bool) {
	t, ok := g.pivots[id]
	return t, ok
}
