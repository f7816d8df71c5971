package scene

import "github.com/san-kum/orrery/internal/orbit"

// Binder keeps the renderer nodes of a scene in registration order so that
// the ordered updates from orbit.Scene.Step map onto them by index.
type Binder struct {
	ids    []string
	pivots []Node
	bodies []Node
}

// Bind creates and attaches nodes for every body of sc. Parents are always
// bound before their children because the registry enforces that order.
func Bind(sc *orbit.Scene, f Factory) *Binder {
	bodies := sc.Bodies()
	b := &Binder{
		ids:    make([]string, 0, len(bodies)),
		pivots: make([]Node, 0, len(bodies)),
		bodies: make([]Node, 0, len(bodies)),
	}
	byID := make(map[string]Node, len(bodies))

	root := f.Root()
	for _, body := range bodies {
		pivot := f.NewPivot(body)
		node := f.NewBody(body)
		pivot.Attach(node)

		parent := root
		if p, ok := byID[body.ParentID]; ok {
			parent = p
		}
		parent.Attach(pivot)
		byID[body.ID] = pivot

		b.ids = append(b.ids, body.ID)
		b.pivots = append(b.pivots, pivot)
		b.bodies = append(b.bodies, node)
	}
	b.Apply(sc.Updates())
	return b
}

// Apply pushes one tick of updates into the bound nodes.
func (b *Binder) Apply(updates []orbit.Update) {
	n := len(updates)
	if len(b.pivots) < n {
		n = len(b.pivots)
	}
	for i := 0; i < n; i++ {
		b.pivots[i].SetPosition(updates[i].Position)
		b.bodies[i].SetRotationY(updates[i].RotationY)
	}
}

// IDs returns the bound body IDs in order.
func (b *Binder) IDs() []string { return b.ids }
