package scene

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// Node is a transform in a renderer's scene graph.
type Node interface {
	SetPosition(p md3.Vec)
	SetRotationY(angle float64)
	Attach(child Node)
}

// Transform is an in-memory Node. World transforms compose translation and
// Y rotation down the tree.
type Transform struct {
	Name      string
	Position  md3.Vec
	RotationY float64

	parent   *Transform
	children []*Transform
}

func (t *Transform) SetPosition(p md3.Vec)      { t.Position = p }
func (t *Transform) SetRotationY(angle float64) { t.RotationY = angle }

// Attach reparents child under t. Only *Transform children are accepted;
// other Node implementations are ignored.
func (t *Transform) Attach(child Node) {
	c, ok := child.(*Transform)
	if !ok || c == t {
		return
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = t
	t.children = append(t.children, c)
}

func (t *Transform) detach(c *Transform) {
	for i, ch := range t.children {
		if ch == c {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}

func (t *Transform) Parent() *Transform     { return t.parent }
func (t *Transform) Children() []*Transform { return t.children }

// World returns the node's position in world coordinates.
func (t *Transform) World() md3.Vec {
	p := t.Position
	for n := t.parent; n != nil; n = n.parent {
		p = md3.Add(rotateY(p, n.RotationY), n.Position)
	}
	return p
}

// rotateY rotates p about the Y axis by angle, right handed.
func rotateY(p md3.Vec, angle float64) md3.Vec {
	if angle == 0 {
		return p
	}
	sin, cos := math.Sincos(angle)
	return md3.Vec{X: p.X*cos + p.Z*sin, Y: p.Y, Z: -p.X*sin + p.Z*cos}
}
