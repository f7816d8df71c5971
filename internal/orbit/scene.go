package orbit

import "github.com/soypat/geometry/md3"

// Scene is the single construction point for an orbital model. It owns the
// registry and the update buffer handed to renderers.
type Scene struct {
	Name     string
	registry *Registry
	updates  []Update
	ticks    float64
}

func NewScene() *Scene {
	return &Scene{registry: NewRegistry()}
}

// Register adds a body to the scene. See Registry.Register.
func (s *Scene) Register(b Body) error {
	if err := s.registry.Register(b); err != nil {
		return err
	}
	s.updates = append(s.updates, Update{})
	s.fill()
	return nil
}

func (s *Scene) Registry() *Registry { return s.registry }

// Bodies returns the bodies in registration order.
func (s *Scene) Bodies() []*Body { return s.registry.All() }

// Ticks returns the total simulated ticks since construction.
func (s *Scene) Ticks() float64 { return s.ticks }

// Step advances every body by delta ticks and returns one Update per body
// in registration order. delta may be fractional; calling Step n times with
// delta d is equivalent to one call with n*d.
//
// The returned slice is owned by the Scene and overwritten by the next
// call to Step.
func (s *Scene) Step(delta float64) []Update {
	for _, b := range s.registry.bodies {
		if b.Orbits() {
			b.Angle = Wrap(b.Angle + b.AngularSpeed*delta)
		}
		b.Rotation = Wrap(b.Rotation + b.SelfRotationSpeed*delta)
		b.place()
	}
	s.ticks += delta
	s.fill()
	return s.updates
}

// Updates returns the current transforms without advancing the scene.
func (s *Scene) Updates() []Update { return s.updates }

func (s *Scene) fill() {
	for i, b := range s.registry.bodies {
		s.updates[i] = Update{BodyID: b.ID, Position: b.position, RotationY: b.Rotation}
	}
}

// WorldPosition composes local positions up the parent chain. Children are
// attached to the parent's orbit pivot, so the parent's own spin does not
// carry them.
func (s *Scene) WorldPosition(id string) (md3.Vec, bool) {
	b, ok := s.registry.Get(id)
	if !ok {
		return md3.Vec{}, false
	}
	p := b.position
	for !b.IsRoot() {
		b, _ = s.registry.Get(b.ParentID)
		p = md3.Add(p, b.position)
	}
	return p, true
}
