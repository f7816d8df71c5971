package orbit

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// Body is a celestial body on a circular orbit around its parent.
// Speeds are expressed in radians per tick.
type Body struct {
	ID                string
	ParentID          string
	OrbitalRadius     float64
	AngularSpeed      float64
	SelfRotationSpeed float64
	Size              float64
	Color             string

	// Angle is the current orbital angle and Rotation the current spin
	// angle about the body's own Y axis. Both are kept in [0, 2π).
	Angle    float64
	Rotation float64

	position md3.Vec
}

// Orbits reports whether the body moves at all. Bodies with a zero radius
// sit at their parent's origin.
func (b *Body) Orbits() bool { return b.OrbitalRadius > 0 }

// Position returns the body's position in its parent's local frame.
func (b *Body) Position() md3.Vec { return b.position }

// IsRoot reports whether the body has no parent.
func (b *Body) IsRoot() bool { return b.ParentID == "" }

func (b *Body) place() {
	if !b.Orbits() {
		b.position = md3.Vec{}
		return
	}
	sin, cos := math.Sincos(b.Angle)
	b.position = md3.Vec{X: b.OrbitalRadius * cos, Y: 0, Z: b.OrbitalRadius * sin}
}

func (b *Body) validate() error {
	if b.ID == "" {
		return &ConfigError{Body: b.ID, Field: "id", Err: ErrEmptyID}
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"distance", b.OrbitalRadius},
		{"orbital_speed", b.AngularSpeed},
		{"self_rotation_speed", b.SelfRotationSpeed},
		{"radius", b.Size},
		{"angle", b.Angle},
		{"rotation", b.Rotation},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigError{Body: b.ID, Field: f.name, Err: ErrNonFinite}
		}
	}
	if b.OrbitalRadius < 0 {
		return &ConfigError{Body: b.ID, Field: "distance", Err: ErrNegativeRadius}
	}
	if b.Size < 0 {
		return &ConfigError{Body: b.ID, Field: "radius", Err: ErrNegativeRadius}
	}
	if b.Color != "" && !validColor(b.Color) {
		return &ConfigError{Body: b.ID, Field: "color", Err: ErrInvalidColor}
	}
	return nil
}

func validColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Update is the per-tick transform a renderer applies to the node bound to
// BodyID. Position is local to the parent's frame.
type Update struct {
	BodyID    string
	Position  md3.Vec
	RotationY float64
}

// AngleSource supplies uniform values in [0, 1) for initial orbital
// angles. *rand.Rand satisfies it.
type AngleSource interface {
	Float64() float64
}

// Wrap reduces an angle into [0, 2π).
func Wrap(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}
