package scene

import (
	"math/rand"

	"github.com/soypat/geometry/md3"
)

// Starfield is a fixed backdrop of points uniformly spread through a cube
// centred on the origin.
type Starfield struct {
	Points []md3.Vec
	Spread float64
}

// NewStarfield scatters count points through a cube of side spread.
func NewStarfield(count int, spread float64, rng *rand.Rand) *Starfield {
	if count < 0 {
		count = 0
	}
	sf := &Starfield{Points: make([]md3.Vec, count), Spread: spread}
	for i := range sf.Points {
		sf.Points[i] = md3.Vec{
			X: (rng.Float64() - 0.5) * spread,
			Y: (rng.Float64() - 0.5) * spread,
			Z: (rng.Float64() - 0.5) * spread,
		}
	}
	return sf
}
