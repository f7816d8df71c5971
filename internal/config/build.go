package config

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/orrery/internal/orbit"
)

// Build turns the body table into a scene. Every orbiting body without an
// explicit initial_angle draws one from src, in table order, so the same
// table and seed always produce the same scene. On error no scene is
// returned.
func Build(cfg *Config, src orbit.AngleSource) (*orbit.Scene, error) {
	if src == nil {
		return nil, fmt.Errorf("angle source is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc := orbit.NewScene()
	sc.Name = cfg.Name
	for _, row := range cfg.Bodies {
		body := row.Body()
		switch {
		case row.InitialAngle != nil:
			body.Angle = *row.InitialAngle
		case body.Orbits():
			body.Angle = src.Float64() * orbit.TwoPi
		}
		if err := sc.Register(body); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// BuildSeeded is Build with a math/rand source seeded from cfg.Seed. An
// unset seed behaves as seed 0.
func BuildSeeded(cfg *Config) (*orbit.Scene, error) {
	seed, _ := cfg.SeedValue()
	return Build(cfg, NewSource(seed))
}

func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Body converts the row into an orbit.Body without an initial angle.
func (b BodyConfig) Body() orbit.Body {
	return orbit.Body{
		ID:                b.Name,
		ParentID:          b.Parent,
		OrbitalRadius:     b.Distance,
		AngularSpeed:      b.OrbitalSpeed,
		SelfRotationSpeed: b.SelfRotationSpeed,
		Size:              b.Radius,
		Color:             b.Color,
	}
}

// Period returns the number of ticks for one full orbit, or +Inf for a body
// that does not orbit.
func (b BodyConfig) Period() float64 {
	if b.Distance <= 0 || b.OrbitalSpeed == 0 {
		return math.Inf(1)
	}
	return orbit.TwoPi / math.Abs(b.OrbitalSpeed)
}
