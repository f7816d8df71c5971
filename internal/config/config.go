package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/orbit"
)

const (
	DefaultTickRate    = orbit.DefaultTickRate
	DefaultTicks       = 600
	DefaultStarCount   = 2000
	DefaultStarSpread  = 2000.0
	DefaultCameraDist  = 140.0
	DefaultCameraLift  = 50.0
	DefaultPresetName  = "classic"
	DefaultSelfSpin    = 0.01
	DefaultSunSelfSpin = 0.002
)

// Config is a scene document. Seed pins the random initial angles when
// set; `seed: 0` is a valid fixed seed. A nil Seed leaves the choice to the
// caller.
type Config struct {
	Name     string       `yaml:"name"`
	Seed     *int64       `yaml:"seed,omitempty"`
	TickRate float64      `yaml:"tick_rate"`
	Ticks    int          `yaml:"ticks"`
	Bodies   []BodyConfig `yaml:"bodies"`
	Stars    StarConfig   `yaml:"stars"`
	Camera   CameraConfig `yaml:"camera"`
}

// BodyConfig is one row of the static body table. Radius is the visual
// sphere size and Distance the orbital radius around Parent.
type BodyConfig struct {
	Name              string   `yaml:"name"`
	Radius            float64  `yaml:"radius"`
	Distance          float64  `yaml:"distance"`
	OrbitalSpeed      float64  `yaml:"orbital_speed"`
	SelfRotationSpeed float64  `yaml:"self_rotation_speed"`
	Parent            string   `yaml:"parent,omitempty"`
	Color             string   `yaml:"color,omitempty"`
	InitialAngle      *float64 `yaml:"initial_angle,omitempty"`
}

type StarConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Height   float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	cfg := GetPreset(DefaultPresetName)
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.TickRate == 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Ticks == 0 {
		c.Ticks = DefaultTicks
	}
	if c.Stars.Count == 0 && c.Stars.Spread == 0 {
		c.Stars = StarConfig{Count: DefaultStarCount, Spread: DefaultStarSpread}
	}
	if c.Camera.Distance == 0 {
		c.Camera = CameraConfig{Distance: DefaultCameraDist, Height: DefaultCameraLift}
	}
}

// Load reads a yaml body table. Fields missing from the file keep their
// defaults; a file that lists bodies replaces the default table entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scene-wide settings. Body rows are checked by Build.
func (c *Config) Validate() error {
	if c.TickRate < 0 {
		return fmt.Errorf("tick_rate must not be negative, got %f", c.TickRate)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.Stars.Count < 0 {
		return fmt.Errorf("stars.count must not be negative, got %d", c.Stars.Count)
	}
	if c.Stars.Spread < 0 {
		return fmt.Errorf("stars.spread must not be negative, got %f", c.Stars.Spread)
	}
	if strings.ContainsAny(c.Name, `/\`) || strings.Contains(c.Name, "..") {
		return fmt.Errorf("name must not contain path elements, got %q", c.Name)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("body table is empty")
	}
	return nil
}

func (c *Config) SetSeed(seed int64) { c.Seed = &seed }

// SeedValue returns the pinned seed, or 0 and false when none is set.
func (c *Config) SeedValue() (int64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// Clone returns a deep copy, so presets can be adjusted without touching
// the shared table.
func (c *Config) Clone() *Config {
	out := *c
	if c.Seed != nil {
		out.SetSeed(*c.Seed)
	}
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.InitialAngle != nil {
			a := *b.InitialAngle
			b.InitialAngle = &a
		}
		out.Bodies[i] = b
	}
	return &out
}
