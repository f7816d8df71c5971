package config

import "sort"

func angle(a float64) *float64 { return &a }

var sun = BodyConfig{Name: "sun", Radius: 10, SelfRotationSpeed: DefaultSunSelfSpin, Color: "#fdb813"}

var planets = []BodyConfig{
	{Name: "mercury", Radius: 1, Distance: 18, OrbitalSpeed: 0.02, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#b5b5b5"},
	{Name: "venus", Radius: 1.5, Distance: 25, OrbitalSpeed: 0.015, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#e8cda2"},
	{Name: "earth", Radius: 2, Distance: 34, OrbitalSpeed: 0.01, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#2e86ab"},
	{Name: "mars", Radius: 1.8, Distance: 42, OrbitalSpeed: 0.008, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#c1440e"},
	{Name: "jupiter", Radius: 4, Distance: 58, OrbitalSpeed: 0.006, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#d8ca9d"},
	{Name: "saturn", Radius: 3.5, Distance: 74, OrbitalSpeed: 0.005, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#ead6b8"},
	{Name: "uranus", Radius: 3, Distance: 88, OrbitalSpeed: 0.004, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#d1e7e7"},
	{Name: "neptune", Radius: 2.5, Distance: 102, OrbitalSpeed: 0.003, SelfRotationSpeed: DefaultSelfSpin, Parent: "sun", Color: "#5b5ddf"},
}

var moons = []BodyConfig{
	{Name: "moon", Radius: 0.5, Distance: 4, OrbitalSpeed: 0.05, SelfRotationSpeed: 0.05, Parent: "earth", Color: "#cfcfcf"},
	{Name: "phobos", Radius: 0.3, Distance: 3, OrbitalSpeed: 0.08, SelfRotationSpeed: 0.08, Parent: "mars", Color: "#8a7f72"},
	{Name: "deimos", Radius: 0.2, Distance: 4.2, OrbitalSpeed: 0.04, SelfRotationSpeed: 0.04, Parent: "mars", Color: "#9c8e7e"},
	{Name: "io", Radius: 0.5, Distance: 6, OrbitalSpeed: 0.06, SelfRotationSpeed: 0.06, Parent: "jupiter", Color: "#e6d36b"},
	{Name: "europa", Radius: 0.45, Distance: 7.5, OrbitalSpeed: 0.045, SelfRotationSpeed: 0.045, Parent: "jupiter", Color: "#bfae93"},
	{Name: "titan", Radius: 0.6, Distance: 6.5, OrbitalSpeed: 0.03, SelfRotationSpeed: 0.03, Parent: "saturn", Color: "#d9a441"},
}

func table(groups ...[]BodyConfig) []BodyConfig {
	out := []BodyConfig{sun}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func inner() []BodyConfig {
	out := table()
	for _, p := range planets[:4] {
		p.Distance *= 1.5
		p.Radius *= 1.5
		out = append(out, p)
	}
	return out
}

func satellites() []BodyConfig {
	out := table(planets[:3])
	out = append(out,
		BodyConfig{Name: "moon", Radius: 0.5, Distance: 4, OrbitalSpeed: 0.05, SelfRotationSpeed: 0.05, Parent: "earth", Color: "#cfcfcf"},
		BodyConfig{Name: "station", Radius: 0.15, Distance: 2.6, OrbitalSpeed: -0.2, Parent: "earth", Color: "#ffffff", InitialAngle: angle(0)},
	)
	return out
}

// Presets are the bundled scene variants.
var Presets = map[string]*Config{
	"classic": {
		Name: "classic", TickRate: DefaultTickRate, Ticks: DefaultTicks,
		Bodies: table(planets),
		Stars:  StarConfig{Count: DefaultStarCount, Spread: DefaultStarSpread},
		Camera: CameraConfig{Distance: DefaultCameraDist, Height: DefaultCameraLift},
	},
	"moons": {
		Name: "moons", TickRate: DefaultTickRate, Ticks: 1200,
		Bodies: table(planets, moons),
		Stars:  StarConfig{Count: DefaultStarCount, Spread: DefaultStarSpread},
		Camera: CameraConfig{Distance: DefaultCameraDist, Height: DefaultCameraLift},
	},
	"inner": {
		Name: "inner", TickRate: DefaultTickRate, Ticks: DefaultTicks,
		Bodies: inner(),
		Stars:  StarConfig{Count: 800, Spread: 1000},
		Camera: CameraConfig{Distance: 90, Height: 35},
	},
	"satellites": {
		Name: "satellites", TickRate: DefaultTickRate, Ticks: DefaultTicks,
		Bodies: satellites(),
		Stars:  StarConfig{Count: 1200, Spread: 1500},
		Camera: CameraConfig{Distance: 70, Height: 30},
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
