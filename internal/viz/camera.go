package viz

import (
	"math"

	"github.com/soypat/geometry/md3"
)

const (
	minPitch = -math.Pi/2 + 0.05
	maxPitch = math.Pi/2 - 0.05
)

// Camera orbits a target point. Yaw, pitch and distance chase their
// targets by Damping per frame, which gives the eased feel of a damped
// orbit control.
type Camera struct {
	Target   md3.Vec
	Yaw      float64
	Pitch    float64
	Distance float64
	FOV      float64
	Near     float64
	Damping  float64

	yawGoal, pitchGoal, distGoal float64
	homeYaw, homePitch, homeDist float64
}

// NewCamera places the camera distance units from the origin at the given
// height above the orbital plane.
func NewCamera(distance, height float64) *Camera {
	dist := math.Hypot(distance, height)
	pitch := math.Atan2(height, distance)
	c := &Camera{
		Yaw:      0,
		Pitch:    pitch,
		Distance: dist,
		FOV:      math.Pi / 3,
		Near:     0.1,
		Damping:  0.05,
	}
	c.yawGoal, c.pitchGoal, c.distGoal = c.Yaw, c.Pitch, c.Distance
	c.homeYaw, c.homePitch, c.homeDist = c.Yaw, c.Pitch, c.Distance
	return c
}

func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.yawGoal += dYaw
	c.pitchGoal = math.Max(minPitch, math.Min(maxPitch, c.pitchGoal+dPitch))
}

func (c *Camera) ZoomIn()  { c.distGoal = math.Max(5, c.distGoal/1.2) }
func (c *Camera) ZoomOut() { c.distGoal = math.Min(2000, c.distGoal*1.2) }

// Reset returns to the starting view.
func (c *Camera) Reset() {
	c.yawGoal, c.pitchGoal, c.distGoal = c.homeYaw, c.homePitch, c.homeDist
	c.Target = md3.Vec{}
}

// Update moves the camera one damping step toward its goals.
func (c *Camera) Update() {
	k := c.Damping
	if k <= 0 || k > 1 {
		k = 1
	}
	c.Yaw += (c.yawGoal - c.Yaw) * k
	c.Pitch += (c.pitchGoal - c.Pitch) * k
	c.Distance += (c.distGoal - c.Distance) * k
}

// Settle jumps straight to the goals.
func (c *Camera) Settle() {
	c.Yaw, c.Pitch, c.Distance = c.yawGoal, c.pitchGoal, c.distGoal
}

// view transforms a world point into camera space: x right, y up, z the
// distance in front of the camera.
func (c *Camera) view(p md3.Vec) md3.Vec {
	p = md3.Sub(p, c.Target)
	sy, cy := math.Sincos(-c.Yaw)
	p.X, p.Z = p.X*cy-p.Z*sy, p.X*sy+p.Z*cy
	sp, cp := math.Sincos(c.Pitch)
	p.Y, p.Z = p.Y*cp-p.Z*sp, p.Y*sp+p.Z*cp
	p.Z = c.Distance - p.Z
	return p
}

// Project converts world coordinates to sub-pixel screen coordinates for a
// screen of sw x sh sub-pixels. It returns x, y, depth, a pixels-per-unit
// scale at that depth, and whether the point is in front of the camera.
func (c *Camera) Project(p md3.Vec, sw, sh int) (int, int, float64, float64, bool) {
	v := c.view(p)
	if v.Z <= c.Near {
		return 0, 0, 0, 0, false
	}
	focal := float64(minInt(sw, sh)) / 2 / math.Tan(c.FOV/2)
	scale := focal / v.Z
	x := int(math.Round(v.X*scale)) + sw/2
	y := int(math.Round(-v.Y*scale)) + sh/2
	return x, y, v.Z, scale, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() md3.Vec {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	return md3.Add(c.Target, md3.Vec{X: -sy * cp * c.Distance, Y: sp * c.Distance, Z: cy * cp * c.Distance})
}
