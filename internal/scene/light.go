package scene

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// DefaultAmbient is the light a body's unlit side still shows.
const DefaultAmbient = 0.25

// Illumination returns how bright a body looks from eye when lit by a
// point light: 1 at full phase (light behind the viewer), ambient when
// only the dark side faces the viewer. A body at the light itself is fully
// bright.
func Illumination(body, light, eye md3.Vec, ambient float64) float64 {
	toLight := md3.Sub(light, body)
	toEye := md3.Sub(eye, body)
	nl, ne := md3.Norm(toLight), md3.Norm(toEye)
	if nl == 0 || ne == 0 {
		return 1
	}
	cos := (toLight.X*toEye.X + toLight.Y*toEye.Y + toLight.Z*toEye.Z) / (nl * ne)
	lit := (1 + math.Max(-1, math.Min(1, cos))) / 2
	return ambient + (1-ambient)*lit
}
