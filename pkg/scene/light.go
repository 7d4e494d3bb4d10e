package scene

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Light is a directional light.
type Light struct {
	Direction math3d.Vec3
}

// Intensity returns how directly a face with the given normal faces the
// light: 1 when the normal points straight back at it, 0 or less when it
// faces away. Degenerate normals give 0.
func (l Light) Intensity(normal math3d.Vec3) float64 {
	i := -l.Direction.Normalize().Dot(normal.Normalize())
	if math.IsNaN(i) {
		return 0
	}
	return i
}

// Shade returns c lit by the light for a face with the given normal.
func (l Light) Shade(c render.Color, normal math3d.Vec3) render.Color {
	return render.ApplyIntensity(c, l.Intensity(normal))
}
