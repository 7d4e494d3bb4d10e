// Package scene holds the camera, light and meshes of a frame and runs the
// geometry pipeline that turns them into screen-space triangles.
package scene

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Config holds the fixed parameters of a scene.
type Config struct {
	FOVY  float64 // Vertical field of view in radians
	ZNear float64
	ZFar  float64

	Light           math3d.Vec3 // Light direction
	MeshTranslation math3d.Vec3 // Where AddMesh places meshes

	CameraPosition math3d.Vec3
	CameraUp       math3d.Vec3
	CameraForward  math3d.Vec3

	FPS       int     // Target frame rate
	SpinSpeed float64 // Auto-rotation speed in radians per second
}

// DefaultConfig returns the stock scene: a 60 degree camera at the origin
// looking down +Z, a light pointing the same way, and meshes placed five
// units ahead.
func DefaultConfig() Config {
	return Config{
		FOVY:            math.Pi / 3,
		ZNear:           0.8,
		ZFar:            20,
		Light:           math3d.V3(0, 0, 1),
		MeshTranslation: math3d.V3(0, 0, 5),
		CameraPosition:  math3d.V3(0, 0, 0),
		CameraUp:        math3d.Up(),
		CameraForward:   math3d.Forward(),
		FPS:             60,
		SpinSpeed:       1.0,
	}
}
