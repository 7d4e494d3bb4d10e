package scene

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// maxPitch keeps the forward vector off the up axis so the look-at basis
// stays defined.
const maxPitch = math.Pi/2 - 0.01

// Camera is a free-look camera driven by yaw and pitch.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation basis. Forward and Right are derived from Yaw and Pitch
	// by UpdateTarget.
	Up      math3d.Vec3
	Forward math3d.Vec3
	Right   math3d.Vec3

	Yaw   float64 // Rotation around Y axis (look left/right)
	Pitch float64 // Rotation around X axis (look up/down)

	// Last movement applied by MoveForward and MoveRight
	ForwardVelocity math3d.Vec3
	RightVelocity   math3d.Vec3

	// Direction at zero yaw and pitch
	baseForward math3d.Vec3
}

// NewCamera creates a camera at position looking along forward.
func NewCamera(position, up, forward math3d.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		Up:          up,
		baseForward: forward.Normalize(),
	}
	c.UpdateTarget()
	return c
}

// UpdateTarget recomputes Forward and Right from Yaw and Pitch and returns
// the point one unit ahead of the camera.
func (c *Camera) UpdateTarget() math3d.Vec3 {
	c.Forward = c.baseForward.RotateX(c.Pitch).RotateY(c.Yaw)
	c.Right = c.Up.Cross(c.Forward).Normalize()
	return c.Position.Add(c.Forward)
}

// ViewMatrix returns the world-to-view matrix for the current orientation.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	target := c.UpdateTarget()
	return math3d.LookAt(c.Position, target, c.Up)
}

// Rotate turns the camera by the given angles in radians. Pitch is clamped
// short of straight up or down.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = min(max(c.Pitch+deltaPitch, -maxPitch), maxPitch)
	c.UpdateTarget()
}

// MoveForward moves the camera along Forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.ForwardVelocity = c.Forward.Scale(distance)
	c.Position = c.Position.Add(c.ForwardVelocity)
}

// MoveRight moves the camera along Right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.RightVelocity = c.Right.Scale(distance)
	c.Position = c.Position.Add(c.RightVelocity)
}

// MoveUp moves the camera along world Y (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position.Y += distance
}
