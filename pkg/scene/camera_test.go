package scene

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func vec3Near(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNewCamera(t *testing.T) {
	c := NewCamera(math3d.V3(0, 0, 0), math3d.Up(), math3d.Forward())

	if !vec3Near(c.Forward, math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("Forward = %v, want (0, 0, 1)", c.Forward)
	}
	if !vec3Near(c.Right, math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("Right = %v, want (1, 0, 0)", c.Right)
	}
}

func TestCameraRotate(t *testing.T) {
	tests := []struct {
		name        string
		yaw, pitch  float64
		wantForward math3d.Vec3
	}{
		{"yaw right", math.Pi / 2, 0, math3d.V3(1, 0, 0)},
		{"yaw left", -math.Pi / 2, 0, math3d.V3(-1, 0, 0)},
		{"turn around", math.Pi, 0, math3d.V3(0, 0, -1)},
		{"pitch down", 0, math.Pi / 4, math3d.V3(0, -math.Sqrt2/2, math.Sqrt2/2)},
		{"pitch up", 0, -math.Pi / 4, math3d.V3(0, math.Sqrt2/2, math.Sqrt2/2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(math3d.V3(0, 0, 0), math3d.Up(), math3d.Forward())
			c.Rotate(tc.yaw, tc.pitch)
			if !vec3Near(c.Forward, tc.wantForward, 1e-9) {
				t.Errorf("Forward = %v, want %v", c.Forward, tc.wantForward)
			}
		})
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera(math3d.V3(0, 0, 0), math3d.Up(), math3d.Forward())

	c.Rotate(0, 10)
	if c.Pitch != maxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.Rotate(0, -20)
	if c.Pitch != -maxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -maxPitch)
	}

	// The basis must stay finite at the limit.
	view := c.ViewMatrix()
	for _, row := range view {
		for _, v := range row {
			if math.IsNaN(v) {
				t.Fatalf("view matrix has NaN at pitch limit: %v", view)
			}
		}
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(math3d.V3(0, 0, 0), math3d.Up(), math3d.Forward())

	c.MoveForward(2)
	if !vec3Near(c.Position, math3d.V3(0, 0, 2), 1e-9) {
		t.Errorf("after MoveForward Position = %v, want (0, 0, 2)", c.Position)
	}
	if !vec3Near(c.ForwardVelocity, math3d.V3(0, 0, 2), 1e-9) {
		t.Errorf("ForwardVelocity = %v, want (0, 0, 2)", c.ForwardVelocity)
	}

	c.MoveRight(-1)
	if !vec3Near(c.Position, math3d.V3(-1, 0, 2), 1e-9) {
		t.Errorf("after MoveRight Position = %v, want (-1, 0, 2)", c.Position)
	}

	c.MoveUp(3)
	if !vec3Near(c.Position, math3d.V3(-1, 3, 2), 1e-9) {
		t.Errorf("after MoveUp Position = %v, want (-1, 3, 2)", c.Position)
	}

	c.Rotate(math.Pi/2, 0)
	c.MoveForward(1)
	if !vec3Near(c.Position, math3d.V3(0, 3, 2), 1e-9) {
		t.Errorf("after turning and moving Position = %v, want (0, 3, 2)", c.Position)
	}
}

func TestCameraViewMatrix(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Camera)
		point math3d.Vec3
		want  math3d.Vec3
	}{
		{"identity", func(*Camera) {}, math3d.V3(1, 2, 5), math3d.V3(1, 2, 5)},
		{"moved back", func(c *Camera) { c.Position = math3d.V3(0, 0, -3) }, math3d.V3(0, 0, 5), math3d.V3(0, 0, 8)},
		{"turned right", func(c *Camera) { c.Rotate(math.Pi/2, 0) }, math3d.V3(4, 0, 0), math3d.V3(0, 0, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(math3d.V3(0, 0, 0), math3d.Up(), math3d.Forward())
			tc.setup(c)
			got := c.ViewMatrix().MulVec3(tc.point)
			if !vec3Near(got, tc.want, 1e-9) {
				t.Errorf("view * %v = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestLightIntensity(t *testing.T) {
	l := Light{Direction: math3d.V3(0, 0, 1)}

	tests := []struct {
		name   string
		normal math3d.Vec3
		want   float64
	}{
		{"facing light", math3d.V3(0, 0, -3), 1},
		{"facing away", math3d.V3(0, 0, 2), -1},
		{"edge on", math3d.V3(1, 0, 0), 0},
		{"oblique", math3d.V3(0, 1, -1), math.Sqrt2 / 2},
		{"degenerate", math3d.V3(0, 0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.Intensity(tc.normal); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Intensity(%v) = %v, want %v", tc.normal, got, tc.want)
			}
		})
	}
}
