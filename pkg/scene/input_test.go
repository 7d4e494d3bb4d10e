package scene

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestHandleKeyModes(t *testing.T) {
	tests := []struct {
		key  string
		want RenderMode
	}{
		{"1", RenderWire},
		{"2", RenderWireVerts},
		{"3", RenderFill},
		{"4", RenderFillWire},
		{"5", RenderTexture},
		{"6", RenderTextureWire},
		{"p", RenderPS1},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			s := New(DefaultConfig())
			s.Renderer.Mode = RenderFill
			if tc.want == RenderFill {
				s.Renderer.Mode = RenderWire
			}
			if quit := s.HandleKey(tc.key, 0.1); quit {
				t.Fatalf("HandleKey(%q) quit", tc.key)
			}
			if s.Renderer.Mode != tc.want {
				t.Errorf("Mode = %v, want %v", s.Renderer.Mode, tc.want)
			}
		})
	}
}

func TestHandleKeyToggles(t *testing.T) {
	s := New(DefaultConfig())

	s.HandleKey("b", 0.1)
	if s.Renderer.Cull != CullNone {
		t.Errorf("after b Cull = %v, want none", s.Renderer.Cull)
	}
	s.HandleKey("r", 0.1)
	if !s.Spinner.Spinning() {
		t.Error("after r spinner not spinning")
	}
	s.HandleKey("r", 0.1)
	if s.Spinner.Spinning() {
		t.Error("after second r spinner still spinning")
	}
}

func TestHandleKeyQuit(t *testing.T) {
	for _, key := range []string{"escape", "ctrl+c"} {
		s := New(DefaultConfig())
		if !s.HandleKey(key, 0.1) {
			t.Errorf("HandleKey(%q) did not quit", key)
		}
	}
	s := New(DefaultConfig())
	if s.HandleKey("q", 0.1) {
		t.Error(`HandleKey("q") quit`)
	}
}

func TestHandleKeyMovement(t *testing.T) {
	const dt = 0.1

	tests := []struct {
		key       string
		wantPos   math3d.Vec3
		wantYaw   float64
		wantPitch float64
	}{
		{"w", math3d.V3(0, 0, MoveSpeed*dt), 0, 0},
		{"s", math3d.V3(0, 0, -MoveSpeed*dt), 0, 0},
		{"d", math3d.V3(MoveSpeed*dt, 0, 0), 0, 0},
		{"a", math3d.V3(-MoveSpeed*dt, 0, 0), 0, 0},
		{"space", math3d.V3(0, ClimbSpeed*dt, 0), 0, 0},
		{"c", math3d.V3(0, -ClimbSpeed*dt, 0), 0, 0},
		{"right", math3d.Vec3{}, TurnSpeed * dt, 0},
		{"left", math3d.Vec3{}, -TurnSpeed * dt, 0},
		{"up", math3d.Vec3{}, 0, -TurnSpeed * dt},
		{"down", math3d.Vec3{}, 0, TurnSpeed * dt},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			s := New(DefaultConfig())
			s.HandleKey(tc.key, dt)

			cam := s.Camera
			if !vec3Near(cam.Position, tc.wantPos, 1e-9) {
				t.Errorf("Position = %v, want %v", cam.Position, tc.wantPos)
			}
			if math.Abs(cam.Yaw-tc.wantYaw) > 1e-9 || math.Abs(cam.Pitch-tc.wantPitch) > 1e-9 {
				t.Errorf("yaw, pitch = %v, %v, want %v, %v", cam.Yaw, cam.Pitch, tc.wantYaw, tc.wantPitch)
			}
		})
	}
}
