package scene

// Movement rates, per second.
const (
	TurnSpeed  = 3.0 // Yaw and pitch, radians
	MoveSpeed  = 5.0 // Forward and strafe, units
	ClimbSpeed = 3.0 // Vertical, units
)

// HandleKey applies one key press to the scene and reports whether the
// viewer should quit. dt is the current frame time in seconds.
//
// Key names follow the terminal convention: "1" to "6" and "p" pick the
// render mode, "b" toggles culling, "r" toggles spinning, the arrows turn,
// "w"/"a"/"s"/"d" move, "space"/"c" climb and descend, "escape" quits.
func (s *Scene) HandleKey(key string, dt float64) (quit bool) {
	r := s.Renderer
	cam := s.Camera

	switch key {
	case "escape", "ctrl+c":
		return true

	case "1":
		r.Mode = RenderWire
	case "2":
		r.Mode = RenderWireVerts
	case "3":
		r.Mode = RenderFill
	case "4":
		r.Mode = RenderFillWire
	case "5":
		r.Mode = RenderTexture
	case "6":
		r.Mode = RenderTextureWire
	case "p":
		r.Mode = RenderPS1
	case "b":
		r.ToggleCull()
	case "r":
		if s.Spinner != nil {
			s.Spinner.Toggle()
		}

	case "right":
		cam.Rotate(TurnSpeed*dt, 0)
	case "left":
		cam.Rotate(-TurnSpeed*dt, 0)
	case "up":
		cam.Rotate(0, -TurnSpeed*dt)
	case "down":
		cam.Rotate(0, TurnSpeed*dt)

	case "w":
		cam.MoveForward(MoveSpeed * dt)
	case "s":
		cam.MoveForward(-MoveSpeed * dt)
	case "d":
		cam.MoveRight(MoveSpeed * dt)
	case "a":
		cam.MoveRight(-MoveSpeed * dt)
	case "space":
		cam.MoveUp(ClimbSpeed * dt)
	case "c":
		cam.MoveUp(-ClimbSpeed * dt)
	}
	return false
}
