package scene

import "github.com/charmbracelet/harmonica"

// Spinner drives a smooth auto-rotation. A critically damped spring eases
// the angular velocity toward Speed while spinning and back to zero when
// stopped.
type Spinner struct {
	Speed float64 // Target angular velocity in radians per second

	spinning bool
	velocity float64
	accel    float64 // spring velocity of velocity
	spring   harmonica.Spring
}

// NewSpinner creates a stopped spinner updated fps times per second.
func NewSpinner(fps int, speed float64) *Spinner {
	if fps <= 0 {
		fps = 60
	}
	return &Spinner{
		Speed: speed,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Toggle starts or stops spinning.
func (s *Spinner) Toggle() {
	s.spinning = !s.spinning
}

// SetSpinning starts or stops spinning.
func (s *Spinner) SetSpinning(on bool) {
	s.spinning = on
}

// Spinning reports whether the spinner is heading toward Speed.
func (s *Spinner) Spinning() bool {
	return s.spinning
}

// Velocity returns the current angular velocity.
func (s *Spinner) Velocity() float64 {
	return s.velocity
}

// Update advances the spring by one frame and returns the new angular
// velocity.
func (s *Spinner) Update() float64 {
	target := 0.0
	if s.spinning {
		target = s.Speed
	}
	s.velocity, s.accel = s.spring.Update(s.velocity, s.accel, target)
	return s.velocity
}
