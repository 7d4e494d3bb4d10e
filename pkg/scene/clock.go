package scene

import "time"

// MaxDelta caps the frame time reported by Clock, so a stall does not
// teleport the camera.
const MaxDelta = 0.1

// Clock paces the frame loop to a target frame rate.
type Clock struct {
	target time.Duration
	last   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewClock creates a clock targeting fps frames per second.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = 60
	}
	c := &Clock{
		target: time.Second / time.Duration(fps),
		now:    time.Now,
		sleep:  time.Sleep,
	}
	c.last = c.now()
	return c
}

// Target returns the frame interval.
func (c *Clock) Target() time.Duration {
	return c.target
}

// Tick waits out the rest of the current frame interval and returns the
// seconds since the previous Tick, clamped to [0, MaxDelta]. It sleeps only
// when the remaining wait is positive and no longer than one interval.
func (c *Clock) Tick() float64 {
	wait := c.target - c.now().Sub(c.last)
	if wait > 0 && wait <= c.target {
		c.sleep(wait)
	}

	now := c.now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	return min(max(dt, 0), MaxDelta)
}
