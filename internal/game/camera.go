package game

import "github.com/charmbracelet/harmonica"

const (
	cameraLeadPx = 24.0 // Horizontal lean lead at full tilt
	shakePx      = 6.0  // Kick applied by a bump
)

type spring struct {
	s   harmonica.Spring
	pos float64
	vel float64
}

func newSpring(fps int, frequency, damping float64) spring {
	return spring{s: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *spring) step(target float64) float64 {
	s.pos, s.vel = s.s.Update(s.pos, s.vel, target)
	return s.pos
}

// Camera smooths the horizontal follow offset and the HUD tilt needle.
// Springs are tuned for one update per rendered frame.
type Camera struct {
	follow spring
	needle spring
}

// NewCamera creates a camera for the given frame rate.
func NewCamera(fps int) *Camera {
	if fps <= 0 {
		fps = 60
	}
	return &Camera{
		follow: newSpring(fps, 4.0, 0.7),
		needle: newSpring(fps, 9.0, 0.5),
	}
}

// Update eases toward the lean of anglePercent in [-1, 1].
func (c *Camera) Update(anglePercent float64) {
	c.follow.step(anglePercent * cameraLeadPx)
	c.needle.step(anglePercent)
}

// Kick jolts the follow offset, used when a bump lands.
func (c *Camera) Kick(direction float64) {
	c.follow.vel += direction * shakePx * 10
}

// OffsetX returns the follow offset in pixels.
func (c *Camera) OffsetX() float64 {
	return c.follow.pos
}

// Needle returns the smoothed tilt for the HUD gauge.
func (c *Camera) Needle() float64 {
	return c.needle.pos
}

// Reset centers the camera.
func (c *Camera) Reset() {
	c.follow.pos, c.follow.vel = 0, 0
	c.needle.pos, c.needle.vel = 0, 0
}
