package game

import (
	"github.com/vovakirdan/tightrope/internal/physics"
)

// Autopilot is a bang-bang PD controller that leans against the tilt.
// Gravity pushes away from upright, so the righting input has the
// opposite sign of angle plus damped velocity.
type Autopilot struct {
	Kp       float64
	Kd       float64
	Deadband float64
}

// NewAutopilot returns a controller tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Kp: 1.0, Kd: 0.35, Deadband: 0.01}
}

// Decide returns the input direction for the given state.
func (a *Autopilot) Decide(s physics.State) int {
	u := a.Kp*s.Angle + a.Kd*s.AngularVelocity
	switch {
	case u > a.Deadband:
		return -1
	case u < -a.Deadband:
		return 1
	default:
		return 0
	}
}
