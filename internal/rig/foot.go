package rig

import "github.com/vovakirdan/tightrope/internal/core"

// StepReason records which rule started a swing.
type StepReason int

const (
	// StepAlternation is the half-cycle parity trigger.
	StepAlternation StepReason = iota
	// StepHardClamp fires when a planted foot trails too far behind the hip.
	StepHardClamp
	// StepReach fires when a foot is beyond comfortable leg reach.
	StepReach
)

func (r StepReason) String() string {
	switch r {
	case StepAlternation:
		return "alternation"
	case StepHardClamp:
		return "hard-clamp"
	case StepReach:
		return "reach"
	default:
		return "unknown"
	}
}

// FootState is the footplant target of one leg.
// A foot at exactly (0, 0) has never been placed.
type FootState struct {
	X, Y             float64
	PrevX, PrevY     float64
	TargetX, TargetY float64
	StartX, StartY   float64 // Position when the current swing began
	SwingT           float64 // Swing progress in [0, 1]
	IsSwinging       bool
}

func (f *FootState) uninitialized() bool {
	return f.X == 0 && f.Y == 0
}

// Pos returns the foot position.
func (f FootState) Pos() core.Vec2 {
	return core.V(f.X, f.Y)
}

// beginSwing starts an arc from the current position toward (tx, ty).
func (f *FootState) beginSwing(tx, ty float64) {
	f.StartX, f.StartY = f.X, f.Y
	f.TargetX, f.TargetY = tx, ty
	f.SwingT = 0
	f.IsSwinging = true
}

// advanceSwing moves the foot along its arc. The arc is linear in x and
// parabolic in y, peaking at stepHeight halfway.
func (f *FootState) advanceSwing(delta, stepHeight float64) {
	f.SwingT += delta
	if f.SwingT >= 1 {
		f.SwingT = 1
		f.X, f.Y = f.TargetX, f.TargetY
		f.IsSwinging = false
		return
	}
	t := f.SwingT
	f.X = core.Lerp(f.StartX, f.TargetX, t)
	f.Y = core.Lerp(f.StartY, f.TargetY, t) - stepHeight*4*t*(1-t)
}
