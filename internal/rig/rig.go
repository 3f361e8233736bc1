// Package rig animates the runner: footplant IK drives where the feet land,
// Verlet chains give legs, arms and tail their secondary motion.
package rig

import (
	"math"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/physics"
	"github.com/vovakirdan/tightrope/internal/verlet"
)

// Mode is the rig's top-level state.
type Mode int

const (
	ModeWalking Mode = iota
	ModeFalling
)

func (m Mode) String() string {
	if m == ModeFalling {
		return "falling"
	}
	return "walking"
}

const (
	warmUpDT     = 1.0 / 60.0
	kneeBend     = 6.0 // Sideways knee offset when legs are first placed
	shoulderDrop = 4.0 // Arm anchors sit slightly below the torso top
	armSpread    = 3.0
)

// Pose is the skeleton for one frame, in rig-space pixels.
type Pose struct {
	Hip      core.Vec2
	Shoulder core.Vec2
	Head     core.Vec2
	Feet     [2]core.Vec2
	Legs     [2][]core.Vec2
	Arms     [2][]core.Vec2
	Tail     []core.Vec2
	Rotation float64
	Mode     Mode
}

// Rig owns the feet and every chain of the character.
type Rig struct {
	cfg     config.RigConfig
	originX float64
	groundY float64
	offsetX float64

	feet [2]FootState
	legs [2]*verlet.Chain
	arms [2]*verlet.Chain
	tail *verlet.Chain

	mode       Mode
	lastParity int
	rotation   float64
	fallFrom   float64
	fallTarget float64
	fallT      float64

	hip      core.Vec2
	shoulder core.Vec2
	head     core.Vec2

	onStep func(foot int, reason StepReason)
}

// New creates a rig standing at originX on groundY.
func New(cfg config.RigConfig, originX, groundY float64) *Rig {
	r := &Rig{
		cfg:     cfg,
		originX: originX,
		groundY: groundY,
	}
	for i := range r.legs {
		r.legs[i] = newChain(cfg.Leg)
		r.arms[i] = newChain(cfg.Arm)
	}
	r.tail = newChain(cfg.Tail)
	r.Reset()
	return r
}

func newChain(c config.ChainConfig) *verlet.Chain {
	return verlet.NewChain(c.Nodes, c.SegmentLength, c.Gravity, c.Damping, c.GravityDir, c.Iterations)
}

// Reset returns to walking and forces re-placement on the next update.
func (r *Rig) Reset() {
	r.feet = [2]FootState{}
	r.mode = ModeWalking
	r.lastParity = -1
	r.rotation = 0
	r.fallT = 0
	r.offsetX = 0
}

// OnStepStart registers an observer called whenever a foot starts a swing.
func (r *Rig) OnStepStart(fn func(foot int, reason StepReason)) {
	r.onStep = fn
}

// SetOffsetX shifts the character horizontally from its origin.
func (r *Rig) SetOffsetX(dx float64) {
	r.offsetX = dx
}

// OffsetX returns the horizontal shift from the origin.
func (r *Rig) OffsetX() float64 {
	return r.offsetX
}

// Mode returns the current rig state.
func (r *Rig) Mode() Mode {
	return r.mode
}

// BodyRotation returns the torso rotation in radians.
func (r *Rig) BodyRotation() float64 {
	return r.rotation
}

// Feet returns a copy of both foot states.
func (r *Rig) Feet() [2]FootState {
	return r.feet
}

// LegLength returns the full reach of one leg.
func (r *Rig) LegLength() float64 {
	return r.cfg.LegUpper + r.cfg.LegLower
}

// Update advances the rig by dt using the physics snapshot.
func (r *Rig) Update(state physics.State, dt float64) {
	if r.mode == ModeFalling {
		r.updateFall(dt)
		return
	}
	if state.IsGameOver {
		r.startFall(state.Angle)
		return
	}

	r.rotation = state.Angle
	r.updateBody(state.WalkPhase)

	if r.feet[0].uninitialized() && r.feet[1].uninitialized() {
		r.place(state)
	}

	r.updateFeet(state, dt)
	r.updateChains()
}

// WarmUp runs synthetic frames so chains settle before the first render.
// The gait is held still so no steps are taken.
func (r *Rig) WarmUp(frames int, state physics.State) {
	state.Speed = 0
	state.IsGameOver = false
	for i := 0; i < frames; i++ {
		r.Update(state, warmUpDT)
	}
}

func (r *Rig) startFall(angle float64) {
	r.mode = ModeFalling
	r.fallFrom = angle
	r.fallTarget = core.SignNonZero(angle) * math.Pi / 2
	r.fallT = 0
	r.rotation = angle
}

func (r *Rig) updateFall(dt float64) {
	if r.cfg.FallDuration > 0 {
		r.fallT = math.Min(1, r.fallT+dt/r.cfg.FallDuration)
	} else {
		r.fallT = 1
	}
	r.rotation = core.Lerp(r.fallFrom, r.fallTarget, core.EaseOutBack(r.fallT))
	r.orientTorso()
}

// FallProgress returns the fall animation progress in [0, 1].
func (r *Rig) FallProgress() float64 {
	return r.fallT
}

// updateBody derives hip, shoulder and head from the sway/bob model.
func (r *Rig) updateBody(phase float64) {
	sway := r.cfg.SwayAmplitude * math.Sin(phase)
	bob := r.cfg.BobAmplitude * math.Sin(2*phase)

	r.hip = core.V(r.originX+r.offsetX+sway, r.groundY-r.cfg.HipHeight+bob)
	r.orientTorso()
}

// orientTorso rotates the torso and head about the hip.
func (r *Rig) orientTorso() {
	r.shoulder = r.hip.Add(core.V(0, -r.cfg.TorsoLength).Rotate(r.rotation))
	r.head = r.hip.Add(core.V(0, -(r.cfg.TorsoLength + r.cfg.HeadRadius)).Rotate(r.rotation))
}

// place snaps both feet under the hip and lays the legs out straight
// with a slight knee bend.
func (r *Rig) place(state physics.State) {
	quarter := r.cfg.StrideForward / 4
	r.feet[0] = FootState{X: r.hip.X + quarter, Y: r.groundY}
	r.feet[1] = FootState{X: r.hip.X - quarter, Y: r.groundY}
	for i := range r.feet {
		f := &r.feet[i]
		f.PrevX, f.PrevY = f.X, f.Y
		f.TargetX, f.TargetY = f.X, f.Y
		r.legs[i].Place(r.hip.X, r.hip.Y, f.X, f.Y, -kneeBend)
	}

	for i, a := range r.armAnchors() {
		r.arms[i].Place(a.X, a.Y, a.X, a.Y+r.armLength(), 0)
	}
	t := r.tailAnchor()
	r.tail.Place(t.X, t.Y, t.X-r.tailLength(), t.Y, 0)

	r.lastParity = parity(state.WalkPhase)
}

// updateFeet runs the footplant gait: stance feet slide with the ground,
// swinging feet follow their arc, then the step triggers are checked.
func (r *Rig) updateFeet(state physics.State, dt float64) {
	tilt := math.Abs(state.Angle)
	swingRate := (1 / r.cfg.SwingDuration) * (1 + tilt*r.cfg.SwingTiltFactor)

	for i := range r.feet {
		f := &r.feet[i]
		f.PrevX, f.PrevY = f.X, f.Y
		if f.IsSwinging {
			f.advanceSwing(swingRate*dt, r.cfg.StepHeight)
		} else {
			f.X -= state.Speed * dt
		}
	}

	// At most one foot leaves the ground per frame; a blocked trigger
	// fires again on a later frame.
	lifted := -1
	lift := func(i int, reason StepReason) bool {
		if r.feet[i].IsSwinging || lifted == 1-i {
			return false
		}
		r.startStep(i, tilt, reason)
		lifted = i
		return true
	}

	// Planted foot trailing too far behind the hip.
	for i := range r.feet {
		if r.hip.X-r.feet[i].X > r.cfg.StrideForward+r.cfg.ClampSlack {
			lift(i, StepHardClamp)
		}
	}

	// Half-cycle alternation.
	if p := parity(state.WalkPhase); p != r.lastParity {
		if r.feet[p].IsSwinging || lift(p, StepAlternation) {
			r.lastParity = p
		}
	}

	// Absolute reach, either foot.
	reach := r.cfg.ReachFactor * r.LegLength()
	for i := range r.feet {
		if math.Abs(r.feet[i].X-r.hip.X) > reach {
			lift(i, StepReach)
		}
	}
}

func (r *Rig) startStep(foot int, tilt float64, reason StepReason) {
	angleScale := 1 + tilt*r.cfg.StrideTiltScale
	r.feet[foot].beginSwing(r.hip.X+r.cfg.StrideForward*angleScale, r.groundY)
	if r.onStep != nil {
		r.onStep(foot, reason)
	}
}

// updateChains solves the chains and pulls each leg tip toward its foot.
func (r *Rig) updateChains() {
	for i := range r.legs {
		f := r.feet[i]
		r.legs[i].Update(r.hip.X, r.hip.Y)
		lerp := r.cfg.PlantedLerp
		if f.IsSwinging {
			lerp = r.cfg.SwingLerp
		}
		r.legs[i].PullTip(f.X, f.Y, lerp)
	}
	for i, a := range r.armAnchors() {
		r.arms[i].Update(a.X, a.Y)
	}
	t := r.tailAnchor()
	r.tail.Update(t.X, t.Y)
}

func (r *Rig) armAnchors() [2]core.Vec2 {
	down := core.V(0, shoulderDrop).Rotate(r.rotation)
	base := r.shoulder.Add(down)
	return [2]core.Vec2{
		base.Add(core.V(armSpread, 0)),
		base.Add(core.V(-armSpread, 0)),
	}
}

// tailAnchor sits at the back of the head.
func (r *Rig) tailAnchor() core.Vec2 {
	return r.head.Add(core.V(-r.cfg.HeadRadius, 0).Rotate(r.rotation))
}

func (r *Rig) armLength() float64 {
	return float64(r.cfg.Arm.Nodes-1) * r.cfg.Arm.SegmentLength
}

func (r *Rig) tailLength() float64 {
	return float64(r.cfg.Tail.Nodes-1) * r.cfg.Tail.SegmentLength
}

// Pose returns the current skeleton.
func (r *Rig) Pose() Pose {
	p := Pose{
		Hip:      r.hip,
		Shoulder: r.shoulder,
		Head:     r.head,
		Rotation: r.rotation,
		Mode:     r.mode,
		Tail:     r.tail.Points(),
	}
	for i := range r.feet {
		p.Feet[i] = r.feet[i].Pos()
		p.Legs[i] = r.legs[i].Points()
		p.Arms[i] = r.arms[i].Points()
	}
	return p
}

// parity selects which foot swings next: floor(phase/π) mod 2.
func parity(phase float64) int {
	return int(math.Floor(phase/math.Pi)) & 1
}
