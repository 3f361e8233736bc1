// Package physics implements the fixed-timestep balance pendulum.
//
// Gravity destabilizes: the torque pushes the tilt further from upright
// and player input is the only righting force.
package physics

import (
	"math"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/events"
)

const (
	angleClampFactor  = 1.5 // Hard bound on |angle| relative to MaxAngle
	bounceAngleFactor = 0.6 // Where a shielded fall is reflected to
	bounceVelFactor   = 0.3 // Velocity retained (reversed) on a bounce
	metersPerPixel    = 1.0 / 100.0
	phasePixels       = 80.0 // Forward px per gait cycle
)

// State is the simulation snapshot. The engine hands out copies.
type State struct {
	Angle           float64
	AngularVelocity float64
	Distance        float64
	ElapsedTime     float64
	Speed           float64
	WalkPhase       float64
	IsGameOver      bool
}

// Engine owns the pendulum state and advances it in fixed steps.
type Engine struct {
	cfg  config.PhysicsConfig
	diff *config.Modulator

	state       State
	accumulator float64
	frame       events.Frame

	stageMultiplier float64
	speedMultiplier float64
	zeroGravity     bool
	invincible      bool

	shieldActive    bool
	shieldRemaining float64

	bounces      int
	fellThisStep bool
}

// New creates an engine. A nil modulator means no distance bands.
func New(cfg config.PhysicsConfig, diff *config.Modulator) *Engine {
	if diff == nil {
		diff = config.NewModulator(config.DifficultyConfig{}, cfg)
	}
	if cfg.FixedDT <= 0 {
		cfg.FixedDT = 1.0 / 60.0
	}
	if cfg.GravityScale == 0 {
		cfg.GravityScale = 1
	}
	if cfg.MaxFrameDelta <= 0 || cfg.MaxFrameDelta > config.MaxFrameDeltaLimit {
		cfg.MaxFrameDelta = config.MaxFrameDeltaLimit
	}
	e := &Engine{
		cfg:             cfg,
		diff:            diff,
		speedMultiplier: 1,
	}
	e.Reset()
	return e
}

// Reset starts a fresh run. Speed multiplier and invincibility persist.
func (e *Engine) Reset() {
	e.state = State{Speed: e.cfg.InitialSpeed}
	e.accumulator = 0
	e.frame = events.Frame{}
	e.stageMultiplier = 1
	e.zeroGravity = false
	e.shieldActive = false
	e.shieldRemaining = 0
	e.bounces = 0
	e.fellThisStep = false
}

// ResetForContinue restarts balance at baseDistance, keeping elapsed time.
func (e *Engine) ResetForContinue(baseDistance, stageMultiplier float64) {
	elapsed := e.state.ElapsedTime
	phase := e.state.WalkPhase
	e.state = State{
		Distance:    baseDistance,
		ElapsedTime: elapsed,
		WalkPhase:   phase,
	}
	e.state.Speed = e.speedAt(elapsed)
	if stageMultiplier <= 0 {
		stageMultiplier = 1
	}
	e.stageMultiplier = stageMultiplier
	e.accumulator = 0
	e.frame = events.Frame{}
	e.fellThisStep = false
}

// Update drains realDelta into fixed steps. The delta is clamped so a
// long stall cannot trigger an unbounded catch-up.
func (e *Engine) Update(realDelta float64, inputDirection int) {
	e.fellThisStep = false
	if !core.Finite(realDelta) || realDelta < 0 {
		realDelta = 0
	}
	if realDelta > e.cfg.MaxFrameDelta {
		realDelta = e.cfg.MaxFrameDelta
	}

	e.accumulator += realDelta
	for e.accumulator >= e.cfg.FixedDT {
		e.Step(e.cfg.FixedDT, inputDirection)
		e.accumulator -= e.cfg.FixedDT
	}
}

// Step advances the simulation by exactly dt. It is a no-op after a fall.
func (e *Engine) Step(dt float64, inputDirection int) {
	s := &e.state
	if s.IsGameOver {
		return
	}
	if e.zeroGravity {
		s.Angle *= e.cfg.ZeroGravAngle
		s.AngularVelocity *= e.cfg.ZeroGravVel
		e.advance(dt)
		return
	}

	dir := float64(core.NormalizeDirection(inputDirection))
	d := e.diff.Config(s.Distance, s.ElapsedTime)

	effectiveAngle := s.Angle - e.frame.SlopeOffset
	gravityTorque := e.cfg.Gravity * e.cfg.GravityScale * d.GravityMultiplier * e.stageMultiplier * math.Sin(effectiveAngle)
	inputTorque := e.cfg.InputForce * e.stageMultiplier * dir

	s.AngularVelocity += (gravityTorque + inputTorque + e.frame.WindTorque) * dt
	s.AngularVelocity *= e.diff.EffectiveDamping(e.cfg.AngularDamping, d.AngularDampingMultiplier)

	if e.frame.BumpImpulse != 0 {
		s.AngularVelocity += e.frame.BumpImpulse
		e.frame.BumpImpulse = 0
	}

	limit := e.cfg.MaxAngle * angleClampFactor
	s.Angle = core.ClampF(s.Angle+s.AngularVelocity*dt, -limit, limit)

	if math.Abs(s.Angle) >= e.cfg.MaxAngle {
		if !e.invincible && !e.shieldActive {
			s.IsGameOver = true
			e.fellThisStep = true
			return
		}
		sign := core.SignNonZero(s.Angle)
		s.Angle = sign * e.cfg.MaxAngle * bounceAngleFactor
		s.AngularVelocity = -sign * math.Abs(s.AngularVelocity) * bounceVelFactor
		e.bounces++
	}

	if e.shieldActive {
		e.shieldRemaining -= s.Speed * metersPerPixel * dt
		if e.shieldRemaining <= 0 {
			e.shieldActive = false
			e.shieldRemaining = 0
		}
	}

	e.advance(dt)
}

// advance moves the runner forward. Shared by both gravity branches.
func (e *Engine) advance(dt float64) {
	s := &e.state
	s.Speed = e.speedAt(s.ElapsedTime)
	s.Distance += s.Speed * metersPerPixel * dt
	s.ElapsedTime += dt
	s.WalkPhase += s.Speed / phasePixels * dt * 2 * math.Pi
}

func (e *Engine) speedAt(elapsed float64) float64 {
	raw := (e.cfg.InitialSpeed + elapsed*e.cfg.SpeedIncrement) * e.speedMultiplier
	return core.ClampF(raw, e.cfg.InitialSpeed, e.cfg.MaxSpeed*e.speedMultiplier)
}

// SetEventFrame installs the event output for the following steps.
// The bump impulse is consumed by the first step that sees it; a bump
// not yet consumed survives a newer frame without one.
func (e *Engine) SetEventFrame(f events.Frame) {
	if f.BumpImpulse == 0 {
		f.BumpImpulse = e.frame.BumpImpulse
	}
	e.frame = f
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// AnglePercent returns angle / MaxAngle clamped to [-1, 1].
func (e *Engine) AnglePercent() float64 {
	if e.cfg.MaxAngle == 0 {
		return 0
	}
	return core.ClampF(e.state.Angle/e.cfg.MaxAngle, -1, 1)
}

// IsDangerous reports whether the tilt is past the danger threshold.
func (e *Engine) IsDangerous() bool {
	return math.Abs(e.AnglePercent()) >= e.cfg.DangerThreshold
}

// SetZeroGravity switches balance off while distance keeps advancing.
func (e *Engine) SetZeroGravity(on bool) {
	e.zeroGravity = on
}

// ZeroGravity reports whether balance is disengaged.
func (e *Engine) ZeroGravity() bool {
	return e.zeroGravity
}

// SetInvincible turns every fall into a bounce.
func (e *Engine) SetInvincible(on bool) {
	e.invincible = on
}

// Invincible reports whether falls are disabled.
func (e *Engine) Invincible() bool {
	return e.invincible
}

// SetSpeedMultiplier applies a rank's speed multiplier and its damping penalty.
func (e *Engine) SetSpeedMultiplier(mult float64) {
	if mult <= 0 {
		mult = 1
	}
	e.speedMultiplier = mult
	e.diff.SetRankDampingPenalty(mult)
}

// SpeedMultiplier returns the active rank speed multiplier.
func (e *Engine) SpeedMultiplier() float64 {
	return e.speedMultiplier
}

// StageMultiplier returns the torque multiplier set by the last continue.
func (e *Engine) StageMultiplier() float64 {
	return e.stageMultiplier
}

// Difficulty returns the modulator output at the current state.
func (e *Engine) Difficulty() config.Difficulty {
	return e.diff.Config(e.state.Distance, e.state.ElapsedTime)
}

// ActivateCoffeeShield grants fall immunity for the next distance meters.
func (e *Engine) ActivateCoffeeShield(distance float64) {
	if distance <= 0 {
		return
	}
	e.shieldActive = true
	e.shieldRemaining = distance
}

// IsCoffeeShieldActive reports whether the shield is up.
func (e *Engine) IsCoffeeShieldActive() bool {
	return e.shieldActive
}

// CoffeeShieldRemaining returns meters left on the shield.
func (e *Engine) CoffeeShieldRemaining() float64 {
	return e.shieldRemaining
}

// Bounces counts falls absorbed by the shield or invincibility since reset.
func (e *Engine) Bounces() int {
	return e.bounces
}

// FellThisStep reports whether the last Update ended the run.
func (e *Engine) FellThisStep() bool {
	return e.fellThisStep
}
