package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/events"
)

const dt = 1.0 / 60.0

func newEngine() *Engine {
	cfg := config.DefaultConfig()
	return New(cfg.Physics, config.NewModulator(cfg.Difficulty, cfg.Physics))
}

func TestFixedStepDeterminism(t *testing.T) {
	deltas := []float64{0.016, 0.033, 0.2, 0.001, 0.017, 0.05, 0.0166, 0.09}
	run := func() []State {
		e := newEngine()
		var out []State
		for i := 0; i < 600; i++ {
			dir := 0
			switch i % 7 {
			case 0, 1:
				dir = -1
			case 4:
				dir = 1
			}
			if i%40 == 0 {
				e.SetEventFrame(events.Frame{BumpImpulse: 0.3, WindTorque: 0.4, SlopeOffset: 0.02})
			}
			e.Update(deltas[i%len(deltas)], dir)
			out = append(out, e.State())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories diverged at update %d:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestAngleBoundHoldsOnBouncePath(t *testing.T) {
	e := newEngine()
	e.SetInvincible(true)
	rng := core.NewRNG(8)
	limit := e.cfg.MaxAngle * angleClampFactor

	for i := 0; i < 5000; i++ {
		if i%30 == 0 {
			e.SetEventFrame(events.Frame{BumpImpulse: rng.Range(-6, 6)})
		}
		e.Step(dt, rng.Intn(3)-1)
		s := e.State()
		if math.Abs(s.Angle) > limit+1e-12 {
			t.Fatalf("step %d: |angle| = %v exceeds %v", i, math.Abs(s.Angle), limit)
		}
		if s.IsGameOver {
			t.Fatalf("step %d: invincible engine fell", i)
		}
	}
}

func TestFallFreezesState(t *testing.T) {
	e := newEngine()
	for i := 0; i < 600 && !e.State().IsGameOver; i++ {
		e.Update(dt, 1)
	}
	if !e.State().IsGameOver {
		t.Fatal("holding input should eventually topple the runner")
	}

	frozen := e.State()
	for i := 0; i < 100; i++ {
		e.Update(dt, -1)
		e.SetEventFrame(events.Frame{BumpImpulse: 1, WindTorque: 1})
	}
	if e.State() != frozen {
		t.Errorf("state changed after the fall:\nbefore %+v\nafter  %+v", frozen, e.State())
	}
}

func TestSpeedClamp(t *testing.T) {
	for _, mult := range []float64{1.0, 1.3, 1.5} {
		e := newEngine()
		e.SetInvincible(true)
		e.SetSpeedMultiplier(mult)

		lo := e.cfg.InitialSpeed
		hi := e.cfg.MaxSpeed * mult
		for i := 0; i < 15000; i++ {
			e.Step(dt, 0)
			if s := e.State().Speed; s < lo || s > hi {
				t.Fatalf("mult %v step %d: speed %v outside [%v, %v]", mult, i, s, lo, hi)
			}
		}
		if s := e.State().Speed; s != hi {
			t.Errorf("mult %v: speed after 250 s = %v, expected clamp at %v", mult, s, hi)
		}
	}
}

func TestScenarioUprightWalk(t *testing.T) {
	e := newEngine()
	prev := e.State().Speed
	for i := 0; i < 180; i++ {
		e.Update(dt, 0)
		s := e.State()
		if i > 0 && s.Speed <= prev && s.Speed != e.cfg.MaxSpeed {
			t.Fatalf("tick %d: speed %v did not increase from %v", i, s.Speed, prev)
		}
		prev = s.Speed
	}

	s := e.State()
	if s.Distance <= 0 {
		t.Errorf("distance = %v, expected > 0", s.Distance)
	}
	if s.IsGameOver {
		t.Error("upright run with no input should not fall")
	}
	if s.Angle != 0 {
		t.Errorf("angle drifted to %v with no input", s.Angle)
	}
}

func TestScenarioFallAtBoundary(t *testing.T) {
	e := newEngine()
	for i := 0; i < 600; i++ {
		e.Step(dt, 1)
		s := e.State()
		if s.IsGameOver {
			if math.Abs(s.Angle) < e.cfg.MaxAngle {
				t.Fatalf("fell at |angle| %v below the boundary", math.Abs(s.Angle))
			}
			if !e.FellThisStep() {
				t.Error("FellThisStep should be set on the falling step")
			}
			return
		}
		if math.Abs(s.Angle) >= e.cfg.MaxAngle {
			t.Fatalf("step %d: |angle| %v reached the boundary without a fall", i, math.Abs(s.Angle))
		}
	}
	t.Fatal("runner never fell")
}

func TestScenarioCoffeeShieldBounce(t *testing.T) {
	e := newEngine()
	e.ActivateCoffeeShield(3)
	start := e.State().Distance

	sawBounce := false
	for i := 0; i < 2000 && e.IsCoffeeShieldActive(); i++ {
		before := e.Bounces()
		e.Step(dt, 1)
		s := e.State()
		if s.IsGameOver {
			t.Fatalf("step %d: fell with the shield up", i)
		}
		if e.Bounces() > before {
			sawBounce = true
			want := e.cfg.MaxAngle * bounceAngleFactor
			if math.Abs(s.Angle-want) > 1e-12 {
				t.Errorf("bounce angle = %v, expected %v", s.Angle, want)
			}
			if s.AngularVelocity > 0 {
				t.Errorf("bounce should reverse velocity, got %v", s.AngularVelocity)
			}
		}
	}

	if !sawBounce {
		t.Error("expected at least one bounce-back while shielded")
	}
	if e.IsCoffeeShieldActive() {
		t.Fatal("shield never expired")
	}
	if traveled := e.State().Distance - start; traveled < 3-1e-9 {
		t.Errorf("shield expired after %v m, expected at least 3", traveled)
	}

	for i := 0; i < 600 && !e.State().IsGameOver; i++ {
		e.Step(dt, 1)
	}
	if !e.State().IsGameOver {
		t.Error("runner should fall once the shield is gone")
	}
}

func TestZeroGravityDecaysAndKeepsWalking(t *testing.T) {
	e := newEngine()
	for i := 0; i < 10; i++ {
		e.Step(dt, 1)
	}
	if e.State().Angle == 0 {
		t.Fatal("setup: expected a non-zero tilt")
	}

	e.SetZeroGravity(true)
	before := e.State()
	for i := 0; i < 300; i++ {
		e.Step(dt, 1)
	}
	after := e.State()

	if math.Abs(after.Angle) > 1e-6 || math.Abs(after.AngularVelocity) > 1e-6 {
		t.Errorf("zero gravity should settle the tilt, got angle %v velocity %v", after.Angle, after.AngularVelocity)
	}
	if after.IsGameOver {
		t.Error("zero gravity should never fall")
	}
	if after.Distance <= before.Distance || after.WalkPhase <= before.WalkPhase {
		t.Error("distance and walk phase should keep advancing")
	}
}

func TestBumpAppliedOnce(t *testing.T) {
	e := newEngine()
	e.SetEventFrame(events.Frame{BumpImpulse: 0.5})

	e.Step(dt, 0)
	if v := e.State().AngularVelocity; math.Abs(v-0.5) > 1e-12 {
		t.Fatalf("velocity after bump = %v, expected 0.5", v)
	}
	e.Step(dt, 0)
	if v := e.State().AngularVelocity; v > 0.5 {
		t.Errorf("bump applied twice, velocity %v", v)
	}
}

func TestResetForContinue(t *testing.T) {
	e := newEngine()
	for i := 0; i < 600 && !e.State().IsGameOver; i++ {
		e.Update(dt, -1)
	}
	elapsed := e.State().ElapsedTime

	e.ResetForContinue(200, 1.1)
	s := e.State()
	if s.IsGameOver || s.Angle != 0 || s.AngularVelocity != 0 {
		t.Errorf("continue should restore balance, got %+v", s)
	}
	if s.Distance != 200 {
		t.Errorf("distance = %v, expected 200", s.Distance)
	}
	if s.ElapsedTime != elapsed {
		t.Errorf("elapsed = %v, expected %v preserved", s.ElapsedTime, elapsed)
	}
	if e.StageMultiplier() != 1.1 {
		t.Errorf("stage multiplier = %v, expected 1.1", e.StageMultiplier())
	}
}

func TestAnglePercentAndDanger(t *testing.T) {
	e := newEngine()
	e.state.Angle = 0.6
	if p := e.AnglePercent(); math.Abs(p-0.6/0.9) > 1e-12 {
		t.Errorf("AnglePercent = %v", p)
	}
	if !e.IsDangerous() {
		t.Error("0.67 of max tilt should be dangerous")
	}
	e.state.Angle = -1.3
	if e.AnglePercent() != -1 {
		t.Errorf("AnglePercent should clamp to -1, got %v", e.AnglePercent())
	}
	e.state.Angle = 0.1
	if e.IsDangerous() {
		t.Error("small tilt should not be dangerous")
	}
}

func TestSpeedMultiplierPushesRankPenalty(t *testing.T) {
	cfg := config.DefaultConfig()
	mod := config.NewModulator(cfg.Difficulty, cfg.Physics)
	e := New(cfg.Physics, mod)

	e.SetSpeedMultiplier(1.4)
	if mod.RankDampingPenalty() <= 0 {
		t.Error("rank multiplier above 1 should set a damping penalty")
	}
}

func TestPendingBumpSurvivesShortFrames(t *testing.T) {
	e := newEngine()
	e.SetEventFrame(events.Frame{BumpImpulse: 0.5})
	e.Update(0.001, 0)
	if e.State().AngularVelocity != 0 {
		t.Fatal("no step should run on a 1 ms frame")
	}

	e.SetEventFrame(events.Frame{WindTorque: 0})
	e.Update(dt, 0)
	if v := e.State().AngularVelocity; math.Abs(v-0.5) > 1e-12 {
		t.Errorf("velocity = %v, expected the pending bump 0.5", v)
	}
}

func TestFrameDeltaAlwaysClamped(t *testing.T) {
	for _, limit := range []float64{0, -1, 5} {
		cfg := config.DefaultConfig()
		cfg.Physics.MaxFrameDelta = limit
		e := New(cfg.Physics, nil)

		e.Update(5.0, 0)
		if got := e.State().ElapsedTime; got > config.MaxFrameDeltaLimit+1e-9 {
			t.Errorf("max_frame_delta %v: one update advanced %v s", limit, got)
		}
	}
}
