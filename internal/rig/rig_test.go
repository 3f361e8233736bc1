package rig

import (
	"math"
	"testing"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/physics"
)

const (
	frameDT = 1.0 / 60.0
	originX = 200.0
	groundY = 100.0
)

func newRig() *Rig {
	return New(config.DefaultConfig().Rig, originX, groundY)
}

type stepEvent struct {
	frame  int
	foot   int
	reason StepReason
}

// walk feeds the rig a constant-speed synthetic run.
func walk(t *testing.T, r *Rig, speed float64, frames int, angle float64) []stepEvent {
	t.Helper()
	var log []stepEvent
	frame := 0
	r.OnStepStart(func(foot int, reason StepReason) {
		log = append(log, stepEvent{frame, foot, reason})
	})

	state := physics.State{Speed: speed, Angle: angle}
	for ; frame < frames; frame++ {
		r.Update(state, frameDT)
		feet := r.Feet()
		if feet[0].IsSwinging && feet[1].IsSwinging && feet[0].SwingT == feet[1].SwingT {
			t.Fatalf("frame %d: feet swinging in lockstep", frame)
		}
		state.WalkPhase += speed / 80 * frameDT * 2 * math.Pi
	}
	return log
}

func TestFeetAlternateAtBaseSpeed(t *testing.T) {
	r := newRig()
	log := walk(t, r, 150, 3000, 0)

	var steady []stepEvent
	for _, e := range log {
		if e.frame > 300 {
			steady = append(steady, e)
		}
	}
	if len(steady) < 100 {
		t.Fatalf("only %d steps in the steady window", len(steady))
	}

	for i, e := range steady {
		if e.reason != StepAlternation {
			t.Errorf("step at frame %d forced by %v, expected alternation", e.frame, e.reason)
		}
		if i > 0 && e.foot == steady[i-1].foot {
			t.Fatalf("foot %d stepped twice in a row at frames %d and %d", e.foot, steady[i-1].frame, e.frame)
		}
	}
}

func TestFeetStayNearHipsAtHighSpeed(t *testing.T) {
	cfg := config.DefaultConfig().Rig
	r := newRig()
	state := physics.State{Speed: 540, Angle: 0.4}
	limit := cfg.LegUpper + cfg.LegLower + cfg.StrideForward

	for i := 0; i < 2000; i++ {
		r.Update(state, frameDT)
		state.WalkPhase += state.Speed / 80 * frameDT * 2 * math.Pi
		hip := r.Pose().Hip
		for j, f := range r.Feet() {
			if d := math.Abs(f.X - hip.X); d > limit {
				t.Fatalf("frame %d: foot %d is %v px from the hip", i, j, d)
			}
		}
	}
}

func TestOneFootLiftsPerFrameWithUnevenDeltas(t *testing.T) {
	for _, speed := range []float64{450, 500, 540} {
		for _, angle := range []float64{0, 0.3, -0.6} {
			r := newRig()
			rng := core.NewRNG(int64(speed) + int64(angle*10))
			frame, lastFrame, lastFoot := 0, -1, -1
			steps := 0
			r.OnStepStart(func(foot int, reason StepReason) {
				if frame == lastFrame {
					t.Fatalf("speed %v angle %v frame %d: feet %d and %d both lifted (%v)",
						speed, angle, frame, lastFoot, foot, reason)
				}
				lastFrame, lastFoot = frame, foot
				steps++
			})

			state := physics.State{Speed: speed, Angle: angle}
			for ; frame < 20000; frame++ {
				dt := rng.Range(0.005, 0.05)
				r.Update(state, dt)
				feet := r.Feet()
				if feet[0].IsSwinging && feet[1].IsSwinging && feet[0].SwingT == feet[1].SwingT {
					t.Fatalf("speed %v angle %v frame %d: feet swinging in lockstep", speed, angle, frame)
				}
				state.WalkPhase += speed / 80 * dt * 2 * math.Pi
			}
			if steps == 0 {
				t.Errorf("speed %v angle %v: no steps taken", speed, angle)
			}
		}
	}
}

func TestFirstFramePlacement(t *testing.T) {
	r := newRig()
	feet := r.Feet()
	if !feet[0].uninitialized() || !feet[1].uninitialized() {
		t.Fatal("new rig feet should carry the zero sentinel")
	}

	r.Update(physics.State{}, frameDT)
	pose := r.Pose()
	for i, f := range r.Feet() {
		if f.Y != groundY {
			t.Errorf("foot %d y = %v, expected ground %v", i, f.Y, groundY)
		}
		if math.Abs(f.X-pose.Hip.X) > r.cfg.StrideForward {
			t.Errorf("foot %d placed %v px from the hip", i, f.X-pose.Hip.X)
		}
		tip := pose.Legs[i][len(pose.Legs[i])-1]
		if tip.Sub(f.Pos()).Len() > 5 {
			t.Errorf("leg %d tip %v far from its foot %v", i, tip, f.Pos())
		}
	}
	if pose.Feet[0] == pose.Feet[1] {
		t.Error("feet should be placed apart")
	}
}

func TestSwingArc(t *testing.T) {
	f := FootState{X: 10, Y: 100}
	f.beginSwing(40, 100)

	f.advanceSwing(0.5, 14)
	if math.Abs(f.X-25) > 1e-9 || math.Abs(f.Y-86) > 1e-9 {
		t.Errorf("mid-swing = (%v, %v), expected (25, 86)", f.X, f.Y)
	}
	f.advanceSwing(0.6, 14)
	if f.IsSwinging || f.X != 40 || f.Y != 100 || f.SwingT != 1 {
		t.Errorf("finished swing = %+v, expected planted at target", f)
	}
}

func TestFallRotatesToHorizontal(t *testing.T) {
	cfg := config.DefaultConfig().Rig
	for _, angle := range []float64{0.9, -0.95} {
		r := newRig()
		r.WarmUp(cfg.WarmUpFrames, physics.State{})
		before := r.Pose().Legs

		r.Update(physics.State{Angle: angle, IsGameOver: true}, frameDT)
		if r.Mode() != ModeFalling {
			t.Fatalf("angle %v: expected falling mode", angle)
		}
		if r.BodyRotation() != angle {
			t.Errorf("rotation at fall start = %v, expected %v", r.BodyRotation(), angle)
		}

		frames := int(math.Ceil(cfg.FallDuration/frameDT)) + 5
		for i := 0; i < frames; i++ {
			r.Update(physics.State{Angle: angle, IsGameOver: true}, frameDT)
		}
		want := core.SignNonZero(angle) * math.Pi / 2
		if math.Abs(r.BodyRotation()-want) > 1e-9 {
			t.Errorf("angle %v: final rotation = %v, expected %v", angle, r.BodyRotation(), want)
		}

		after := r.Pose().Legs
		for i := range before {
			for j := range before[i] {
				if before[i][j] != after[i][j] {
					t.Fatalf("leg %d node %d moved while falling", i, j)
				}
			}
		}

		r.Reset()
		if r.Mode() != ModeWalking || r.BodyRotation() != 0 {
			t.Error("Reset should return to walking upright")
		}
	}
}

func TestWarmUpSettlesChains(t *testing.T) {
	r := newRig()
	steps := 0
	r.OnStepStart(func(int, StepReason) { steps++ })
	r.WarmUp(45, physics.State{WalkPhase: 1})

	if steps != 0 {
		t.Errorf("warm-up took %d steps, expected none", steps)
	}
	pose := r.Pose()
	for _, chain := range [][]core.Vec2{pose.Legs[0], pose.Legs[1], pose.Arms[0], pose.Arms[1], pose.Tail} {
		for _, p := range chain {
			if !core.Finite(p.X) || !core.Finite(p.Y) {
				t.Fatalf("chain node not finite after warm-up: %v", p)
			}
		}
	}
	if tail := pose.Tail; tail[len(tail)-1].Y >= tail[0].Y {
		t.Error("tail should float above its anchor")
	}
}

func TestOffsetMovesCharacter(t *testing.T) {
	r := newRig()
	r.Update(physics.State{}, frameDT)
	x0 := r.Pose().Hip.X

	r.SetOffsetX(30)
	r.Update(physics.State{}, frameDT)
	if dx := r.Pose().Hip.X - x0; math.Abs(dx-30) > 1e-9 {
		t.Errorf("hip moved %v px, expected 30", dx)
	}
}

func TestRenderDrawsCharacter(t *testing.T) {
	r := newRig()
	r.WarmUp(10, physics.State{})

	view := core.NewViewport(0, -60)
	dst := core.NewScreen(80, 20)
	r.Render(dst, view)

	hx, hy := view.Cell(r.Pose().Head)
	if dst.Get(hx, hy) != 'O' {
		t.Errorf("head cell (%d, %d) = %q, expected 'O'", hx, hy, dst.Get(hx, hy))
	}
}
