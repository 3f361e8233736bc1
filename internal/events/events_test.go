package events

import (
	"math"
	"testing"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
)

const testDT = 1.0 / 60.0

func newModulator(seed int64, kinds ...Kind) *Modulator {
	m := New(config.DefaultConfig().Events, core.NewRNG(seed))
	m.SetUnlockedEvents(kinds)
	return m
}

func TestSpawnCadence(t *testing.T) {
	cfg := config.DefaultConfig().Events
	const step = 0.05

	tests := []struct {
		kind Kind
		cfg  config.EventKindConfig
	}{
		{KindBump, cfg.Bump},
		{KindWind, cfg.Wind},
		{KindSlope, cfg.Slope},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m := newModulator(2024, tt.kind)
			m.SetIntensityMultiplier(1)

			var spawns []float64
			m.OnSpawn(func(k Kind, distance float64) {
				if k != tt.kind {
					t.Fatalf("locked kind %v spawned", k)
				}
				spawns = append(spawns, distance)
			})

			distance := 0.0
			for len(spawns) < 1001 {
				distance += step
				m.Update(testDT, distance)
			}

			for i := 1; i < len(spawns); i++ {
				gap := spawns[i] - spawns[i-1]
				if gap < tt.cfg.GapMin-1e-9 || gap > tt.cfg.GapMax+step+1e-9 {
					t.Fatalf("spawn gap %d = %v outside [%v, %v]", i, gap, tt.cfg.GapMin, tt.cfg.GapMax)
				}
			}
		})
	}
}

func TestBumpIsEdgeTriggered(t *testing.T) {
	m := newModulator(7, KindBump)
	threshold := m.NextSpawnDistance(KindBump)

	// Spawn tick: record created, not yet emitted
	f := m.Update(testDT, threshold)
	if f.BumpImpulse != 0 {
		t.Fatalf("bump should not be emitted on its spawn tick, got %v", f.BumpImpulse)
	}
	if !m.Active(KindBump) {
		t.Fatal("bump should be active after spawning")
	}

	// Next tick: emitted exactly once
	f = m.Update(testDT, threshold+0.01)
	if f.BumpImpulse == 0 {
		t.Fatal("bump should be emitted on the tick after spawn")
	}
	if m.SinceLastBump() != 0 {
		t.Errorf("SinceLastBump right after emission = %v, expected 0", m.SinceLastBump())
	}

	// Afterwards: cleared
	f = m.Update(testDT, threshold+0.02)
	if f.BumpImpulse != 0 {
		t.Errorf("bump emitted twice: %v", f.BumpImpulse)
	}
	if m.Active(KindBump) {
		t.Error("bump should be cleared after being read once")
	}
}

func TestWindLivesForItsDuration(t *testing.T) {
	m := newModulator(11, KindWind)
	threshold := m.NextSpawnDistance(KindWind)

	f := m.Update(testDT, threshold)
	if f.WindTorque == 0 {
		t.Fatal("wind should blow on its spawn tick")
	}
	dir := m.WindDirection()
	if dir != int(core.Sign(f.WindTorque)) {
		t.Errorf("WindDirection = %d, torque = %v", dir, f.WindTorque)
	}

	torque := f.WindTorque
	ticks := 1
	for m.Active(KindWind) {
		f = m.Update(testDT, threshold)
		if f.WindTorque != torque {
			t.Fatalf("wind torque changed mid-event: %v -> %v", torque, f.WindTorque)
		}
		ticks++
		if ticks > 10000 {
			t.Fatal("wind never expired")
		}
	}

	cfg := config.DefaultConfig().Events.Wind
	seconds := float64(ticks) * testDT
	if seconds < cfg.DurationMin || seconds > cfg.DurationMax+2*testDT {
		t.Errorf("wind lasted %v s, expected within [%v, %v]", seconds, cfg.DurationMin, cfg.DurationMax)
	}
	if m.WindDirection() != 0 {
		t.Error("WindDirection should be 0 once expired")
	}
}

func TestLockedKindsNeverSpawn(t *testing.T) {
	m := newModulator(3)
	for d := 0.0; d < 2000; d += 0.5 {
		f := m.Update(testDT, d)
		if f != (Frame{}) {
			t.Fatalf("event fired with nothing unlocked at %v: %+v", d, f)
		}
	}
}

func TestIntensityCap(t *testing.T) {
	cfg := config.DefaultConfig().Events
	m := newModulator(5, KindSlope)
	m.SetIntensityMultiplier(100)

	var offsets []float64
	d := 0.0
	for len(offsets) < 50 {
		d += 0.1
		f := m.Update(testDT, d)
		if f.SlopeOffset != 0 && (len(offsets) == 0 || offsets[len(offsets)-1] != f.SlopeOffset) {
			offsets = append(offsets, f.SlopeOffset)
		}
	}

	for _, o := range offsets {
		mag := math.Abs(o)
		lo := cfg.Slope.MagnitudeMin * cfg.Slope.IntensityCap
		hi := cfg.Slope.MagnitudeMax * cfg.Slope.IntensityCap
		if mag < lo-1e-9 || mag > hi+1e-9 {
			t.Fatalf("slope offset %v outside capped range [%v, %v]", o, lo, hi)
		}
	}
}

func TestDeterministicForSameSeed(t *testing.T) {
	a := newModulator(99, AllKinds...)
	b := newModulator(99, AllKinds...)

	for i := 0; i < 20000; i++ {
		d := float64(i) * 0.03
		fa, fb := a.Update(testDT, d), b.Update(testDT, d)
		if fa != fb {
			t.Fatalf("frames diverged at tick %d: %+v vs %+v", i, fa, fb)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("earthquake"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}
