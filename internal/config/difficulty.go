package config

import (
	"math"

	"github.com/vovakirdan/tightrope/internal/core"
)

// Difficulty is the modulator output for one point of a run.
type Difficulty struct {
	Speed                    float64
	GravityMultiplier        float64
	AngularDampingMultiplier float64
	DampingBonus             float64 // Band contribution before the rank penalty
	BackgroundLabel          string  // Cosmetic only
}

// Modulator derives pendulum difficulty from distance and elapsed time.
// It is a pure function of its inputs plus the persistent rank penalty.
type Modulator struct {
	cfg         DifficultyConfig
	phys        PhysicsConfig
	rankPenalty float64
}

// NewModulator creates a difficulty modulator.
func NewModulator(cfg DifficultyConfig, phys PhysicsConfig) *Modulator {
	return &Modulator{cfg: cfg, phys: phys}
}

// SetEnabled enables or disables the distance bands.
func (m *Modulator) SetEnabled(enabled bool) {
	m.cfg.Enabled = enabled
}

// IsEnabled reports whether the distance bands are active.
func (m *Modulator) IsEnabled() bool {
	return m.cfg.Enabled
}

// SetRankDampingPenalty derives the persistent penalty from a rank's speed
// multiplier. Multipliers at or below 1 clear it.
func (m *Modulator) SetRankDampingPenalty(speedMultiplier float64) {
	m.rankPenalty = math.Max(0, (speedMultiplier-1)*m.cfg.RankPenaltyScale)
}

// RankDampingPenalty returns the current persistent penalty.
func (m *Modulator) RankDampingPenalty() float64 {
	return m.rankPenalty
}

// Config returns the difficulty at the given distance and elapsed time.
func (m *Modulator) Config(distance, elapsed float64) Difficulty {
	d := Difficulty{
		Speed:                    core.ClampF(m.phys.InitialSpeed+elapsed*m.phys.SpeedIncrement, m.phys.InitialSpeed, m.phys.MaxSpeed),
		GravityMultiplier:        1,
		AngularDampingMultiplier: 1,
		BackgroundLabel:          m.background(distance),
	}

	if m.cfg.Enabled && distance >= m.cfg.Threshold {
		a := core.Smoothstep(m.cfg.BandA.Start, m.cfg.BandA.End, distance)
		b := core.Smoothstep(m.cfg.BandB.Start, m.cfg.BandB.End, distance)
		d.GravityMultiplier += a*m.cfg.BandA.Gravity + b*m.cfg.BandB.Gravity
		d.DampingBonus = a*m.cfg.BandA.Damping + b*m.cfg.BandB.Damping
	}

	d.AngularDampingMultiplier = math.Max(m.cfg.MinDamping, 1+d.DampingBonus-m.rankPenalty)
	return d
}

// EffectiveDamping combines the base damping with a multiplier and caps it
// below 1 so velocity never grows from damping alone.
func (m *Modulator) EffectiveDamping(base, multiplier float64) float64 {
	limit := m.cfg.MaxEffectiveDamp
	if limit <= 0 || limit >= 1 {
		limit = 0.999
	}
	return math.Min(base*multiplier, limit)
}

func (m *Modulator) background(distance float64) string {
	for _, l := range m.cfg.Backgrounds {
		if l.Until <= 0 || distance < l.Until {
			return l.Name
		}
	}
	return ""
}
