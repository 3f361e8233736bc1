// Package events spawns the transient hazards layered on top of the balance
// pendulum: one-shot bumps, sustained wind torque, and sustained slopes.
package events

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
)

// Kind identifies an event family.
type Kind int

const (
	KindBump Kind = iota
	KindWind
	KindSlope
)

// AllKinds lists every event kind in spawn order.
var AllKinds = []Kind{KindBump, KindWind, KindSlope}

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBump:
		return "bump"
	case KindWind:
		return "wind"
	case KindSlope:
		return "slope"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bump":
		return KindBump, nil
	case "wind":
		return KindWind, nil
	case "slope":
		return KindSlope, nil
	default:
		return 0, fmt.Errorf("events: unknown kind %q", s)
	}
}

// Frame is the per-update output consumed by the physics core.
// BumpImpulse is an edge trigger: non-zero on exactly one frame per bump.
type Frame struct {
	BumpImpulse float64
	WindTorque  float64
	SlopeOffset float64
}

// ActiveBump is a pending one-shot impulse.
type ActiveBump struct {
	Impulse float64
	Applied bool
}

// ActiveWind is a sustained torque.
type ActiveWind struct {
	Torque   float64
	Duration float64
	Elapsed  float64
}

// ActiveSlope is a sustained shift of the balance point.
type ActiveSlope struct {
	Offset   float64
	Duration float64
	Elapsed  float64
}

// Modulator owns the active event records and their spawn thresholds.
type Modulator struct {
	cfg       config.EventsConfig
	rng       *core.RNG
	unlocked  map[Kind]bool
	intensity float64

	bump  *ActiveBump
	wind  *ActiveWind
	slope *ActiveSlope

	nextSpawn    [3]float64
	clock        float64
	lastBumpTime float64
	spawnHook    func(kind Kind, distance float64)
}

// New creates an event modulator drawing from rng. Nothing is unlocked
// until SetUnlockedEvents is called.
func New(cfg config.EventsConfig, rng *core.RNG) *Modulator {
	m := &Modulator{
		cfg:       cfg,
		rng:       rng,
		unlocked:  make(map[Kind]bool),
		intensity: 1,
	}
	m.Reset()
	return m
}

// Reset clears active events and picks fresh spawn thresholds from distance 0.
func (m *Modulator) Reset() {
	m.ResetAt(0)
}

// ResetAt clears active events and picks spawn thresholds measured from distance.
func (m *Modulator) ResetAt(distance float64) {
	m.bump = nil
	m.wind = nil
	m.slope = nil
	m.clock = 0
	m.lastBumpTime = math.Inf(-1)
	for _, k := range AllKinds {
		m.nextSpawn[k] = distance + m.gap(k)
	}
}

// SetUnlockedEvents replaces the set of kinds allowed to spawn.
func (m *Modulator) SetUnlockedEvents(kinds []Kind) {
	m.unlocked = make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		m.unlocked[k] = true
	}
}

// Unlocked reports whether a kind may spawn.
func (m *Modulator) Unlocked(k Kind) bool {
	return m.unlocked[k]
}

// SetIntensityMultiplier scales spawned magnitudes. Each kind caps it.
func (m *Modulator) SetIntensityMultiplier(mult float64) {
	if mult <= 0 {
		mult = 1
	}
	m.intensity = mult
}

// OnSpawn registers a callback invoked whenever an event spawns.
func (m *Modulator) OnSpawn(fn func(kind Kind, distance float64)) {
	m.spawnHook = fn
}

// Update advances timers, spawns due events and returns this frame's output.
func (m *Modulator) Update(dt, distance float64) Frame {
	m.clock += dt
	var f Frame

	// A bump is read once, then cleared on the following update.
	if m.bump != nil {
		if m.bump.Applied {
			m.bump = nil
		} else {
			f.BumpImpulse = m.bump.Impulse
			m.bump.Applied = true
			m.lastBumpTime = m.clock
		}
	}

	if m.bump == nil && m.due(KindBump, distance) {
		c := m.cfg.Bump
		m.bump = &ActiveBump{Impulse: m.magnitude(c) * m.rng.Sign()}
		m.spawned(KindBump, distance)
	}
	if m.wind == nil && m.due(KindWind, distance) {
		c := m.cfg.Wind
		m.wind = &ActiveWind{
			Torque:   m.magnitude(c) * m.rng.Sign(),
			Duration: m.rng.Range(c.DurationMin, c.DurationMax),
		}
		m.spawned(KindWind, distance)
	}
	if m.slope == nil && m.due(KindSlope, distance) {
		c := m.cfg.Slope
		m.slope = &ActiveSlope{
			Offset:   m.magnitude(c) * m.rng.Sign(),
			Duration: m.rng.Range(c.DurationMin, c.DurationMax),
		}
		m.spawned(KindSlope, distance)
	}

	if m.wind != nil {
		f.WindTorque = m.wind.Torque
		m.wind.Elapsed += dt
		if m.wind.Elapsed >= m.wind.Duration {
			m.wind = nil
		}
	}
	if m.slope != nil {
		f.SlopeOffset = m.slope.Offset
		m.slope.Elapsed += dt
		if m.slope.Elapsed >= m.slope.Duration {
			m.slope = nil
		}
	}

	return f
}

// Active reports whether an instance of kind is alive.
func (m *Modulator) Active(k Kind) bool {
	switch k {
	case KindBump:
		return m.bump != nil
	case KindWind:
		return m.wind != nil
	case KindSlope:
		return m.slope != nil
	}
	return false
}

// WindDirection returns the sign of the active wind, or 0.
func (m *Modulator) WindDirection() int {
	if m.wind == nil {
		return 0
	}
	return int(core.Sign(m.wind.Torque))
}

// SlopeDirection returns the sign of the active slope, or 0.
func (m *Modulator) SlopeDirection() int {
	if m.slope == nil {
		return 0
	}
	return int(core.Sign(m.slope.Offset))
}

// LastBumpTime returns the modulator clock at the last emitted bump,
// or -Inf when none has fired since reset.
func (m *Modulator) LastBumpTime() float64 {
	return m.lastBumpTime
}

// SinceLastBump returns seconds since the last emitted bump.
func (m *Modulator) SinceLastBump() float64 {
	return m.clock - m.lastBumpTime
}

// NextSpawnDistance returns the threshold at which kind may spawn next.
func (m *Modulator) NextSpawnDistance(k Kind) float64 {
	return m.nextSpawn[k]
}

func (m *Modulator) due(k Kind, distance float64) bool {
	return m.unlocked[k] && distance >= m.nextSpawn[k]
}

func (m *Modulator) spawned(k Kind, distance float64) {
	m.nextSpawn[k] = distance + m.gap(k)
	if m.spawnHook != nil {
		m.spawnHook(k, distance)
	}
}

func (m *Modulator) gap(k Kind) float64 {
	c := m.kindConfig(k)
	return m.rng.Range(c.GapMin, c.GapMax)
}

func (m *Modulator) magnitude(c config.EventKindConfig) float64 {
	scale := math.Min(m.intensity, c.IntensityCap)
	return m.rng.Range(c.MagnitudeMin, c.MagnitudeMax) * scale
}

func (m *Modulator) kindConfig(k Kind) config.EventKindConfig {
	switch k {
	case KindWind:
		return m.cfg.Wind
	case KindSlope:
		return m.cfg.Slope
	default:
		return m.cfg.Bump
	}
}
