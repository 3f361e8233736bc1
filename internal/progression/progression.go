// Package progression tracks stages, ranks and loops of a stages run.
package progression

import (
	"math"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/events"
)

// Rank is one rung of the career ladder.
type Rank struct {
	Name            string
	Title           string
	SpeedMultiplier float64
	HeldItem        string
	World           string
	Unlocks         []events.Kind
}

var (
	bumpOnly = []events.Kind{events.KindBump}
	bumpWind = []events.Kind{events.KindBump, events.KindWind}
)

// Ranks is the ladder in promotion order.
var Ranks = []Rank{
	{Name: "intern", Title: "Intern", SpeedMultiplier: 1.0, HeldItem: "coffee cup", World: "office"},
	{Name: "junior", Title: "Junior Associate", SpeedMultiplier: 1.05, HeldItem: "folder", World: "office", Unlocks: bumpOnly},
	{Name: "associate", Title: "Associate", SpeedMultiplier: 1.1, HeldItem: "laptop", World: "office", Unlocks: bumpOnly},
	{Name: "senior", Title: "Senior Associate", SpeedMultiplier: 1.15, HeldItem: "umbrella", World: "downtown", Unlocks: bumpWind},
	{Name: "lead", Title: "Team Lead", SpeedMultiplier: 1.2, HeldItem: "clipboard", World: "downtown", Unlocks: bumpWind},
	{Name: "manager", Title: "Manager", SpeedMultiplier: 1.3, HeldItem: "briefcase", World: "downtown", Unlocks: events.AllKinds},
	{Name: "director", Title: "Director", SpeedMultiplier: 1.4, HeldItem: "phone", World: "skyline", Unlocks: events.AllKinds},
	{Name: "chief", Title: "Chief Executive", SpeedMultiplier: 1.5, HeldItem: "golden pen", World: "skyline", Unlocks: events.AllKinds},
}

// Tracker is the stage/rank state of one run.
type Tracker struct {
	cfg       config.ProgressionConfig
	startRank int
	stage     int
	rank      int
	loop      int
}

// New creates a tracker at stage 1 with the configured start rank.
func New(cfg config.ProgressionConfig) *Tracker {
	t := &Tracker{cfg: cfg}
	t.startRank = clampRank(cfg.StartRank)
	t.Reset()
	return t
}

func clampRank(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(Ranks) {
		return len(Ranks) - 1
	}
	return i
}

// Reset returns to stage 1 at the start rank.
func (t *Tracker) Reset() {
	t.stage = 1
	t.rank = t.startRank
	t.loop = 0
}

// Stage returns the 1-based stage number.
func (t *Tracker) Stage() int {
	return t.stage
}

// Rank returns the current rank.
func (t *Tracker) Rank() Rank {
	return Ranks[t.rank]
}

// RankIndex returns the position of the current rank in Ranks.
func (t *Tracker) RankIndex() int {
	return t.rank
}

// LoopCount returns how many times the ladder has wrapped.
func (t *Tracker) LoopCount() int {
	return t.loop
}

// StageBase returns the distance at which the current stage began.
func (t *Tracker) StageBase() float64 {
	return float64(t.stage-1) * t.cfg.StageLength
}

// NextStageDistance returns the distance that completes the current stage.
func (t *Tracker) NextStageDistance() float64 {
	return t.StageBase() + t.cfg.StageLength
}

// Advance completes a stage and promotes. Past the last rank the ladder
// wraps to the first and the loop count grows.
func (t *Tracker) Advance() {
	t.stage++
	t.rank++
	if t.rank >= len(Ranks) {
		t.rank = 0
		t.loop++
	}
}

// UnlockedEvents returns the kinds allowed to spawn. Every kind is
// unlocked once the ladder has wrapped.
func (t *Tracker) UnlockedEvents() []events.Kind {
	if t.loop > 0 {
		return events.AllKinds
	}
	return Ranks[t.rank].Unlocks
}

// IntensityMultiplier scales event magnitudes by loop count.
func (t *Tracker) IntensityMultiplier() float64 {
	return math.Pow(t.cfg.IntensityBase, float64(t.loop))
}

// StageMultiplier scales torques by loop count.
func (t *Tracker) StageMultiplier() float64 {
	return 1 + t.cfg.StageMultiplierUp*float64(t.loop)
}
