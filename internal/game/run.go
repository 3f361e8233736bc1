// Package game composes the simulation packages into a playable run:
// events feed physics, physics drives the rig, and the run owns the
// stage flow, continues and the coffee shield.
package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/events"
	"github.com/vovakirdan/tightrope/internal/physics"
	"github.com/vovakirdan/tightrope/internal/progression"
	"github.com/vovakirdan/tightrope/internal/rig"
	"github.com/vovakirdan/tightrope/internal/theme"
)

const (
	pxPerMeter    = 100.0 // Rig pixels per meter of distance
	rigOriginX    = 0.0
	rigGroundY    = 200.0
	doorLead      = 1.2 // Meters past the stage end where the door sits
	bannerSeconds = 2.5
	flashSeconds  = 0.3
)

// RunSummary is the outcome of one run, persisted by the shell.
type RunSummary struct {
	ID        uuid.UUID
	Mode      Mode
	Distance  float64
	Stage     int
	Rank      string
	Duration  float64
	Continued bool
	Bounces   int
	Events    int
}

// Option configures a Run.
type Option func(*Run)

// WithInventory uses inv for coffee charges instead of an in-memory pool.
func WithInventory(inv Inventory) Option {
	return func(r *Run) {
		if inv != nil {
			r.inventory = inv
		}
	}
}

// WithThemes shares a theme set between runs.
func WithThemes(set *theme.Set) Option {
	return func(r *Run) {
		if set != nil {
			r.themes = set
		}
	}
}

// Run is one playthrough of a mode.
type Run struct {
	mode Mode
	cfg  config.Config
	rcfg core.RuntimeConfig

	rng       *core.RNG
	diff      *config.Modulator
	engine    *physics.Engine
	events    *events.Modulator
	rig       *rig.Rig
	tracker   *progression.Tracker
	entry     *EntrySequence
	camera    *Camera
	themes    *theme.Set
	inventory Inventory

	id         uuid.UUID
	paused     bool
	continued  bool
	unlocked   bool
	eventCount int
	entryFrom  float64 // Distance held on screen during the entry walk
	doorOffset float64 // Pixels from the character to the door
	banner     string
	bannerLeft float64
	flashLeft  float64
	bounces    int
}

// New creates a run of mode with the given tunables and resets it with
// the default runtime config.
func New(mode Mode, cfg config.Config, opts ...Option) *Run {
	r := &Run{
		mode:      mode,
		cfg:       cfg,
		themes:    theme.NewSet(),
		inventory: NewMemoryInventory(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset(core.DefaultConfig())
	return r
}

// ID returns the mode identifier.
func (r *Run) ID() string {
	return string(r.mode)
}

// Title returns the display name.
func (r *Run) Title() string {
	return r.mode.Title()
}

// Mode returns the rules this run plays by.
func (r *Run) Mode() Mode {
	return r.mode
}

// Reset starts a new run. Components are rebuilt so the same seed
// always replays the same run.
func (r *Run) Reset(rcfg core.RuntimeConfig) {
	if rcfg.TickRate <= 0 {
		rcfg.TickRate = 60
	}
	r.rcfg = rcfg
	r.rng = core.NewRNG(rcfg.Seed)

	r.diff = config.NewModulator(r.cfg.Difficulty, r.cfg.Physics)
	r.engine = physics.New(r.cfg.Physics, r.diff)
	r.events = events.New(r.cfg.Events, r.rng)
	r.events.OnSpawn(func(events.Kind, float64) { r.eventCount++ })
	r.tracker = progression.New(r.cfg.Progression)
	r.rig = rig.New(r.cfg.Rig, rigOriginX, rigGroundY)
	r.entry = NewEntrySequence(r.cfg.Progression.EntryWalkSeconds, r.cfg.Progression.EntryFadeSeconds)
	r.camera = NewCamera(rcfg.TickRate)

	r.id = uuid.New()
	r.paused = false
	r.continued = false
	r.unlocked = false
	r.eventCount = 0
	r.banner = ""
	r.bannerLeft = 0
	r.flashLeft = 0
	r.bounces = 0

	switch r.mode {
	case ModeStages:
		r.applyRank()
	case ModePractice:
		r.engine.SetInvincible(true)
		r.events.SetUnlockedEvents(events.AllKinds)
		r.unlocked = true
	}
	r.rig.WarmUp(r.cfg.Rig.WarmUpFrames, r.engine.State())
}

// applyRank pushes the current rank into physics and events.
func (r *Run) applyRank() {
	r.engine.SetSpeedMultiplier(r.tracker.Rank().SpeedMultiplier)
	r.events.SetUnlockedEvents(r.tracker.UnlockedEvents())
	r.events.SetIntensityMultiplier(r.tracker.IntensityMultiplier())
}

// Update advances the run by dt seconds of real time.
func (r *Run) Update(dt float64, in core.InputFrame) core.StepResult {
	if !core.Finite(dt) || dt < 0 {
		dt = 0
	}

	if r.engine.State().IsGameOver {
		if in.Has(core.ActionContinue) {
			r.Continue()
		} else {
			r.rig.Update(r.engine.State(), dt)
		}
		return core.StepResult{State: r.State()}
	}

	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.paused {
		return core.StepResult{State: r.State()}
	}
	if in.Has(core.ActionCoffee) {
		r.DrinkCoffee()
	}

	r.bannerLeft = math.Max(0, r.bannerLeft-dt)
	r.flashLeft = math.Max(0, r.flashLeft-dt)

	dir := core.NormalizeDirection(in.Direction)
	var frame events.Frame
	if r.entry.Active() {
		dir = 0
		r.updateEntry(dt)
	} else {
		r.checkStageEnd()
		r.checkEndlessUnlock()
	}
	if !r.entry.Active() {
		frame = r.events.Update(dt, r.engine.State().Distance)
		if frame.BumpImpulse != 0 {
			r.camera.Kick(core.Sign(frame.BumpImpulse))
		}
	}

	r.engine.SetEventFrame(frame)
	r.engine.Update(dt, dir)

	state := r.engine.State()
	if r.entry.Active() {
		state.Speed = 0
	}
	r.rig.Update(state, dt)
	r.camera.Update(r.engine.AnglePercent())

	if b := r.engine.Bounces(); b > r.bounces {
		r.bounces = b
		r.flashLeft = flashSeconds
	}
	return core.StepResult{State: r.State()}
}

// checkStageEnd starts the building entry when a stage is complete.
func (r *Run) checkStageEnd() {
	if r.mode != ModeStages {
		return
	}
	distance := r.engine.State().Distance
	next := r.tracker.NextStageDistance()
	if distance < next {
		return
	}
	r.entry.Start()
	r.engine.SetZeroGravity(true)
	r.entryFrom = distance
	r.doorOffset = (next + doorLead - distance) * pxPerMeter
}

// checkEndlessUnlock opens every event kind once the warm-up distance
// is behind the character.
func (r *Run) checkEndlessUnlock() {
	if r.mode != ModeEndless || r.unlocked {
		return
	}
	distance := r.engine.State().Distance
	if distance < r.cfg.Progression.EndlessUnlockAt {
		return
	}
	r.unlocked = true
	r.events.SetUnlockedEvents(events.AllKinds)
	r.events.ResetAt(distance)
	r.showBanner("THE COMMUTE GETS ROUGH")
}

func (r *Run) updateEntry(dt float64) {
	done := r.entry.Update(dt)
	r.rig.SetOffsetX(r.doorOffset * core.Smoothstep(0, 1, r.entry.WalkProgress()))
	if done {
		r.completeStage()
	}
}

// completeStage promotes and restarts balance at the new stage base.
func (r *Run) completeStage() {
	r.tracker.Advance()
	r.applyRank()

	base := r.tracker.StageBase()
	r.events.ResetAt(base)
	r.engine.ResetForContinue(base, r.tracker.StageMultiplier())
	r.engine.SetZeroGravity(false)
	r.inventory.AddCoffee(r.cfg.Shield.StageCharges)

	r.rig.Reset()
	r.rig.WarmUp(r.cfg.Rig.WarmUpFrames, r.engine.State())
	r.camera.Reset()

	title := fmt.Sprintf("PROMOTED: %s", r.tracker.Rank().Title)
	if r.tracker.RankIndex() == 0 && r.tracker.LoopCount() > 0 {
		title = fmt.Sprintf("BACK TO INTERN (LOOP %d)", r.tracker.LoopCount())
	}
	r.showBanner(title)
}

// CanContinue reports whether a fallen run may resume.
func (r *Run) CanContinue() bool {
	return r.engine.State().IsGameOver && !r.continued
}

// Continue resumes a fallen run from the start of its stage. Only one
// continue is allowed per run.
func (r *Run) Continue() bool {
	if !r.CanContinue() {
		return false
	}
	base := r.continueBase()
	r.entry.Cancel()
	r.engine.SetZeroGravity(false)
	r.engine.ResetForContinue(base, r.tracker.StageMultiplier())
	r.events.ResetAt(base)

	r.rig.Reset()
	r.rig.WarmUp(r.cfg.Rig.WarmUpFrames, r.engine.State())
	r.camera.Reset()
	r.continued = true
	r.paused = false
	return true
}

func (r *Run) continueBase() float64 {
	if r.mode == ModeStages {
		return r.tracker.StageBase()
	}
	length := r.cfg.Progression.StageLength
	if length <= 0 {
		return 0
	}
	return math.Floor(r.engine.State().Distance/length) * length
}

// DrinkCoffee spends one charge on a shield. It does nothing while a
// shield is already up or the inventory is empty.
func (r *Run) DrinkCoffee() bool {
	if r.engine.IsCoffeeShieldActive() {
		return false
	}
	if !r.inventory.SpendCoffee() {
		return false
	}
	r.engine.ActivateCoffeeShield(r.cfg.Shield.Distance)
	r.showBanner("COFFEE!")
	return true
}

func (r *Run) showBanner(text string) {
	r.banner = text
	r.bannerLeft = bannerSeconds
}

// State returns the platform-facing status.
func (r *Run) State() core.GameState {
	s := r.engine.State()
	return core.GameState{
		Score:       int(math.Floor(s.Distance)),
		GameOver:    s.IsGameOver,
		Paused:      r.paused,
		CanContinue: r.CanContinue(),
	}
}

// Physics returns the current pendulum snapshot.
func (r *Run) Physics() physics.State {
	return r.engine.State()
}

// Stage returns the 1-based stage number.
func (r *Run) Stage() int {
	return r.tracker.Stage()
}

// Rank returns the current rank.
func (r *Run) Rank() progression.Rank {
	return r.tracker.Rank()
}

// Sequence returns the building entry sequence.
func (r *Run) Sequence() *EntrySequence {
	return r.entry
}

// Coffee returns the charges left in the inventory.
func (r *Run) Coffee() int {
	return r.inventory.CoffeeCount()
}

// ShieldActive reports whether a coffee shield is up.
func (r *Run) ShieldActive() bool {
	return r.engine.IsCoffeeShieldActive()
}

// SetInventory swaps the coffee source, typically for a persistent one.
func (r *Run) SetInventory(inv Inventory) {
	if inv != nil {
		r.inventory = inv
	}
}

// Summary describes the run so far.
func (r *Run) Summary() RunSummary {
	s := r.engine.State()
	return RunSummary{
		ID:        r.id,
		Mode:      r.mode,
		Distance:  s.Distance,
		Stage:     r.tracker.Stage(),
		Rank:      r.tracker.Rank().Name,
		Duration:  s.ElapsedTime,
		Continued: r.continued,
		Bounces:   r.engine.Bounces(),
		Events:    r.eventCount,
	}
}
