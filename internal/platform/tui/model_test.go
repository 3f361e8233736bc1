package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/game"
	"github.com/vovakirdan/tightrope/internal/storage"
)

const frame = time.Second / 60

// harness drives a Model on a fake clock, one frame per tick.
type harness struct {
	t   *testing.T
	m   Model
	run *game.Run
	cur time.Time
}

func newHarness(t *testing.T, store *storage.Store, opts ...ModelOption) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		run: game.New(game.ModeStages, config.DefaultConfig()),
		cur: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	h.m = NewModel(h.run, store, cfg, opts...)
	h.m.now = func() time.Time { return h.cur }
	h.m.Init()
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T, want Model", next)
	}
	h.m = m
	return cmd
}

func (h *harness) tick() {
	h.cur = h.cur.Add(frame)
	h.send(TickMsg(h.cur))
}

// balance steers with the keyboard the way the autopilot would.
func (h *harness) balance(frames int) {
	pilot := game.NewAutopilot()
	for i := 0; i < frames; i++ {
		switch pilot.Decide(h.run.Physics()) {
		case -1:
			h.send(runeKey('a'))
		case 1:
			h.send(runeKey('d'))
		default:
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		}
		h.tick()
	}
}

// fall leans right until the run ends.
func (h *harness) fall() {
	h.t.Helper()
	for i := 0; i < 600 && !h.m.State().GameOver; i++ {
		h.send(runeKey('d'))
		h.tick()
	}
	if !h.m.State().GameOver {
		h.t.Fatal("walker never fell")
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelPauseToggle(t *testing.T) {
	h := newHarness(t, nil)
	h.tick()

	h.send(runeKey('p'))
	h.tick()
	if !h.m.State().Paused {
		t.Fatal("run should be paused")
	}
	before := h.run.Physics().Distance
	for i := 0; i < 30; i++ {
		h.tick()
	}
	if got := h.run.Physics().Distance; got != before {
		t.Errorf("distance moved while paused: %v -> %v", before, got)
	}

	h.send(runeKey('p'))
	h.tick()
	if h.m.State().Paused {
		t.Error("second p should resume")
	}
}

func TestModelKeyHoldExpires(t *testing.T) {
	h := newHarness(t, nil)
	h.tick()

	h.send(runeKey('d'))
	if got := h.m.hold.Direction(h.cur); got != 1 {
		t.Fatalf("held direction = %d, want 1", got)
	}
	if got := h.m.hold.Direction(h.cur.Add(HoldWindow)); got != 0 {
		t.Errorf("direction after the hold window = %d, want 0", got)
	}

	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := h.m.hold.Direction(h.cur); got != 0 {
		t.Errorf("direction after release = %d, want 0", got)
	}
}

func TestModelSavesOnBackFromFall(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store, embedded())

	h.balance(600)
	h.fall()

	if !h.m.State().CanContinue {
		t.Fatal("first fall should offer a continue")
	}
	if runs, _ := store.TopRuns("stages", 10); len(runs) != 0 {
		t.Fatalf("run saved while a continue was pending: %+v", runs)
	}

	if cmd := h.send(runeKey('b')); cmd != nil {
		t.Error("embedded model should not quit on back")
	}
	if !h.m.BackToMenu() {
		t.Fatal("back after a fall should return to the menu")
	}

	runs, err := store.TopRuns("stages", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved runs = %d, want 1", len(runs))
	}
	if runs[0].Distance < 10 || runs[0].ID != h.run.Summary().ID {
		t.Errorf("saved run = %+v", runs[0])
	}
	if n, _ := store.Counter("runs"); n != 1 {
		t.Errorf("runs counter = %d, want 1", n)
	}

	// A second back must not save twice.
	h.send(runeKey('b'))
	if runs, _ := store.TopRuns("stages", 10); len(runs) != 1 {
		t.Errorf("run saved %d times", len(runs))
	}
}

func TestModelContinueThenFinalFall(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store)

	h.balance(600)
	h.fall()
	h.send(runeKey('c'))
	h.tick()
	if h.m.State().GameOver {
		t.Fatal("continue should put the walker back on the rope")
	}

	h.balance(120)
	h.fall()
	if h.m.State().CanContinue {
		t.Fatal("only one continue per run")
	}
	runs, _ := store.TopRuns("stages", 10)
	if len(runs) != 1 || !runs[0].Continued {
		t.Errorf("final fall should save one continued run, got %+v", runs)
	}
}

func TestModelUsesStoredCoffee(t *testing.T) {
	store := openStore(t)
	if err := store.AddItem(storage.CoffeeItem, 2); err != nil {
		t.Fatalf("AddItem() failed: %v", err)
	}
	h := newHarness(t, store)
	h.tick()

	if got := h.run.Coffee(); got != 2 {
		t.Fatalf("Coffee() = %d, want 2 from the store", got)
	}
	h.send(runeKey('x'))
	h.tick()
	if !h.run.ShieldActive() {
		t.Error("x should raise the coffee shield")
	}
	if n, _ := store.ItemCount(storage.CoffeeItem); n != 1 {
		t.Errorf("stored coffee = %d, want 1", n)
	}
}

func TestModelQuit(t *testing.T) {
	h := newHarness(t, nil)
	if cmd := h.send(runeKey('q')); cmd == nil {
		t.Error("q should return a quit command")
	}
	if !h.m.IsQuitting() || h.m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestSessionMenuStartsRun(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	s := NewSessionModel(nil, cfg, config.DefaultConfig(),
		NewPainter(nil), NewStyles(nil), log.New(io.Discard))

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.screen != screenRun || s.run == nil {
		t.Fatalf("enter should start a run, screen = %v", s.screen)
	}
	if cmd == nil {
		t.Error("starting a run should schedule the first tick")
	}
	if s.View() == "" {
		t.Error("run view is empty")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenRun {
		t.Error("tab during a run should not leave it")
	}
}

func TestSessionScoreboardAndBack(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	s := NewSessionModel(nil, cfg, config.DefaultConfig(),
		NewPainter(nil), NewStyles(nil), log.New(io.Discard))

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %v", s.screen)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.screen != screenMenu {
		t.Errorf("esc should return to the menu, screen = %v", s.screen)
	}
	if s.quitting {
		t.Error("leaving the scoreboard should not end the session")
	}
}
