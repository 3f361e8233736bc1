package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/game"
	"github.com/vovakirdan/tightrope/internal/loop"
	"github.com/vovakirdan/tightrope/internal/registry"
	"github.com/vovakirdan/tightrope/internal/storage"
)

// Runs that can describe themselves are saved with their full summary.
type summarizer interface {
	Summary() game.RunSummary
}

// Runs that spend coffee get the persistent inventory.
type inventoryHolder interface {
	SetInventory(inv game.Inventory)
}

// Model is the Bubble Tea model for one run.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	painter   *Painter
	keys      *KeyMapper
	logger    *log.Logger
	config    core.RuntimeConfig
	maxDelta  float64
	embedded  bool // Back returns to a parent model instead of quitting
	hold      DirectionHold
	now       func() time.Time // Stamps key presses for the hold window
	input     core.InputFrame
	gameState core.GameState
	lastTick  time.Time

	quitting   bool
	backToMenu bool
	saved      bool // Whether the current run has been persisted
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPainter renders with p instead of the default renderer.
func WithPainter(p *Painter) ModelOption {
	return func(m *Model) {
		if p != nil {
			m.painter = p
		}
	}
}

// WithLogger reports storage failures to l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithMaxDelta caps the frame delta handed to the run.
func WithMaxDelta(seconds float64) ModelOption {
	return func(m *Model) {
		if seconds > 0 {
			m.maxDelta = seconds
		}
	}
}

func embedded() ModelOption {
	return func(m *Model) {
		m.embedded = true
	}
}

// NewModel creates a new Bubble Tea model for the given run.
func NewModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:     g,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:    store,
		painter:  defaultPainter,
		keys:     NewKeyMapper(),
		config:   cfg,
		maxDelta: loop.MaxDelta,
		now:      time.Now,
		input:    core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if h, ok := g.(inventoryHolder); ok && store != nil {
		inv := storage.Inventory(store)
		inv.OnError = m.warn
		h.SetInventory(inv)
	}
	return m
}

func (m Model) warn(err error) {
	if m.logger != nil {
		m.logger.Warn("storage", "error", err)
	}
}

// Init resets the run and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	now := m.now()
	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionLeft:
		m.hold.Press(-1, now)

	case action == core.ActionRight:
		m.hold.Press(1, now)

	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.finish()
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}

	case action == core.ActionNone:
		if key.Matches(msg, m.keys.Release) {
			m.hold.Release()
		}

	default:
		m.input.Set(action)
	}

	return m, nil
}

// handleTick advances the run by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = loop.ClampDeltaTo(now, m.lastTick, m.maxDelta)
	}
	m.lastTick = now

	if m.input.Has(core.ActionRestart) && m.gameState.GameOver {
		m.finish()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.saved = false
		m.hold.Release()
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.input.SetDirection(m.hold.Direction(now))
	result := m.game.Update(dt, m.input)
	m.gameState = result.State

	if m.gameState.GameOver && !m.gameState.CanContinue {
		m.finish()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finish persists a fallen run once. Runs still on the rope are not saved.
func (m *Model) finish() {
	if m.saved || !m.gameState.GameOver {
		return
	}
	m.saved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.warn(err)
	}
	if s, ok := m.game.(summarizer); ok {
		sum := s.Summary()
		rec := storage.RunRecord{
			ID:        sum.ID,
			Mode:      string(sum.Mode),
			Distance:  sum.Distance,
			Stage:     sum.Stage,
			Rank:      sum.Rank,
			Duration:  sum.Duration,
			Continued: sum.Continued,
		}
		if _, err := m.store.SaveRun(rec); err != nil {
			m.warn(err)
		}
	}
	if _, err := m.store.IncrementCounter("runs", 1); err != nil {
		m.warn(err)
	}
	if _, err := m.store.IncrementCounter("meters", int64(m.gameState.Score)); err != nil {
		m.warn(err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.warn(err)
		return
	}
	dir := filepath.Join(home, ".tightrope", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.warn(err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.warn(err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.painter.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed run state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given run.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(g, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
