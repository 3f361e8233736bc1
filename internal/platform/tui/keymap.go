package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tightrope/internal/core"
)

// HoldWindow is how long a lean key counts as held after its last
// press or auto-repeat. Terminals report no key-up events.
const HoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Left     key.Binding
	Right    key.Binding
	Release  key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Continue key.Binding
	Coffee   key.Binding
	Back     key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Left:     key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "lean left")),
		Right:    key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "lean right")),
		Release:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "let go")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Continue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Coffee:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "coffee")),
		Back:     key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "menu")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the in-game bindings.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return []key.Binding{km.Left, km.Right, km.Coffee, km.Pause, km.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Right, km.Release, km.Coffee},
		{km.Pause, km.Restart, km.Continue, km.Back, km.Quit},
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.Continue):
		return core.ActionContinue, false
	case key.Matches(msg, km.Coffee):
		return core.ActionCoffee, false
	case key.Matches(msg, km.Back):
		return core.ActionBack, false
	case key.Matches(msg, km.Confirm):
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// DirectionHold turns lean key presses into a held direction that
// expires HoldWindow after the last press.
type DirectionHold struct {
	dir    int
	expiry time.Time
}

// Press holds dir until now+HoldWindow. A press in the opposite
// direction takes over immediately.
func (h *DirectionHold) Press(dir int, now time.Time) {
	h.dir = core.NormalizeDirection(dir)
	h.expiry = now.Add(HoldWindow)
}

// Release drops the held direction.
func (h *DirectionHold) Release() {
	h.dir = 0
	h.expiry = time.Time{}
}

// Direction returns the held direction at now.
func (h *DirectionHold) Direction(now time.Time) int {
	if h.dir == 0 || !now.Before(h.expiry) {
		return 0
	}
	return h.dir
}
