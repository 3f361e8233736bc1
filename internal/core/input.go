package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, H, Left arrow - lean left
	ActionRight           // D, L, Right arrow - lean right
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart after a fall
	ActionContinue        // C key - continue from the stage base after a fall
	ActionCoffee          // X key - drink a coffee for a temporary shield
	ActionQuit            // Q, Ctrl+C - exit
	ActionPause           // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionContinue:
		return "Continue"
	case ActionCoffee:
		return "Coffee"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state sampled for one frame.
// Direction is the held lean direction; Actions holds one-shot triggers.
type InputFrame struct {
	Direction int
	Actions   map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetDirection stores the lean direction, normalized to {-1, 0, 1}.
func (f *InputFrame) SetDirection(dir int) {
	f.Direction = NormalizeDirection(dir)
}

// Clear resets all one-shot actions for the next frame.
// Direction is owned by the sampler and left untouched.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Direction = f.Direction
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// NormalizeDirection maps any integer to -1, 0 or 1 by sign.
func NormalizeDirection(dir int) int {
	switch {
	case dir > 0:
		return 1
	case dir < 0:
		return -1
	default:
		return 0
	}
}
