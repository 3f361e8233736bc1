package core

// RuntimeConfig contains configuration passed to a run at initialization.
// Runs use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic event spawning
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score       int  // Distance reached, in whole meters
	GameOver    bool // Whether the character has fallen
	Paused      bool // Whether the run is paused
	CanContinue bool // Whether a continue is still available after a fall
}

// StepResult is returned by Game.Update() after each frame.
type StepResult struct {
	State GameState
}
