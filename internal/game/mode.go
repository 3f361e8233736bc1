package game

import (
	"fmt"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/registry"
)

// Mode selects the rules of a run.
type Mode string

const (
	// ModeStages walks through 200 m stages, entering a building at
	// each boundary and climbing the rank ladder.
	ModeStages Mode = "stages"
	// ModeEndless never ends a stage; every event unlocks after a warm-up.
	ModeEndless Mode = "endless"
	// ModePractice cannot fall and has every event from the start.
	ModePractice Mode = "practice"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeStages, ModeEndless, ModePractice}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeStages:
		return "Career Stages"
	case ModeEndless:
		return "Endless Commute"
	case ModePractice:
		return "Practice Rope"
	default:
		return string(m)
	}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("game: unknown mode %q", s)
}

func init() {
	for _, m := range Modes {
		mode := m
		registry.Register(string(mode), func(cfg config.Config) registry.Game {
			return New(mode, cfg)
		})
	}
}
