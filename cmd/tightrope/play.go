package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tightrope/internal/platform/tui"
	"github.com/vovakirdan/tightrope/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start a run of the specified mode.

Terminals do not report key releases, so a lean key holds for a short
moment after each press. Keep tapping to keep leaning.

Controls:
  A/D, H/L, Left/Right - Lean left / right
  Space                - Stop leaning
  X                    - Drink a coffee (shield)
  C                    - Continue after a fall (once per run)
  P                    - Pause
  R                    - Restart (after a fall)
  B/Esc                - Back (when paused or fallen)
  Ctrl+S               - Save a screenshot
  Q/Ctrl+C             - Quit

Difficulty options:
  easy   - Lighter gravity, start as an intern
  normal - Default tunables
  hard   - Heavier gravity, start two ranks up
  fixed  - Difficulty never ramps with distance

Examples:
  tightrope play stages
  tightrope play endless --difficulty hard
  tightrope play practice --config ./my-rope.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	modeID := args[0]
	if err := checkMode(modeID); err != nil {
		return err
	}

	tunables, err := loadTunables()
	if err != nil {
		return err
	}

	g, err := registry.Create(modeID, tunables)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(g, store, runtimeConfig(),
		tui.WithLogger(logger), tui.WithMaxDelta(tunables.Loop.MaxDelta)); err != nil {
		return fmt.Errorf("error running %s: %w", modeID, err)
	}
	return nil
}
