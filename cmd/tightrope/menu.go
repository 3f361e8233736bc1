package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tightrope/internal/platform/tui"
	"github.com/vovakirdan/tightrope/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start tightrope in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run.
After a run ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start run
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tightrope menu
  tightrope menu --fps 30
  tightrope menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	tunables, err := loadTunables()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		g, err := registry.Create(menuResult.ModeID, tunables)
		if err != nil {
			logger.Error("cannot start run", "mode", menuResult.ModeID, "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(g, store, cfg,
			tui.WithLogger(logger), tui.WithMaxDelta(tunables.Loop.MaxDelta)); err != nil {
			logger.Error("run failed", "mode", menuResult.ModeID, "error", err)
		}
	}
}
