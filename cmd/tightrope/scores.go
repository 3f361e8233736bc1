package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tightrope/internal/platform/tui"
	"github.com/vovakirdan/tightrope/internal/registry"
	"github.com/vovakirdan/tightrope/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTable bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the longest runs of a mode",
	Long: `Display the longest runs recorded for the specified mode, with
totals across every run of that mode.

Examples:
  tightrope scores stages
  tightrope scores endless --limit 20
  tightrope scores endless --table
  tightrope scores practice --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Browse runs in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	modeID := args[0]
	if err := checkMode(modeID); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(modeID); err != nil {
			return err
		}
		logger.Info("cleared runs", "mode", modeID)
		return nil
	}

	if flagScoresTable {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, modeID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	title := modeID
	for _, g := range registry.List() {
		if g.ID == modeID {
			title = g.Title
		}
	}

	runs, err := store.TopRuns(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Longest Walks - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tightrope play %s' to set the first record!\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %-6s  %s\n", "#", "Distance", "Stage", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-10s  %-6s  %s\n", "-", "--------", "-----", "----", "----", "----")
	for i, r := range runs {
		distance := fmt.Sprintf("%.1f m", r.Distance)
		if r.Continued {
			distance += "*"
		}
		secs := int(r.Duration)
		fmt.Printf("  %-4d  %-10s  %-5d  %-10s  %-6s  %s\n",
			i+1, distance, r.Stage, r.Rank,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(modeID); err == nil && stats.Runs > 0 {
		fmt.Printf("Runs: %d  Best: %.1f m  Average: %.1f m\n", stats.Runs, stats.Best, stats.AvgDistance)
	}
	if meters, err := store.Counter("meters"); err == nil && meters > 0 {
		fmt.Printf("Meters walked across all modes: %d\n", meters)
	}
	fmt.Println("* continued once")
	return nil
}
