// tightrope is a terminal balance runner: walk a rope to work without
// falling off.
//
// Usage:
//
//	tightrope list              - List available modes
//	tightrope play <mode>       - Play a mode
//	tightrope menu              - Pick modes interactively
//	tightrope scores <mode>     - Show the longest runs of a mode
//	tightrope serve             - Start SSH server for remote play
//	tightrope sim <mode>        - Simulate a run headlessly
//	tightrope demo <mode>       - Watch the autopilot walk in real time
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.tightrope/tightrope.db)
//	--config <path>       - Load tunables from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tightrope/internal/config"
	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/registry"
	"github.com/vovakirdan/tightrope/internal/storage"

	// Import modes to register them
	_ "github.com/vovakirdan/tightrope/internal/game"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tightrope",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tightrope",
	Short: "Tightrope - keep your balance on the way to work",
	Long: `Tightrope is a terminal balance runner. Your commuter walks a rope
between office buildings; lean left and right to stay upright while
bumps, gusts of wind and slopes try to knock you off.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  scores   - View the longest runs
  serve    - Start SSH server for remote play
  sim      - Simulate a run without a terminal UI
  demo     - Watch the autopilot in real time

Examples:
  tightrope list
  tightrope play stages
  tightrope play endless --difficulty hard
  tightrope serve --ssh :2222
  tightrope sim endless --seconds 120 --plot`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tightrope/tightrope.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tunables YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadTunables reads the config file chain and applies --difficulty.
func loadTunables() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the runs database. A failure is logged and yields a
// nil store so play can continue without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func checkMode(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown mode %q, run 'tightrope list' to see available modes", id)
	}
	return nil
}
