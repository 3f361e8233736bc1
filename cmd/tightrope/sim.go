package main

import (
	"fmt"
	"math"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/game"
	"github.com/vovakirdan/tightrope/internal/storage"
)

var (
	flagSimSeconds   float64
	flagSimAutopilot bool
	flagSimPlot      bool
	flagSimSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim <mode>",
	Short: "Simulate a run headlessly",
	Long: `Advance a run as fast as possible without a terminal UI and report
how far it got. With --autopilot the built-in controller leans against
the tilt; without it the walker never touches the controls.

Runs with the same --seed produce the same result.

Examples:
  tightrope sim stages --seed 42
  tightrope sim endless --seconds 300 --plot
  tightrope sim practice --autopilot=false --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated seconds to run for")
	simCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", true, "Steer with the built-in controller")
	simCmd.Flags().BoolVar(&flagSimPlot, "plot", false, "Plot the angle and speed traces")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the runs database")
}

// simTrace holds the per-frame samples of a simulated run.
type simTrace struct {
	angle []float64
	speed []float64
}

func runSim(_ *cobra.Command, args []string) error {
	mode, err := game.ParseMode(args[0])
	if err != nil {
		return err
	}
	tunables, err := loadTunables()
	if err != nil {
		return err
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := game.New(mode, tunables)
	r.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: fps, Seed: seed})

	pilot := game.NewAutopilot()
	dt := 1.0 / float64(fps)
	frames := int(math.Ceil(flagSimSeconds * float64(fps)))
	trace := simTrace{
		angle: make([]float64, 0, frames),
		speed: make([]float64, 0, frames),
	}

	logger.Debug("simulating", "mode", mode, "seed", seed, "frames", frames, "autopilot", flagSimAutopilot)

	in := core.NewInputFrame()
	for i := 0; i < frames; i++ {
		in.Clear()
		if flagSimAutopilot {
			in.SetDirection(pilot.Decide(r.Physics()))
		}
		res := r.Update(dt, in)

		s := r.Physics()
		trace.angle = append(trace.angle, s.Angle)
		trace.speed = append(trace.speed, s.Speed)
		if res.State.GameOver {
			break
		}
	}

	sum := r.Summary()
	logger.Info("run finished",
		"mode", sum.Mode,
		"seed", seed,
		"distance", fmt.Sprintf("%.1f m", sum.Distance),
		"stage", sum.Stage,
		"rank", sum.Rank,
		"time", fmt.Sprintf("%.1fs", sum.Duration),
		"fell", r.State().GameOver,
		"events", sum.Events,
		"bounces", sum.Bounces,
	)

	if flagSimPlot && len(trace.angle) > 1 {
		fmt.Println(asciigraph.Plot(trace.angle,
			asciigraph.Height(10), asciigraph.Width(72), asciigraph.Caption("angle (rad)")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.speed,
			asciigraph.Height(6), asciigraph.Width(72), asciigraph.Caption("speed (px/s)")))
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening runs database: %w", err)
		}
		defer store.Close()
		_, err = store.SaveRun(storage.RunRecord{
			ID:        sum.ID,
			Mode:      string(sum.Mode),
			Distance:  sum.Distance,
			Stage:     sum.Stage,
			Rank:      sum.Rank,
			Duration:  sum.Duration,
			Continued: sum.Continued,
		})
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", sum.ID)
	}
	return nil
}
