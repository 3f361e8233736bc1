package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tightrope/internal/core"
	"github.com/vovakirdan/tightrope/internal/game"
	"github.com/vovakirdan/tightrope/internal/loop"
	"github.com/vovakirdan/tightrope/internal/platform/tui"
)

var flagDemoSeconds float64

var demoCmd = &cobra.Command{
	Use:   "demo <mode>",
	Short: "Watch the autopilot walk in real time",
	Long: `Render a run driven by the built-in controller straight to the
terminal. A fall is continued once, then the run starts over.

Press Ctrl+C to stop.

Examples:
  tightrope demo stages
  tightrope demo endless --seconds 30 --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Float64Var(&flagDemoSeconds, "seconds", 0, "Stop after this many seconds (0 = until interrupted)")
}

func runDemo(_ *cobra.Command, args []string) error {
	mode, err := game.ParseMode(args[0])
	if err != nil {
		return err
	}
	tunables, err := loadTunables()
	if err != nil {
		return err
	}

	rcfg := runtimeConfig()
	if rcfg.TickRate <= 0 {
		rcfg.TickRate = 60
	}
	if rcfg.Seed == 0 {
		rcfg.Seed = time.Now().UnixNano()
	}

	r := game.New(mode, tunables)
	r.Reset(rcfg)
	screen := core.NewScreen(rcfg.ScreenW, rcfg.ScreenH)
	pilot := game.NewAutopilot()
	in := core.NewInputFrame()

	update := func(dt float64) {
		in.Clear()
		state := r.State()
		switch {
		case state.GameOver && state.CanContinue:
			in.Set(core.ActionContinue)
		case state.GameOver:
			rcfg.Seed++
			r.Reset(rcfg)
			return
		default:
			in.SetDirection(pilot.Decide(r.Physics()))
		}
		r.Update(dt, in)
	}
	render := func() {
		r.Render(screen)
		fmt.Fprint(os.Stdout, "\x1b[H", tui.RenderScreen(screen))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagDemoSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(flagDemoSeconds*float64(time.Second)))
		defer cancel()
	}

	// Clear the screen and hide the cursor for the duration.
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(os.Stdout, "\x1b[?25h\n")

	interval := time.Second / time.Duration(rcfg.TickRate)
	sched := loop.New(interval, update, render, loop.WithMaxDelta(tunables.Loop.MaxDelta))

	logger.Debug("scheduler started", "mode", mode, "interval", interval)
	err = sched.Start(ctx)
	logger.Debug("scheduler stopped", "error", err)

	sum := r.Summary()
	logger.Info("demo finished", "mode", sum.Mode, "distance", fmt.Sprintf("%.1f m", sum.Distance), "stage", sum.Stage)

	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
