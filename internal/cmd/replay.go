package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/internal/host/replay"
)

// replayEpoch is the clock reading at offset zero of every replay.
var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Replay struct {
	Script    string         `arg:"" help:"Script to replay (json, yaml or toml)" type:"existingfile"`
	Format    string         `help:"Output format" enum:"text,json" default:"text"`
	Speed     float64        `help:"Playback speed against the wall clock, 0 for instant" default:"0"`
	Threshold *time.Duration `help:"Override the threshold of the script"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.run(ctx, os.Stdout, logger)
}

func (r *Replay) run(ctx context.Context, out io.Writer, logger *slog.Logger) error {
	script, err := replay.Load(r.Script)
	if err != nil {
		return err
	}

	threshold := input.DefaultQuickActionThreshold
	switch {
	case r.Threshold != nil:
		threshold = *r.Threshold
	case script.Threshold != nil:
		threshold = *script.Threshold
	}

	clock := input.NewManualClock(replayEpoch)
	tracker := input.New(&input.Options{Clock: clock, Logger: logger})
	tracker.SetThreshold(threshold)

	p := newEventPrinter(out, r.Format, func() string {
		return fmt.Sprintf("%9s", "+"+clock.Now().Sub(replayEpoch).String())
	})
	tracker.Bus().SubscribeAll(p.Print)

	player := replay.NewPlayer(script, clock, replayEpoch)
	player.Speed = r.Speed
	player.Logger = logger
	if err := tracker.Attach(player); err != nil {
		return err
	}
	select {
	case <-player.Done():
	case <-ctx.Done():
	}
	if err := tracker.Detach(); err != nil {
		return err
	}

	stats := tracker.Stats()
	logger.Info("Replay finished",
		"steps", player.Played(), "of", len(script.Steps),
		"threshold", threshold,
		"published", stats.Bus.Published,
		"dropped", stats.Dropped)
	return nil
}
