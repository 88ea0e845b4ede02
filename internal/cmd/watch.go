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

	"golang.org/x/term"

	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/internal/config"
	"github.com/Alia5/inputtrack/internal/configpaths"
	"github.com/Alia5/inputtrack/internal/host/replay"
	interm "github.com/Alia5/inputtrack/internal/host/term"
	"github.com/Alia5/inputtrack/internal/util"
)

type Watch struct {
	Source       string        `help:"Input source" enum:"term,evdev" default:"term" env:"INPUTTRACK_WATCH_SOURCE"`
	Devices      []string      `help:"evdev device paths (default: every device)" sep:","`
	DeviceFilter string        `help:"Only evdev devices whose name contains this"`
	Grab         bool          `help:"Take exclusive access to evdev devices" default:"false"`
	Format       string        `help:"Output format" enum:"text,json" default:"text"`
	Threshold    time.Duration `help:"Quick action threshold" default:"200ms" env:"INPUTTRACK_THRESHOLD"`
	TrackerFile  string        `help:"Tracker settings file, reloaded on change" type:"path" env:"INPUTTRACK_TRACKER_FILE"`
	Record       string        `help:"Save received input as a replay script (format from extension)" type:"path"`
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src input.Source
	switch w.Source {
	case "term":
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logger.Warn("stdin is not a terminal, reading it as a stream")
		}
		src = interm.New(os.Stdin, logger)
		fmt.Fprintln(os.Stderr, "Type to generate input, Ctrl-C to stop.")
	case "evdev":
		s, err := evdevSource(w, logger)
		if err != nil {
			return err
		}
		src = s
	default:
		return fmt.Errorf("unknown source %q", w.Source)
	}

	p := newEventPrinter(os.Stdout, w.Format, func() string { return time.Now().Format("15:04:05.000") })
	p.color = term.IsTerminal(int(os.Stdout.Fd())) && util.EnableVirtualTerminal()
	// raw terminal mode needs explicit carriage returns
	if w.Source == "term" && term.IsTerminal(int(os.Stdin.Fd())) {
		p.w = crlfWriter{os.Stdout}
	}
	return w.run(ctx, src, p, logger)
}

func (w *Watch) run(ctx context.Context, src input.Source, p *eventPrinter, logger *slog.Logger) error {
	tracker := input.New(&input.Options{Threshold: w.Threshold, Logger: logger})
	tracker.SetThreshold(w.Threshold)
	tracker.Bus().SubscribeAll(p.Print)

	watcher, err := watchTrackerFile(ctx, w.TrackerFile, logger, func(tf config.TrackerFile) {
		tracker.SetThreshold(tf.QuickActionThreshold)
		logger.Info("Applied tracker file", "threshold", tf.QuickActionThreshold)
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	var rec *replay.Recorder
	if w.Record != "" {
		rec = replay.NewRecorder(nil)
		src = replay.RecordingSource{Source: src, Recorder: rec}
	}

	ws := &endingSource{Source: src}
	if err := tracker.Attach(ws); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-ws.Done():
	}
	if err := tracker.Detach(); err != nil {
		logger.Warn("detach failed", "error", err)
	}

	stats := tracker.Stats()
	logger.Info("Watch finished", "published", stats.Bus.Published, "dropped", stats.Dropped)

	if rec != nil {
		return writeScript(rec.Script(), w.Record, tracker.Threshold())
	}
	return nil
}

func writeScript(s *replay.Script, path string, threshold time.Duration) error {
	s.Threshold = &threshold
	data, err := s.Marshal(configpaths.FormatOf(path))
	if err != nil {
		return err
	}
	if err := configpaths.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// endingSource remembers the listener of the wrapped source so the caller can
// wait for sources that end on their own.
type endingSource struct {
	input.Source
	listener io.Closer
}

func (s *endingSource) Listen(h input.Handlers) (io.Closer, error) {
	l, err := s.Source.Listen(h)
	s.listener = l
	return l, err
}

// Done is closed when the listener ends. It never closes for listeners that
// only end when closed.
func (s *endingSource) Done() <-chan struct{} {
	if d, ok := s.listener.(interface{ Done() <-chan struct{} }); ok {
		return d.Done()
	}
	return nil
}

type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+4)
	for _, b := range p {
		if b == '\n' {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
