package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
)

const (
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// eventPrinter writes one line per published event.
type eventPrinter struct {
	w      io.Writer
	format string
	color  bool
	// stamp prefixes text lines, usually a time of day or replay offset.
	stamp func() string

	mu sync.Mutex
}

func newEventPrinter(w io.Writer, format string, stamp func() string) *eventPrinter {
	if stamp == nil {
		stamp = func() string { return "" }
	}
	return &eventPrinter{w: w, format: format, stamp: stamp}
}

func (p *eventPrinter) Print(ev input.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == "json" {
		b, err := json.Marshal(apitypes.FromEvent(ev))
		if err != nil {
			return
		}
		_, _ = fmt.Fprintf(p.w, "%s\n", b)
		return
	}

	line := describe(ev)
	if p.color && (ev.Name() == input.KeyPressed || ev.Name() == input.ButtonClicked) {
		line = ansiGreen + line + ansiReset
	}
	if s := p.stamp(); s != "" {
		line = s + " " + line
	}
	_, _ = fmt.Fprintln(p.w, line)
}

func describe(ev input.Event) string {
	switch e := ev.(type) {
	case input.KeyEvent:
		return fmt.Sprintf("%-14s %s", e.Type, e.Key)
	case input.ButtonEvent:
		return fmt.Sprintf("%-14s %s", e.Type, e.Button)
	case input.MoveEvent:
		return fmt.Sprintf("%-14s pos=(%g, %g) delta=(%g, %g)", input.MouseMove,
			e.Position[0], e.Position[1], e.Delta[0], e.Delta[1])
	case input.WheelEvent:
		return fmt.Sprintf("%-14s delta=(%g, %g)", input.MouseWheel, e.Delta[0], e.Delta[1])
	default:
		return string(ev.Name())
	}
}
