// Package log builds the slog.Logger used by every command.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, the console only gets stderr output and the file
// receives everything at the configured level.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below Debug and enables per-frame output.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to a slog.Level. Unknown names yield Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

// NewMultiHandler returns a handler writing to all of hs.
func NewMultiHandler(hs ...slog.Handler) MultiHandler { return MultiHandler{hs: hs} }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r.Clone())
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m MultiHandler) each(fn func(slog.Handler) slog.Handler) MultiHandler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = fn(h)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes only records whose level satisfies pass.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

// NewLevelFilter wraps h with the predicate pass.
func NewLevelFilter(pass func(slog.Level) bool, h slog.Handler) LevelFilter {
	return LevelFilter{pass: pass, h: h}
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// Setup describes where log output goes.
type Setup struct {
	Level string
	File  string
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// New builds a logger from s. The returned closers own any opened files.
func New(s Setup) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(s.Level)
	stdout, stderr := s.Stdout, s.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var handlers []slog.Handler
	var closers []io.Closer
	if s.File == "" {
		handlers = append(handlers,
			NewLevelFilter(func(l slog.Level) bool { return l < slog.LevelError },
				slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})),
			NewLevelFilter(func(l slog.Level) bool { return l >= slog.LevelError },
				slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		)
	} else {
		f, err := os.OpenFile(s.File, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		handlers = append(handlers,
			slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
			slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}),
		)
	}
	return slog.New(NewMultiHandler(handlers...)), closers, nil
}

// SetupLogger is New with the console writers of the process.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	return New(Setup{Level: logLevel, File: logFile})
}
