// Package term feeds a tracker from keystrokes typed into a terminal.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/Alia5/inputtrack/input"
)

// Source reads keystrokes from In. When In is a terminal it is switched to
// raw mode for the lifetime of the listener. Ctrl-C and Ctrl-D end the
// listener.
type Source struct {
	In     io.Reader
	Logger *slog.Logger
	// EscapeDelay is how long a trailing ESC waits for the rest of an escape
	// sequence before it is taken as the Escape key.
	EscapeDelay time.Duration

	fd int
}

// DefaultEscapeDelay is the EscapeDelay of sources built with New or NewReader.
const DefaultEscapeDelay = 50 * time.Millisecond

// New returns a source reading f, usually os.Stdin.
func New(f *os.File, logger *slog.Logger) *Source {
	return &Source{In: f, Logger: logger, EscapeDelay: DefaultEscapeDelay, fd: int(f.Fd())}
}

// NewReader returns a source reading r, which is never put into raw mode.
func NewReader(r io.Reader, logger *slog.Logger) *Source {
	return &Source{In: r, Logger: logger, EscapeDelay: DefaultEscapeDelay, fd: -1}
}

// Listen starts reading In.
func (s *Source) Listen(h input.Handlers) (io.Closer, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &Listener{
		logger:      logger,
		escapeDelay: s.EscapeDelay,
		done:        make(chan struct{}),
		stop:        make(chan struct{}),
	}
	if s.fd >= 0 && term.IsTerminal(s.fd) {
		state, err := term.MakeRaw(s.fd)
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		l.restore = func() error { return term.Restore(s.fd, state) }
	}
	go l.run(s.In, h)
	return l, nil
}

// Listener is the running side of a Source.
type Listener struct {
	logger      *slog.Logger
	restore     func() error
	escapeDelay time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	err  error

	closeOnce sync.Once
}

type chunk struct {
	p   []byte
	err error
}

func (l *Listener) run(r io.Reader, h input.Handlers) {
	defer l.finish(nil)
	reads := make(chan chunk)
	go l.read(r, reads)

	var buf []byte
	var pending <-chan time.Time
	for {
		select {
		case <-l.stop:
			return
		case <-pending:
			// nothing followed the ESC in time
			pending = nil
			l.emit(h, DecodeFinal(buf))
			buf = nil
		case c := <-reads:
			if i := bytes.IndexAny(c.p, string([]byte{ctrlC, ctrlD})); i >= 0 {
				l.emit(h, DecodeFinal(append(buf, c.p[:i]...)))
				return
			}
			buf = append(buf, c.p...)
			if c.err != nil {
				l.emit(h, DecodeFinal(buf))
				if !errors.Is(c.err, io.EOF) {
					l.finish(c.err)
				}
				return
			}
			strokes, n := Decode(buf)
			l.emit(h, strokes)
			buf = bytes.Clone(buf[n:])
			pending = nil
			if len(buf) > 0 {
				pending = time.After(l.escapeDelay)
			}
		}
	}
}

// read forwards chunks of r until a read fails or the listener stops.
func (l *Listener) read(r io.Reader, out chan<- chunk) {
	for {
		p := make([]byte, 64)
		n, err := r.Read(p)
		select {
		case out <- chunk{p: p[:n], err: err}:
		case <-l.stop:
			return
		}
		if err != nil {
			return
		}
	}
}

// emit replays strokes into h until the listener stops.
func (l *Listener) emit(h input.Handlers, strokes []Stroke) {
	for _, s := range strokes {
		select {
		case <-l.stop:
			return
		default:
		}
		l.logger.Debug("terminal stroke", "code", s.Code, "raw", s.Raw)
		press(h, s)
	}
}

func press(h input.Handlers, s Stroke) {
	var mods []string
	if s.Ctrl {
		mods = append(mods, "ControlLeft")
	}
	if s.Alt {
		mods = append(mods, "AltLeft")
	}
	if s.Shift {
		mods = append(mods, "ShiftLeft")
	}
	for _, m := range mods {
		call(h.KeyDown, input.RawKey{Code: m, Raw: s})
	}
	call(h.KeyDown, input.RawKey{Code: s.Code, Raw: s})
	call(h.KeyUp, input.RawKey{Code: s.Code, Raw: s})
	for i := len(mods) - 1; i >= 0; i-- {
		call(h.KeyUp, input.RawKey{Code: mods[i], Raw: s})
	}
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

func (l *Listener) finish(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.done:
		return
	default:
	}
	l.err = err
	close(l.done)
}

// Done is closed when input ended, either by Ctrl-C, Ctrl-D or end of file.
func (l *Listener) Done() <-chan struct{} { return l.done }

// Err returns the read error that ended the listener, if any.
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close restores the terminal. A read already blocked on In is abandoned and
// its bytes are discarded.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.stop)
		if l.restore != nil {
			err = l.restore()
		}
	})
	return err
}
