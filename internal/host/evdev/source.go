//go:build linux

// Package evdev feeds a tracker from Linux input devices under /dev/input.
package evdev

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/holoplot/go-evdev"

	"github.com/Alia5/inputtrack/input"
)

// ErrNoDevices is returned by Listen when there is nothing to read from.
var ErrNoDevices = errors.New("no input devices")

// Source reads one or more evdev devices. Events of all devices are merged
// and dispatched from a single goroutine.
type Source struct {
	Paths []string
	// Grab takes exclusive access so other clients stop seeing the events.
	Grab bool
	// Origin is the pointer position before the first relative move.
	Origin mgl64.Vec2
	Logger *slog.Logger
}

// New returns a source for the given device paths.
func New(logger *slog.Logger, paths ...string) *Source {
	return &Source{Paths: paths, Logger: logger}
}

// Discover lists device paths whose name contains filter (case insensitive).
// An empty filter matches every device.
func Discover(filter string) ([]string, error) {
	all, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}
	filter = strings.ToLower(filter)
	var out []string
	for _, p := range all {
		if filter == "" || strings.Contains(strings.ToLower(p.Name), filter) {
			out = append(out, p.Path)
		}
	}
	return out, nil
}

// Listen opens every device and starts reading. The returned Listener stops
// on Close or once every device has failed.
func (s *Source) Listen(h input.Handlers) (io.Closer, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(s.Paths) == 0 {
		return nil, ErrNoDevices
	}

	l := &Listener{
		logger: logger,
		events: make(chan *evdev.InputEvent, 64),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, path := range s.Paths {
		d, err := evdev.Open(path)
		if err != nil {
			l.closeDevices()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		if s.Grab {
			if err := d.Grab(); err != nil {
				_ = d.Close()
				l.closeDevices()
				return nil, fmt.Errorf("grab %s: %w", path, err)
			}
		}
		name, _ := d.Name()
		logger.Info("Reading input device", "path", path, "name", name)
		l.devices = append(l.devices, d)
	}

	for i, d := range l.devices {
		l.readers.Add(1)
		go l.read(s.Paths[i], d)
	}
	go func() {
		l.readers.Wait()
		close(l.events)
	}()
	go l.dispatch(newTranslator(h, s.Origin))
	return l, nil
}

// Listener is the running side of a Source.
type Listener struct {
	logger  *slog.Logger
	devices []*evdev.InputDevice
	events  chan *evdev.InputEvent
	readers sync.WaitGroup

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func (l *Listener) read(path string, d *evdev.InputDevice) {
	defer l.readers.Done()
	for {
		ev, err := d.ReadOne()
		if err != nil {
			select {
			case <-l.stop:
			default:
				l.logger.Warn("input device read failed", "path", path, "error", err)
			}
			return
		}
		select {
		case l.events <- ev:
		case <-l.stop:
			return
		}
	}
}

func (l *Listener) dispatch(t *translator) {
	defer close(l.done)
	for ev := range l.events {
		t.feed(ev)
	}
}

// Done is closed once no device is being read anymore.
func (l *Listener) Done() <-chan struct{} { return l.done }

// Close stops reading, closes every device and waits for the dispatch loop.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.stop)
		l.closeErr = l.closeDevices()
		<-l.done
	})
	return l.closeErr
}

func (l *Listener) closeDevices() error {
	var errs []error
	for _, d := range l.devices {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
