// Package input tracks keyboard and mouse state and classifies releases into
// quick actions (key presses, button clicks) or sustained holds.
//
// A Tracker is fed by a Source through Attach, or directly through its
// Handle* methods, and publishes logical events on its Bus.
package input

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/input/mouse"
)

// DefaultQuickActionThreshold is the longest hold still classified as a press or click.
const DefaultQuickActionThreshold = 200 * time.Millisecond

// Options configures a Tracker. Zero fields take defaults.
type Options struct {
	// Threshold defaults to DefaultQuickActionThreshold.
	Threshold time.Duration
	// Clock defaults to SystemClock.
	Clock Clock
	// Bus defaults to a new bus sharing Logger.
	Bus    *Bus
	Logger *slog.Logger
}

// slot is the state of one key or button. A zero downSince means the slot
// has never been down.
type slot struct {
	state     State
	downSince time.Time
}

// Stats holds tracker counters.
type Stats struct {
	// Dropped counts raw notifications with unresolvable codes or indices.
	Dropped uint64
	Bus     BusStats
}

// Tracker owns the key, button and pointer state of one input host.
// Handle* methods must be called from a single goroutine.
type Tracker struct {
	keys    [keyboard.KeyCount]slot
	buttons [mouse.ButtonCount]slot
	pointer mgl64.Vec2

	threshold atomic.Int64
	clock     Clock
	bus       *Bus
	logger    *slog.Logger
	dropped   atomic.Uint64

	attachMu sync.Mutex
	source   Source
	listener io.Closer
}

// New returns a Tracker with every key and button UP.
func New(o *Options) *Tracker {
	t := &Tracker{
		clock:  SystemClock,
		logger: slog.Default(),
	}
	threshold := DefaultQuickActionThreshold
	if o != nil {
		if o.Threshold != 0 {
			threshold = o.Threshold
		}
		if o.Clock != nil {
			t.clock = o.Clock
		}
		if o.Logger != nil {
			t.logger = o.Logger
		}
		t.bus = o.Bus
	}
	if t.bus == nil {
		t.bus = NewBus(t.logger)
	}
	t.threshold.Store(int64(threshold))
	return t
}

// Bus returns the bus the tracker publishes on.
func (t *Tracker) Bus() *Bus { return t.bus }

// Subscribe is shorthand for t.Bus().Subscribe.
func (t *Tracker) Subscribe(name Name, h Handler) Subscription {
	return t.bus.Subscribe(name, h)
}

// Unsubscribe is shorthand for t.Bus().Unsubscribe.
func (t *Tracker) Unsubscribe(sub Subscription) bool {
	return t.bus.Unsubscribe(sub)
}

// Threshold returns the quick action threshold.
func (t *Tracker) Threshold() time.Duration {
	return time.Duration(t.threshold.Load())
}

// SetThreshold changes the quick action threshold. Only releases evaluated
// afterwards are affected. Safe to call from any goroutine.
func (t *Tracker) SetThreshold(d time.Duration) {
	t.threshold.Store(int64(d))
}

// Stats returns a snapshot of the tracker counters.
func (t *Tracker) Stats() Stats {
	return Stats{Dropped: t.dropped.Load(), Bus: t.bus.Stats()}
}

// HandleKeyDown processes a raw key-down. Repeats while the key is already
// down are ignored.
func (t *Tracker) HandleKeyDown(ev RawKey) {
	k, ok := keyboard.Resolve(ev.Code)
	if !ok {
		t.drop("key_down", "code", ev.Code)
		return
	}
	s := &t.keys[k]
	if s.state != StateUp {
		return
	}
	s.state = StateDown
	s.downSince = t.clock.Now()
	t.bus.Publish(KeyEvent{Type: KeyDown, State: StateDown, Key: k, Raw: ev.Raw})
}

// HandleKeyUp processes a raw key-up. A key_pressed event precedes key_up
// when the key was held for less than the threshold.
func (t *Tracker) HandleKeyUp(ev RawKey) {
	k, ok := keyboard.Resolve(ev.Code)
	if !ok {
		t.drop("key_up", "code", ev.Code)
		return
	}
	s := &t.keys[k]
	s.state = StateUp
	if t.quickAction(s.downSince) {
		t.bus.Publish(KeyEvent{Type: KeyPressed, State: StatePressed, Key: k, Raw: ev.Raw})
	}
	t.bus.Publish(KeyEvent{Type: KeyUp, State: StateUp, Key: k, Raw: ev.Raw})
}

// HandleButtonDown processes a raw pointer button-down.
func (t *Tracker) HandleButtonDown(ev RawButton) {
	b, ok := mouse.FromIndex(ev.Index)
	if !ok {
		t.drop("button_down", "index", ev.Index)
		return
	}
	s := &t.buttons[b]
	if s.state != StateUp {
		return
	}
	s.state = StateDown
	s.downSince = t.clock.Now()
	t.bus.Publish(ButtonEvent{Type: ButtonDown, State: StateDown, Button: b, Raw: ev.Raw})
}

// HandleButtonUp processes a raw pointer button-up, publishing button_clicked
// before button_up for quick releases.
func (t *Tracker) HandleButtonUp(ev RawButton) {
	b, ok := mouse.FromIndex(ev.Index)
	if !ok {
		t.drop("button_up", "index", ev.Index)
		return
	}
	s := &t.buttons[b]
	s.state = StateUp
	if t.quickAction(s.downSince) {
		t.bus.Publish(ButtonEvent{Type: ButtonClicked, State: StateClicked, Button: b, Raw: ev.Raw})
	}
	t.bus.Publish(ButtonEvent{Type: ButtonUp, State: StateUp, Button: b, Raw: ev.Raw})
}

// HandleMove stores the absolute pointer position and publishes mouse_move.
func (t *Tracker) HandleMove(ev RawMove) {
	t.pointer = ev.Position
	t.bus.Publish(MoveEvent{Position: ev.Position, Delta: ev.Delta, Raw: ev.Raw})
}

// HandleWheel publishes mouse_wheel.
func (t *Tracker) HandleWheel(ev RawWheel) {
	t.bus.Publish(WheelEvent{Delta: ev.Delta, Raw: ev.Raw})
}

// quickAction reports whether a release now, after a press at since, is
// shorter than the threshold. Slots that were never down never qualify.
func (t *Tracker) quickAction(since time.Time) bool {
	if since.IsZero() {
		return false
	}
	return t.clock.Now().Sub(since) < t.Threshold()
}

func (t *Tracker) drop(kind string, attr string, value any) {
	t.dropped.Add(1)
	t.logger.Debug("dropped unresolvable input", "kind", kind, attr, value)
}

// Handlers returns handlers that feed raw notifications into t.
func (t *Tracker) Handlers() Handlers {
	return Handlers{
		KeyDown:    t.HandleKeyDown,
		KeyUp:      t.HandleKeyUp,
		ButtonDown: t.HandleButtonDown,
		ButtonUp:   t.HandleButtonUp,
		Move:       t.HandleMove,
		Wheel:      t.HandleWheel,
	}
}

// Attach starts listening to src. A tracker listens to at most one source.
func (t *Tracker) Attach(src Source) error {
	t.attachMu.Lock()
	defer t.attachMu.Unlock()
	if t.listener != nil {
		return ErrAlreadyAttached
	}
	l, err := src.Listen(t.Handlers())
	if err != nil {
		return err
	}
	t.source = src
	t.listener = l
	return nil
}

// Detach releases the listeners acquired by Attach.
func (t *Tracker) Detach() error {
	t.attachMu.Lock()
	defer t.attachMu.Unlock()
	if t.listener == nil {
		return ErrNotAttached
	}
	err := t.listener.Close()
	t.source = nil
	t.listener = nil
	return err
}

// DisableContextMenu toggles suppression of the host's context menu on
// secondary click. It is a convenience unrelated to state tracking.
func (t *Tracker) DisableContextMenu(disable bool) error {
	t.attachMu.Lock()
	src := t.source
	t.attachMu.Unlock()
	if src == nil {
		return ErrNotAttached
	}
	c, ok := src.(ContextMenuController)
	if !ok {
		return ErrContextMenuUnsupported
	}
	return c.SetContextMenuEnabled(!disable)
}
