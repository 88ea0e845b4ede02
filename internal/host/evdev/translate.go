//go:build linux

package evdev

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/holoplot/go-evdev"

	"github.com/Alia5/inputtrack/input"
)

const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

// translator turns an evdev event stream into raw tracker notifications.
// Relative axes are collected until SYN_REPORT so a diagonal move is
// delivered once with both components.
type translator struct {
	h        input.Handlers
	position mgl64.Vec2

	move    mgl64.Vec2
	wheel   mgl64.Vec2
	pending []*evdev.InputEvent
}

func newTranslator(h input.Handlers, origin mgl64.Vec2) *translator {
	return &translator{h: h, position: origin}
}

func (t *translator) feed(ev *evdev.InputEvent) {
	switch ev.Type {
	case evdev.EV_KEY:
		t.key(ev)
	case evdev.EV_REL:
		t.rel(ev)
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			t.flush()
		}
	}
}

func (t *translator) key(ev *evdev.InputEvent) {
	if idx, ok := ButtonIndex(ev.Code); ok {
		raw := input.RawButton{Index: idx, Raw: ev}
		switch ev.Value {
		case keyDown:
			call(t.h.ButtonDown, raw)
		case keyUp:
			call(t.h.ButtonUp, raw)
		}
		return
	}
	raw := input.RawKey{Code: KeyCode(ev.Code), Raw: ev}
	switch ev.Value {
	case keyDown, keyRepeat:
		call(t.h.KeyDown, raw)
	case keyUp:
		call(t.h.KeyUp, raw)
	}
}

func (t *translator) rel(ev *evdev.InputEvent) {
	v := float64(ev.Value)
	switch ev.Code {
	case evdev.REL_X:
		t.move[0] += v
	case evdev.REL_Y:
		t.move[1] += v
	case evdev.REL_WHEEL:
		// evdev reports scrolling away from the user as positive.
		t.wheel[1] -= v
	case evdev.REL_HWHEEL:
		t.wheel[0] += v
	default:
		return
	}
	t.pending = append(t.pending, ev)
}

func (t *translator) flush() {
	if len(t.pending) == 0 {
		return
	}
	raw := t.pending
	if t.move != (mgl64.Vec2{}) {
		t.position = t.position.Add(t.move)
		call(t.h.Move, input.RawMove{Position: t.position, Delta: t.move, Raw: raw})
	}
	if t.wheel != (mgl64.Vec2{}) {
		call(t.h.Wheel, input.RawWheel{Delta: t.wheel, Raw: raw})
	}
	t.move, t.wheel, t.pending = mgl64.Vec2{}, mgl64.Vec2{}, nil
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
