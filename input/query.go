package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/input/mouse"
)

// IsKeyDown reports whether k is currently down.
func (t *Tracker) IsKeyDown(k keyboard.Key) bool {
	return k.Valid() && t.keys[k].state != StateUp
}

// KeyStateValue returns 0.0 for an UP key and 1.0 for a DOWN key.
func (t *Tracker) KeyStateValue(k keyboard.Key) float64 {
	if !k.Valid() {
		return StateUp.Value()
	}
	return t.keys[k].state.Value()
}

// IsButtonDown reports whether b is currently down.
func (t *Tracker) IsButtonDown(b mouse.Button) bool {
	return b.Valid() && t.buttons[b].state != StateUp
}

// ButtonStateValue returns 0.0 for an UP button and 1.0 for a DOWN button.
func (t *Tracker) ButtonStateValue(b mouse.Button) float64 {
	if !b.Valid() {
		return StateUp.Value()
	}
	return t.buttons[b].state.Value()
}

// Pointer returns the last absolute pointer position.
func (t *Tracker) Pointer() mgl64.Vec2 {
	return t.pointer
}

// KeysDown returns the keys currently down in ordinal order.
func (t *Tracker) KeysDown() []keyboard.Key {
	var out []keyboard.Key
	for i := range t.keys {
		if t.keys[i].state != StateUp {
			out = append(out, keyboard.Key(i))
		}
	}
	return out
}

// ButtonsDown returns the buttons currently down in index order.
func (t *Tracker) ButtonsDown() []mouse.Button {
	var out []mouse.Button
	for i := range t.buttons {
		if t.buttons[i].state != StateUp {
			out = append(out, mouse.Button(i))
		}
	}
	return out
}
