package apitypes

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/input"
)

// InputEvent is the JSON form of an input.Event written on session streams.
// Only the fields relevant to Type are set.
type InputEvent struct {
	Type        string      `json:"type"`
	State       *uint8      `json:"state,omitempty"`
	Key         string      `json:"key,omitempty"`
	KeyIndex    *int        `json:"keyIndex,omitempty"`
	Button      string      `json:"button,omitempty"`
	ButtonIndex *int        `json:"buttonIndex,omitempty"`
	Position    *[2]float64 `json:"position,omitempty"`
	Delta       *[2]float64 `json:"delta,omitempty"`
}

// FromEvent converts a published event. Raw payloads are not carried.
func FromEvent(ev input.Event) InputEvent {
	out := InputEvent{Type: string(ev.Name())}
	switch e := ev.(type) {
	case input.KeyEvent:
		out.State = ptr(uint8(e.State))
		out.Key = e.Key.String()
		out.KeyIndex = ptr(int(e.Key))
	case input.ButtonEvent:
		out.State = ptr(uint8(e.State))
		out.Button = e.Button.String()
		out.ButtonIndex = ptr(int(e.Button))
	case input.MoveEvent:
		out.Position = vec(e.Position)
		out.Delta = vec(e.Delta)
	case input.WheelEvent:
		out.Delta = vec(e.Delta)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func vec(v mgl64.Vec2) *[2]float64 {
	a := [2]float64(v)
	return &a
}
