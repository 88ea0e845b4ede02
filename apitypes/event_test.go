package apitypes_test

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/input/mouse"
)

func TestFromEventJSON(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
		want string
	}{
		{
			name: "key pressed",
			ev:   input.KeyEvent{Type: input.KeyPressed, State: input.StatePressed, Key: keyboard.KeyA, Raw: "ignored"},
			want: `{"type":"key_pressed","state":0,"key":"KeyA","keyIndex":34}`,
		},
		{
			name: "button down",
			ev:   input.ButtonEvent{Type: input.ButtonDown, State: input.StateDown, Button: mouse.Right},
			want: `{"type":"button_down","state":1,"button":"RIGHT","buttonIndex":2}`,
		},
		{
			name: "move",
			ev:   input.MoveEvent{Position: mgl64.Vec2{10, 20}, Delta: mgl64.Vec2{1, -1}},
			want: `{"type":"mouse_move","position":[10,20],"delta":[1,-1]}`,
		},
		{
			name: "wheel",
			ev:   input.WheelEvent{Delta: mgl64.Vec2{0, 3}},
			want: `{"type":"mouse_wheel","delta":[0,3]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(apitypes.FromEvent(tt.ev))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestApiErrorString(t *testing.T) {
	assert.Equal(t, "unknown error", apitypes.ApiError{}.Error())
	assert.Equal(t, "404 Not Found: no session", apitypes.ApiError{Status: 404, Title: "Not Found", Detail: "no session"}.Error())
}
