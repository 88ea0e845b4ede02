package mouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/inputtrack/input/mouse"
)

func TestFromIndex(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		want   mouse.Button
		wantOK bool
	}{
		{name: "left", index: 0, want: mouse.Left, wantOK: true},
		{name: "right", index: 2, want: mouse.Right, wantOK: true},
		{name: "last aux", index: 31, want: mouse.Aux29, wantOK: true},
		{name: "past table", index: 32},
		{name: "negative", index: -1},
		{name: "way out", index: 1 << 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := mouse.FromIndex(tt.index)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, b)
			}
		})
	}
}

func TestButtonNames(t *testing.T) {
	assert.Equal(t, "LEFT", mouse.Left.String())
	assert.Equal(t, "BACK", mouse.Aux1.String())
	assert.Equal(t, "FORWARD", mouse.Aux2.String())
	assert.Equal(t, "AUX_3", mouse.Aux3.String())
	assert.Equal(t, "AUX_29", mouse.Aux29.String())
	assert.Equal(t, "UNKNOWN", mouse.Button(40).String())
	assert.Len(t, mouse.All(), mouse.ButtonCount)
}
