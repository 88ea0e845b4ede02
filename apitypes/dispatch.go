package apitypes

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/input"
)

// ParseFrameKind is the inverse of FrameKind.String. Underscores are
// accepted in place of dashes.
func ParseFrameKind(s string) (FrameKind, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k := FrameKeyDown; k <= FrameWheel; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFrameKind, s)
}

// Dispatch routes the frame to the matching handler. The frame itself is
// passed on as the raw payload.
func (f RawFrame) Dispatch(h input.Handlers) {
	switch f.Kind {
	case FrameKeyDown:
		call(h.KeyDown, input.RawKey{Code: f.Code, Raw: f})
	case FrameKeyUp:
		call(h.KeyUp, input.RawKey{Code: f.Code, Raw: f})
	case FrameButtonDown:
		call(h.ButtonDown, input.RawButton{Index: int(f.Index), Raw: f})
	case FrameButtonUp:
		call(h.ButtonUp, input.RawButton{Index: int(f.Index), Raw: f})
	case FrameMove:
		call(h.Move, input.RawMove{
			Position: mgl64.Vec2{float64(f.X), float64(f.Y)},
			Delta:    mgl64.Vec2{float64(f.DX), float64(f.DY)},
			Raw:      f,
		})
	case FrameWheel:
		call(h.Wheel, input.RawWheel{Delta: mgl64.Vec2{float64(f.DX), float64(f.DY)}, Raw: f})
	}
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
