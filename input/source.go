package input

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// RawKey is a host key notification. Code is the host key code string,
// e.g. "KeyA" or "ShiftLeft".
type RawKey struct {
	Code string
	Raw  any
}

// RawButton is a host pointer button notification with a 0-based index.
type RawButton struct {
	Index int
	Raw   any
}

// RawMove is a host pointer move notification. Position is absolute,
// Delta is the hardware reported movement since the previous notification.
type RawMove struct {
	Position mgl64.Vec2
	Delta    mgl64.Vec2
	Raw      any
}

// RawWheel is a host wheel notification.
type RawWheel struct {
	Delta mgl64.Vec2
	Raw   any
}

// Handlers receives the six raw notification kinds. A Source must call them
// from a single goroutine.
type Handlers struct {
	KeyDown    func(RawKey)
	KeyUp      func(RawKey)
	ButtonDown func(RawButton)
	ButtonUp   func(RawButton)
	Move       func(RawMove)
	Wheel      func(RawWheel)
}

// Source is a host environment delivering raw input. Listen installs the
// handlers; closing the returned io.Closer removes them again.
type Source interface {
	Listen(h Handlers) (io.Closer, error)
}

// ContextMenuController is implemented by sources whose host shows a default
// context menu on secondary click.
type ContextMenuController interface {
	SetContextMenuEnabled(enabled bool) error
}
