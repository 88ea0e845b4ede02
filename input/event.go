package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/input/mouse"
)

// Name is the external name of a published event.
type Name string

const (
	KeyDown       Name = "key_down"
	KeyUp         Name = "key_up"
	KeyPressed    Name = "key_pressed"
	ButtonDown    Name = "button_down"
	ButtonUp      Name = "button_up"
	ButtonClicked Name = "button_clicked"
	MouseMove     Name = "mouse_move"
	MouseWheel    Name = "mouse_wheel"
)

// Names lists every event name in a stable order.
var Names = []Name{KeyDown, KeyUp, KeyPressed, ButtonDown, ButtonUp, ButtonClicked, MouseMove, MouseWheel}

// Event is one of KeyEvent, ButtonEvent, MoveEvent or WheelEvent.
// The set is closed; type switches over it need no default case.
type Event interface {
	Name() Name
	event()
}

// KeyEvent is published as key_down, key_up or key_pressed.
type KeyEvent struct {
	Type  Name
	State State
	Key   keyboard.Key
	// Raw is the host payload, forwarded unmodified.
	Raw any
}

// ButtonEvent is published as button_down, button_up or button_clicked.
type ButtonEvent struct {
	Type   Name
	State  State
	Button mouse.Button
	Raw    any
}

// MoveEvent is published as mouse_move.
type MoveEvent struct {
	Position mgl64.Vec2
	// Delta is the movement reported by the host, not a diff of positions.
	Delta mgl64.Vec2
	Raw   any
}

// WheelEvent is published as mouse_wheel.
type WheelEvent struct {
	Delta mgl64.Vec2
	Raw   any
}

func (e KeyEvent) Name() Name    { return e.Type }
func (e ButtonEvent) Name() Name { return e.Type }
func (MoveEvent) Name() Name     { return MouseMove }
func (WheelEvent) Name() Name    { return MouseWheel }

func (KeyEvent) event()    {}
func (ButtonEvent) event() {}
func (MoveEvent) event()   {}
func (WheelEvent) event()  {}
