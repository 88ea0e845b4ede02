// Package mouse defines the fixed logical mouse button space.
package mouse

import "strconv"

// Button is a logical mouse button. Raw host indices map to it one to one.
type Button uint8

const (
	Left    Button = 0
	Middle  Button = 1
	Right   Button = 2
	Back    Button = 3
	Forward Button = 4

	// Auxiliary slots. Aux1 and Aux2 share Back and Forward.
	Aux1  Button = 3
	Aux2  Button = 4
	Aux3  Button = 5
	Aux4  Button = 6
	Aux5  Button = 7
	Aux6  Button = 8
	Aux7  Button = 9
	Aux8  Button = 10
	Aux9  Button = 11
	Aux10 Button = 12
	Aux11 Button = 13
	Aux12 Button = 14
	Aux13 Button = 15
	Aux14 Button = 16
	Aux15 Button = 17
	Aux16 Button = 18
	Aux17 Button = 19
	Aux18 Button = 20
	Aux19 Button = 21
	Aux20 Button = 22
	Aux21 Button = 23
	Aux22 Button = 24
	Aux23 Button = 25
	Aux24 Button = 26
	Aux25 Button = 27
	Aux26 Button = 28
	Aux27 Button = 29
	Aux28 Button = 30
	Aux29 Button = 31
)

// ButtonCount is the number of button slots tracked.
const ButtonCount = 32

var buttonNames = [...]string{
	Left:    "LEFT",
	Middle:  "MIDDLE",
	Right:   "RIGHT",
	Back:    "BACK",
	Forward: "FORWARD",
}

// FromIndex validates a raw 0-based host button index.
// Returns false for negative or out-of-range indices.
func FromIndex(i int) (Button, bool) {
	if i < 0 || i >= ButtonCount {
		return 0, false
	}
	return Button(i), true
}

// Valid reports whether b is inside the tracked button range.
func (b Button) Valid() bool {
	return int(b) < ButtonCount
}

func (b Button) String() string {
	switch {
	case int(b) < len(buttonNames):
		return buttonNames[b]
	case b.Valid():
		return "AUX_" + strconv.Itoa(int(b)-2)
	default:
		return "UNKNOWN"
	}
}

// All returns every button slot in index order.
func All() []Button {
	out := make([]Button, ButtonCount)
	for i := range out {
		out[i] = Button(i)
	}
	return out
}
