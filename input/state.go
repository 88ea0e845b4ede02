package input

// State is the state of a key or button. Its numeric value is exposed to
// consumers that want an analog-style read.
type State uint8

const (
	StateUp   State = 0
	StateDown State = 1

	// StatePressed and StateClicked are one-shot classifications reported with
	// a release. They carry the state the interaction ended in.
	StatePressed = StateUp
	StateClicked = StateUp
)

// Value returns 0.0 for UP and 1.0 for DOWN.
func (s State) Value() float64 {
	return float64(s)
}

func (s State) String() string {
	if s == StateDown {
		return "DOWN"
	}
	return "UP"
}
