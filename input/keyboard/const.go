// Package keyboard defines the fixed logical key space and the resolver from
// host key codes to logical keys.
package keyboard

// Key is a logical key identifier. Its value doubles as a dense array index,
// so the order below is part of the contract.
type Key uint8

const (
	Backspace Key = iota
	Tab
	Enter
	ShiftLeft
	ShiftRight
	ControlLeft
	ControlRight
	AltLeft
	AltRight
	Pause
	CapsLock
	Escape
	Space
	PageUp
	PageDown
	End
	Home
	ArrowLeft
	ArrowUp
	ArrowRight
	ArrowDown
	PrintScreen
	Insert
	Delete

	// Top row digits
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	MetaLeft  // Windows/Command key
	MetaRight // Windows/Command key
	ContextMenu

	// Numpad
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadMultiply
	NumpadAdd
	NumpadSubtract
	NumpadDecimal
	NumpadDivide

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	NumLock
	ScrollLock

	// Punctuation
	Semicolon    // ; and :
	Equal        // = and +
	Comma        // , and <
	Minus        // - and _
	Period       // . and >
	Slash        // / and ?
	Backquote    // ` and ~
	BracketLeft  // [ and {
	Backslash    // \ and |
	BracketRight // ] and }
	Quote        // ' and "

	// KeyCount is the number of logical keys. It is not a key.
	KeyCount int = iota
)

// Valid reports whether k is inside the logical key space.
func (k Key) Valid() bool {
	return int(k) < KeyCount
}

// String returns the host code the key is resolved from, e.g. "KeyA".
func (k Key) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return keyCodes[k]
}

// All returns every logical key in ordinal order.
func All() []Key {
	keys := make([]Key, KeyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}
