//go:build linux

package evdev

import (
	"github.com/holoplot/go-evdev"
)

// keyCodes maps Linux KEY_* codes to host code strings. Codes outside the
// tracked key space still get their code string so the tracker can count
// them as dropped.
var keyCodes = map[evdev.EvCode]string{
	evdev.KEY_ESC: "Escape",
	evdev.KEY_1:   "Digit1", evdev.KEY_2: "Digit2", evdev.KEY_3: "Digit3", evdev.KEY_4: "Digit4",
	evdev.KEY_5: "Digit5", evdev.KEY_6: "Digit6", evdev.KEY_7: "Digit7", evdev.KEY_8: "Digit8",
	evdev.KEY_9: "Digit9", evdev.KEY_0: "Digit0",
	evdev.KEY_MINUS:     "Minus",
	evdev.KEY_EQUAL:     "Equal",
	evdev.KEY_BACKSPACE: "Backspace",
	evdev.KEY_TAB:       "Tab",

	evdev.KEY_Q: "KeyQ", evdev.KEY_W: "KeyW", evdev.KEY_E: "KeyE", evdev.KEY_R: "KeyR",
	evdev.KEY_T: "KeyT", evdev.KEY_Y: "KeyY", evdev.KEY_U: "KeyU", evdev.KEY_I: "KeyI",
	evdev.KEY_O: "KeyO", evdev.KEY_P: "KeyP",
	evdev.KEY_A: "KeyA", evdev.KEY_S: "KeyS", evdev.KEY_D: "KeyD", evdev.KEY_F: "KeyF",
	evdev.KEY_G: "KeyG", evdev.KEY_H: "KeyH", evdev.KEY_J: "KeyJ", evdev.KEY_K: "KeyK",
	evdev.KEY_L: "KeyL",
	evdev.KEY_Z: "KeyZ", evdev.KEY_X: "KeyX", evdev.KEY_C: "KeyC", evdev.KEY_V: "KeyV",
	evdev.KEY_B: "KeyB", evdev.KEY_N: "KeyN", evdev.KEY_M: "KeyM",

	evdev.KEY_LEFTBRACE:  "BracketLeft",
	evdev.KEY_RIGHTBRACE: "BracketRight",
	evdev.KEY_ENTER:      "Enter",
	evdev.KEY_SEMICOLON:  "Semicolon",
	evdev.KEY_APOSTROPHE: "Quote",
	evdev.KEY_GRAVE:      "Backquote",
	evdev.KEY_BACKSLASH:  "Backslash",
	evdev.KEY_COMMA:      "Comma",
	evdev.KEY_DOT:        "Period",
	evdev.KEY_SLASH:      "Slash",
	evdev.KEY_SPACE:      "Space",
	evdev.KEY_102ND:      "IntlBackslash",
	evdev.KEY_RO:         "IntlRo",

	evdev.KEY_LEFTSHIFT:  "ShiftLeft",
	evdev.KEY_RIGHTSHIFT: "ShiftRight",
	evdev.KEY_LEFTCTRL:   "ControlLeft",
	evdev.KEY_RIGHTCTRL:  "ControlRight",
	evdev.KEY_LEFTALT:    "AltLeft",
	evdev.KEY_RIGHTALT:   "AltRight",
	evdev.KEY_LEFTMETA:   "MetaLeft",
	evdev.KEY_RIGHTMETA:  "MetaRight",
	evdev.KEY_COMPOSE:    "ContextMenu",
	evdev.KEY_CAPSLOCK:   "CapsLock",
	evdev.KEY_NUMLOCK:    "NumLock",
	evdev.KEY_SCROLLLOCK: "ScrollLock",

	evdev.KEY_F1: "F1", evdev.KEY_F2: "F2", evdev.KEY_F3: "F3", evdev.KEY_F4: "F4",
	evdev.KEY_F5: "F5", evdev.KEY_F6: "F6", evdev.KEY_F7: "F7", evdev.KEY_F8: "F8",
	evdev.KEY_F9: "F9", evdev.KEY_F10: "F10", evdev.KEY_F11: "F11", evdev.KEY_F12: "F12",

	evdev.KEY_KP0: "Numpad0", evdev.KEY_KP1: "Numpad1", evdev.KEY_KP2: "Numpad2",
	evdev.KEY_KP3: "Numpad3", evdev.KEY_KP4: "Numpad4", evdev.KEY_KP5: "Numpad5",
	evdev.KEY_KP6: "Numpad6", evdev.KEY_KP7: "Numpad7", evdev.KEY_KP8: "Numpad8",
	evdev.KEY_KP9:        "Numpad9",
	evdev.KEY_KPASTERISK: "NumpadMultiply",
	evdev.KEY_KPPLUS:     "NumpadAdd",
	evdev.KEY_KPMINUS:    "NumpadSubtract",
	evdev.KEY_KPDOT:      "NumpadDecimal",
	evdev.KEY_KPSLASH:    "NumpadDivide",
	evdev.KEY_KPENTER:    "NumpadEnter",

	evdev.KEY_SYSRQ:    "PrintScreen",
	evdev.KEY_PAUSE:    "Pause",
	evdev.KEY_INSERT:   "Insert",
	evdev.KEY_DELETE:   "Delete",
	evdev.KEY_HOME:     "Home",
	evdev.KEY_END:      "End",
	evdev.KEY_PAGEUP:   "PageUp",
	evdev.KEY_PAGEDOWN: "PageDown",
	evdev.KEY_UP:       "ArrowUp",
	evdev.KEY_DOWN:     "ArrowDown",
	evdev.KEY_LEFT:     "ArrowLeft",
	evdev.KEY_RIGHT:    "ArrowRight",
}

// buttonIndices maps BTN_* codes to 0-based pointer button indices.
var buttonIndices = map[evdev.EvCode]int{
	evdev.BTN_LEFT:    0,
	evdev.BTN_MIDDLE:  1,
	evdev.BTN_RIGHT:   2,
	evdev.BTN_SIDE:    3,
	evdev.BTN_BACK:    3,
	evdev.BTN_EXTRA:   4,
	evdev.BTN_FORWARD: 4,
	evdev.BTN_TASK:    5,
}

// Unidentified is the code string reported for keys with no mapping.
const Unidentified = "Unidentified"

// KeyCode returns the host code string for a KEY_* code.
func KeyCode(c evdev.EvCode) string {
	if s, ok := keyCodes[c]; ok {
		return s
	}
	return Unidentified
}

// ButtonIndex returns the pointer button index for a BTN_* code.
func ButtonIndex(c evdev.EvCode) (int, bool) {
	i, ok := buttonIndices[c]
	return i, ok
}
