package term

// Stroke is one decoded keystroke. Terminals never report releases, so a
// stroke is replayed as down and up of its modifiers and key.
type Stroke struct {
	Code  string
	Shift bool
	Ctrl  bool
	Alt   bool
	// Raw holds the bytes the stroke was decoded from.
	Raw []byte
}

const (
	ctrlC = 0x03
	ctrlD = 0x04
	esc   = 0x1b
	del   = 0x7f
)

var plain = map[byte]string{
	' ': "Space", '\t': "Tab", '\r': "Enter", '\n': "Enter",
	del: "Backspace", 0x08: "Backspace", esc: "Escape",
	'-': "Minus", '=': "Equal", '[': "BracketLeft", ']': "BracketRight",
	';': "Semicolon", '\'': "Quote", '`': "Backquote", '\\': "Backslash",
	',': "Comma", '.': "Period", '/': "Slash",
}

var shifted = map[byte]string{
	'_': "Minus", '+': "Equal", '{': "BracketLeft", '}': "BracketRight",
	':': "Semicolon", '"': "Quote", '~': "Backquote", '|': "Backslash",
	'<': "Comma", '>': "Period", '?': "Slash",
	'!': "Digit1", '@': "Digit2", '#': "Digit3", '$': "Digit4", '%': "Digit5",
	'^': "Digit6", '&': "Digit7", '*': "Digit8", '(': "Digit9", ')': "Digit0",
}

// csiFinal maps the final byte of "ESC [ <final>" sequences.
var csiFinal = map[byte]string{
	'A': "ArrowUp", 'B': "ArrowDown", 'C': "ArrowRight", 'D': "ArrowLeft",
	'H': "Home", 'F': "End",
}

// csiTilde maps the numeric parameter of "ESC [ <n> ~" sequences.
var csiTilde = map[string]string{
	"1": "Home", "2": "Insert", "3": "Delete", "4": "End", "5": "PageUp", "6": "PageDown",
	"15": "F5", "17": "F6", "18": "F7", "19": "F8", "20": "F9", "21": "F10", "23": "F11", "24": "F12",
}

// ss3 maps "ESC O <final>" sequences sent for F1 to F4.
var ss3 = map[byte]string{'P': "F1", 'Q': "F2", 'R': "F3", 'S': "F4"}

// DecodeByte decodes a single byte outside an escape sequence.
func DecodeByte(b byte) (Stroke, bool) {
	raw := []byte{b}
	switch {
	case b >= 'a' && b <= 'z':
		return Stroke{Code: "Key" + string(b-'a'+'A'), Raw: raw}, true
	case b >= 'A' && b <= 'Z':
		return Stroke{Code: "Key" + string(b), Shift: true, Raw: raw}, true
	case b >= '0' && b <= '9':
		return Stroke{Code: "Digit" + string(b), Raw: raw}, true
	}
	if code, ok := plain[b]; ok {
		return Stroke{Code: code, Raw: raw}, true
	}
	if code, ok := shifted[b]; ok {
		return Stroke{Code: code, Shift: true, Raw: raw}, true
	}
	if b >= 0x01 && b <= 0x1a {
		return Stroke{Code: "Key" + string(b-1+'A'), Ctrl: true, Raw: raw}, true
	}
	return Stroke{}, false
}

// Decode splits p into strokes. It returns the number of bytes consumed; an
// incomplete escape sequence at the end of p, including a lone ESC, is left
// for the next call.
func Decode(p []byte) (strokes []Stroke, n int) {
	return decode(p, false)
}

// DecodeFinal is Decode for input that will not be continued. An incomplete
// escape sequence decodes as the Escape key followed by its remaining bytes.
func DecodeFinal(p []byte) []Stroke {
	strokes, _ := decode(p, true)
	return strokes
}

func decode(p []byte, final bool) (strokes []Stroke, n int) {
	for n < len(p) {
		if p[n] != esc {
			if s, ok := DecodeByte(p[n]); ok {
				strokes = append(strokes, s)
			}
			n++
			continue
		}
		size := 0
		if n+1 < len(p) {
			var s Stroke
			var ok bool
			s, size, ok = decodeEscape(p[n:])
			if size > 0 && ok {
				strokes = append(strokes, s)
			}
		}
		if size == 0 {
			if !final {
				return strokes, n
			}
			s, _ := DecodeByte(esc)
			strokes = append(strokes, s)
			size = 1
		}
		n += size
	}
	return strokes, n
}

// decodeEscape decodes a sequence starting with ESC. A size of zero means the
// sequence is incomplete.
func decodeEscape(p []byte) (Stroke, int, bool) {
	switch p[1] {
	case '[':
		end := 2
		for end < len(p) && (p[end] < 0x40 || p[end] > 0x7e) {
			end++
		}
		if end >= len(p) {
			return Stroke{}, 0, false
		}
		raw := p[:end+1]
		params, final := string(p[2:end]), p[end]
		if final == '~' {
			code, ok := csiTilde[params]
			return Stroke{Code: code, Raw: raw}, len(raw), ok
		}
		code, ok := csiFinal[final]
		return Stroke{Code: code, Raw: raw}, len(raw), ok
	case 'O':
		if len(p) < 3 {
			return Stroke{}, 0, false
		}
		code, ok := ss3[p[2]]
		return Stroke{Code: code, Raw: p[:3]}, 3, ok
	default:
		// ESC followed by a key is how terminals send Alt+key.
		s, ok := DecodeByte(p[1])
		s.Alt = true
		s.Raw = p[:2]
		return s, 2, ok
	}
}
