// Package key translates raw terminal byte sequences into decoded
// KeyEvent values. Decoding is pure: it performs no I/O and holds no
// state across calls.
package key

// Named identifies a non-printable key.
type Named int

const (
	NamedNone Named = iota
	Escape
	Enter
	Tab
	Backspace
	Delete
	Insert
	Home
	End
	PageUp
	PageDown
	Up
	Down
	Left
	Right
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
)

// Event is the decoded form of one input key press.
type Event struct {
	Char  rune  // set when Named == NamedNone
	Named Named // set when this is a non-printable key
	Ctrl  bool
	Alt   bool
	Shift bool
}

// IsChar reports whether this event carries a printable character.
func (e Event) IsChar() bool { return e.Named == NamedNone }

// Decode classifies a raw byte sequence into a KeyEvent. It returns
// (Event{}, false) if the sequence cannot be classified (InvalidEscape);
// callers should drop the event in that case.
func Decode(b []byte) (Event, bool) {
	if len(b) == 0 {
		return Event{}, false
	}
	if b[0] == 0x1b {
		if len(b) == 1 {
			return Event{Named: Escape}, true
		}
		if b[1] == '[' || b[1] == 'O' {
			return decodeCSI(b[1:])
		}
		// ESC followed by a printable byte: alt-modified char.
		if ev, ok := decodeSingleByte(b[1]); ok {
			ev.Alt = true
			return ev, true
		}
		return Event{}, false
	}
	return decodeSingleByte(b[0])
}

func decodeSingleByte(b byte) (Event, bool) {
	switch {
	case b == 0x7f:
		return Event{Named: Backspace}, true
	case b == 0x0d || b == 0x0a:
		return Event{Named: Enter}, true
	case b == 0x09:
		return Event{Named: Tab}, true
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+letter; 0x01='A'-0x40 maps onto lowercase letters.
		return Event{Char: rune('a' + b - 1), Ctrl: true}, true
	case b >= 0x20 && b != 0x7f:
		c := rune(b)
		shift := c >= 'A' && c <= 'Z'
		return Event{Char: c, Shift: shift}, true
	}
	return Event{}, false
}

// decodeCSI decodes the remainder of a CSI/SS3 sequence (everything
// after "ESC [" or "ESC O").
func decodeCSI(rest []byte) (Event, bool) {
	if len(rest) < 2 {
		return Event{}, false
	}
	body := rest[1:]
	switch len(body) {
	case 1:
		if named, ok := csiFinalLetter[body[0]]; ok {
			return Event{Named: named}, true
		}
	default:
		// Forms like "1~", "3~", "11~" (tilde-terminated) or "1;5A" (modified).
		if body[len(body)-1] == '~' {
			num := string(body[:len(body)-1])
			if named, ok := tildeCodes[num]; ok {
				return Event{Named: named}, true
			}
		}
		final := body[len(body)-1]
		if named, ok := csiFinalLetter[final]; ok {
			return Event{Named: named}, true
		}
	}
	return Event{}, false
}

var csiFinalLetter = map[byte]Named{
	'A': Up,
	'B': Down,
	'C': Right,
	'D': Left,
	'H': Home,
	'F': End,
	'P': F1,
	'Q': F2,
	'R': F3,
	'S': F4,
}

var tildeCodes = map[string]Named{
	"1":  Home,
	"2":  Insert,
	"3":  Delete,
	"4":  End,
	"5":  PageUp,
	"6":  PageDown,
	"11": F1,
	"12": F2,
	"13": F3,
	"14": F4,
	"15": F5,
	"17": F6,
	"18": F7,
	"19": F8,
	"20": F9,
	"21": F10,
	"23": F11,
	"24": F12,
}

// Encode produces a canonical byte sequence for evt, for use in
// round-trip tests: Decode(Encode(evt)) == evt for every Event Decode
// returns, except F1–F12, for which Encode returns nil. Alt combined with
// a named key encodes to bytes that Decode rejects.
func Encode(evt Event) []byte {
	var prefix []byte
	if evt.Alt {
		prefix = []byte{0x1b}
	}
	if evt.IsChar() {
		if evt.Ctrl {
			c := byte(evt.Char)
			if c >= 'a' && c <= 'z' {
				return append(prefix, c-'a'+1)
			}
		}
		c := byte(evt.Char)
		if evt.Shift && c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		return append(prefix, c)
	}
	switch evt.Named {
	case Escape:
		return []byte{0x1b}
	case Enter:
		return append(prefix, 0x0d)
	case Tab:
		return append(prefix, 0x09)
	case Backspace:
		return append(prefix, 0x7f)
	case Up:
		return append(append(prefix, 0x1b, '['), 'A')
	case Down:
		return append(append(prefix, 0x1b, '['), 'B')
	case Right:
		return append(append(prefix, 0x1b, '['), 'C')
	case Left:
		return append(append(prefix, 0x1b, '['), 'D')
	case Home:
		return append(prefix, 0x1b, '[', 'H')
	case End:
		return append(prefix, 0x1b, '[', 'F')
	case Insert:
		return append(prefix, 0x1b, '[', '2', '~')
	case Delete:
		return append(prefix, 0x1b, '[', '3', '~')
	case PageUp:
		return append(prefix, 0x1b, '[', '5', '~')
	case PageDown:
		return append(prefix, 0x1b, '[', '6', '~')
	}
	return nil
}

// DecodeAll splits a raw chunk that may contain several key presses
// (e.g. pasted text, or multiple presses arriving within one read)
// into individual events. Unclassifiable sequences are skipped.
func DecodeAll(b []byte) []Event {
	var out []Event
	i := 0
	for i < len(b) {
		if b[i] == 0x1b {
			end := escapeEnd(b, i)
			if ev, ok := Decode(b[i:end]); ok {
				out = append(out, ev)
			}
			i = end
			continue
		}
		if ev, ok := Decode(b[i : i+1]); ok {
			out = append(out, ev)
		}
		i++
	}
	return out
}

// escapeEnd finds the exclusive end of the escape sequence starting at
// b[start] (which must be ESC): a bare ESC, an alt-modified byte, or a
// CSI/SS3 sequence running through its final byte.
func escapeEnd(b []byte, start int) int {
	if start+1 >= len(b) {
		return start + 1
	}
	next := b[start+1]
	if next != '[' && next != 'O' {
		return start + 2 // alt-modified single byte
	}
	i := start + 2
	for i < len(b) {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1
		}
		i++
	}
	return i
}
