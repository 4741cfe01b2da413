// Package ansi emits and measures ECMA-48 control sequences: cursor
// movement, alternate-screen and cursor visibility toggles, and SGR
// (Select Graphic Rendition) color/style codes. It also strips SGR
// sequences to compute the printable column width of a string without
// allocating an intermediate stripped copy.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	esc = "\x1b["

	// ResetSeq is the SGR sequence that clears all attributes.
	ResetSeq = esc + "0m"
)

// ColorSpace distinguishes how a Color's value should be interpreted.
type ColorSpace int

const (
	// Named4Bit selects one of the 16 standard ANSI colors (Value 0-15).
	Named4Bit ColorSpace = iota
	// Indexed8Bit selects a color from the 256-color palette (Value 0-255).
	Indexed8Bit
	// RGB24Bit selects a 24-bit true color (R, G, B fields).
	RGB24Bit
)

// Color is a resolved color value ready for SGR emission. Semantic token
// indirection (palette lookup) happens before a Color reaches this package;
// see the palette package.
type Color struct {
	Space      ColorSpace
	Value      int // used by Named4Bit and Indexed8Bit
	R, G, B    uint8
}

// Named returns a 4-bit named color (0-15).
func Named(v int) Color { return Color{Space: Named4Bit, Value: v} }

// Indexed returns an 8-bit (256-color) indexed color.
func Indexed(v int) Color { return Color{Space: Indexed8Bit, Value: v} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Space: RGB24Bit, R: r, G: g, B: b} }

// Move emits a 1-based cursor position escape sequence.
func Move(row, col int) string {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	return esc + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

const (
	altScreenEnter = esc + "?1049h"
	altScreenExit  = esc + "?1049l"
	cursorHide     = esc + "?25l"
	cursorShow     = esc + "?25h"
)

// EnterAltScreen returns the escape sequence that switches to the
// alternate screen buffer.
func EnterAltScreen() string { return altScreenEnter }

// ExitAltScreen returns the escape sequence that restores the primary
// screen buffer.
func ExitAltScreen() string { return altScreenExit }

// HideCursor returns the escape sequence that hides the cursor.
func HideCursor() string { return cursorHide }

// ShowCursor returns the escape sequence that shows the cursor.
func ShowCursor() string { return cursorShow }

// Style carries the SGR attributes applied by Colorize.
type Style struct {
	FG        *Color
	BG        *Color
	Bold      bool
	Italic    bool
	Underline bool
	Dim       bool
}

// fgCode returns the SGR parameter(s) for a foreground color.
func fgCode(c Color) string {
	switch c.Space {
	case Named4Bit:
		v := c.Value
		if v < 0 {
			v = 0
		}
		if v > 15 {
			v = 15
		}
		if v < 8 {
			return strconv.Itoa(30 + v)
		}
		return strconv.Itoa(82 + v) // 90-97 for bright
	case Indexed8Bit:
		return "38;5;" + strconv.Itoa(c.Value)
	case RGB24Bit:
		return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
	}
	return ""
}

// bgCode returns the SGR parameter(s) for a background color.
func bgCode(c Color) string {
	switch c.Space {
	case Named4Bit:
		v := c.Value
		if v < 0 {
			v = 0
		}
		if v > 15 {
			v = 15
		}
		if v < 8 {
			return strconv.Itoa(40 + v)
		}
		return strconv.Itoa(92 + v)
	case Indexed8Bit:
		return "48;5;" + strconv.Itoa(c.Value)
	case RGB24Bit:
		return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
	}
	return ""
}

// Colorize wraps s with the SGR codes implied by style, terminated by a
// reset. Overlapping calls nest correctly because each call is
// self-contained: it always opens with its own codes and always closes
// with a full reset.
func Colorize(s string, style Style) string {
	if s == "" {
		return ""
	}
	var codes []string
	if style.Bold {
		codes = append(codes, "1")
	}
	if style.Dim {
		codes = append(codes, "2")
	}
	if style.Italic {
		codes = append(codes, "3")
	}
	if style.Underline {
		codes = append(codes, "4")
	}
	if style.FG != nil {
		codes = append(codes, fgCode(*style.FG))
	}
	if style.BG != nil {
		codes = append(codes, bgCode(*style.BG))
	}
	if len(codes) == 0 {
		return s
	}
	return esc + strings.Join(codes, ";") + "m" + s + ResetSeq
}

// PersistentBG replaces every reset token in s with reset+set-bg, so that
// an inner reset (e.g. from a nested Colorize call) does not strip the
// background color bg re-asserts. Calling PersistentBG again with the
// same bg is a no-op (idempotent).
func PersistentBG(s string, bg Color) string {
	if s == "" {
		return s
	}
	setBG := esc + bgCode(bg) + "m"
	replacement := ResetSeq + setBG
	if !strings.Contains(s, ResetSeq) {
		return setBG + s + ResetSeq
	}
	// Idempotence: if every reset is already followed immediately by this
	// exact set-bg sequence, there is nothing to do.
	if isAlreadyPersistent(s, setBG) {
		return s
	}
	return setBG + strings.ReplaceAll(s, ResetSeq, replacement)
}

func isAlreadyPersistent(s, setBG string) bool {
	if !strings.HasPrefix(s, setBG) {
		return false
	}
	idx := 0
	for {
		i := strings.Index(s[idx:], ResetSeq)
		if i < 0 {
			return true
		}
		pos := idx + i + len(ResetSeq)
		if pos >= len(s) {
			// Trailing reset with nothing after it is fine; it is the
			// final terminator, not a mid-string reset needing protection.
			return true
		}
		if !strings.HasPrefix(s[pos:], setBG) {
			return false
		}
		idx = pos + len(setBG)
	}
}

// Strip removes all SGR and cursor-control escape sequences from s.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return xansi.Strip(s)
}

func isFinalByte(c byte) bool {
	return c >= 0x40 && c <= 0x7e
}

// PrintableLength returns the number of display columns s occupies once
// SGR/cursor escapes are stripped. It walks the string once rather than
// building a stripped copy.
func PrintableLength(s string) int {
	if s == "" {
		return 0
	}
	width := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if c == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && !isFinalByte(s[j]) {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
			continue
		}
		// Decode one rune's worth of bytes for width accounting.
		r, size := decodeRuneWidth(s[i:])
		width += r
		i += size
	}
	return width
}

// decodeRuneWidth measures the display width of the leading rune in s and
// returns (width, byte-length-consumed).
func decodeRuneWidth(s string) (int, int) {
	if s == "" {
		return 0, 1
	}
	r, size := utf8.DecodeRuneInString(s)
	return runewidth.RuneWidth(r), size
}
