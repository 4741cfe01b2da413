// Package buffer implements the frame buffer: an ordered list of
// terminal lines that may contain ANSI escapes, with compositional
// operators for stacking, placing, overlaying, and character-level
// compositing. Width is always measured in printable columns, never
// bytes.
package buffer

import (
	"strings"

	"github.com/tuikit-go/tuikit/ansi"
)

// Buffer is a rendered frame: a list of lines plus a cached printable
// width, recomputed on every mutation so it is never less than any
// line's printable length.
type Buffer struct {
	lines []string
	width int
}

// New creates an empty Buffer.
func New() *Buffer { return &Buffer{} }

// FromLines creates a Buffer from existing lines, computing its width.
func FromLines(lines []string) *Buffer {
	b := &Buffer{lines: append([]string(nil), lines...)}
	b.recompute()
	return b
}

// Lines returns the buffer's lines. Callers must not mutate the
// returned slice.
func (b *Buffer) Lines() []string { return b.lines }

// Height returns the number of lines.
func (b *Buffer) Height() int { return len(b.lines) }

// Width returns the cached printable width.
func (b *Buffer) Width() int { return b.width }

// PushLine appends a line and updates the cached width.
func (b *Buffer) PushLine(s string) {
	b.lines = append(b.lines, s)
	if w := ansi.PrintableLength(s); w > b.width {
		b.width = w
	}
}

func (b *Buffer) recompute() {
	b.width = 0
	for _, l := range b.lines {
		if w := ansi.PrintableLength(l); w > b.width {
			b.width = w
		}
	}
}

// AppendVertically stacks other below b, inserting `spacing` empty
// lines between them. The result's width is the max of both.
func AppendVertically(b, other *Buffer, spacing int) *Buffer {
	if spacing < 0 {
		spacing = 0
	}
	out := &Buffer{lines: make([]string, 0, len(b.lines)+spacing+len(other.lines))}
	out.lines = append(out.lines, b.lines...)
	for i := 0; i < spacing; i++ {
		out.lines = append(out.lines, "")
	}
	out.lines = append(out.lines, other.lines...)
	out.width = maxInt(b.width, other.width)
	return out
}

// AppendHorizontally places other to the right of b, padding the
// shorter buffer vertically with empty lines. Each of b's lines is
// padded with spaces to b's own cached width, then `spacing` spaces,
// then the corresponding line of other. The result's width is
// b.width + spacing + other.width — deterministically derived from
// each side's own cached width, not the tallest line's printable
// length.
func AppendHorizontally(b, other *Buffer, spacing int) *Buffer {
	if spacing < 0 {
		spacing = 0
	}
	h := maxInt(b.Height(), other.Height())
	pad := strings.Repeat(" ", spacing)
	out := &Buffer{lines: make([]string, h)}
	for i := 0; i < h; i++ {
		left := padTo(lineAt(b, i), b.width)
		right := lineAt(other, i)
		out.lines[i] = left + pad + right
	}
	out.width = b.width + spacing + other.width
	return out
}

func lineAt(b *Buffer, i int) string {
	if i < len(b.lines) {
		return b.lines[i]
	}
	return ""
}

func padTo(s string, width int) string {
	w := ansi.PrintableLength(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Overlay replaces each line of b with the corresponding line of top
// wherever top's line is non-empty; otherwise b's line is kept.
func Overlay(b, top *Buffer) *Buffer {
	h := maxInt(b.Height(), top.Height())
	out := &Buffer{lines: make([]string, h)}
	for i := 0; i < h; i++ {
		t := lineAt(top, i)
		if t != "" {
			out.lines[i] = t
		} else {
			out.lines[i] = lineAt(b, i)
		}
	}
	out.recompute()
	return out
}

// Composite overlays top onto b at the given column/row offset,
// character by character, honoring escape sequences by measuring
// column offsets with printable length rather than byte length.
func Composite(b, top *Buffer, x, y int) *Buffer {
	out := &Buffer{lines: append([]string(nil), b.lines...)}
	for i, tl := range top.lines {
		row := y + i
		for row >= len(out.lines) {
			out.lines = append(out.lines, "")
		}
		out.lines[row] = compositeLine(out.lines[row], tl, x)
	}
	out.recompute()
	return out
}

// compositeLine stamps top onto base starting at printable column x.
func compositeLine(base, top string, x int) string {
	if x < 0 {
		x = 0
	}
	baseRunes := splitPrintable(base)
	topRunes := splitPrintable(top)

	for len(baseRunes) < x {
		baseRunes = append(baseRunes, " ")
	}
	result := append([]string(nil), baseRunes[:x]...)
	result = append(result, topRunes...)
	if x+len(topRunes) < len(baseRunes) {
		result = append(result, baseRunes[x+len(topRunes):]...)
	}
	return strings.Join(result, "")
}

// splitPrintable splits s into printable-column units, keeping any SGR
// escape immediately preceding a visible rune attached to that rune so
// column-indexed slicing does not separate an escape from its target
// character. A simplification adequate for this module's own output
// (escapes always immediately precede the text they style): runs of
// escape bytes are treated as zero-width and folded onto the following
// rune.
func splitPrintable(s string) []string {
	var out []string
	var pending strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && !isFinalByte(s[j]) {
				j++
			}
			if j < len(s) {
				j++
			}
			pending.WriteString(s[i:j])
			i = j
			continue
		}
		r, size := decodeRune(s[i:])
		out = append(out, pending.String()+r)
		pending.Reset()
		i += size
	}
	if pending.Len() > 0 && len(out) > 0 {
		out[len(out)-1] += pending.String()
	}
	return out
}

func isFinalByte(c byte) bool { return c >= 0x40 && c <= 0x7e }

func decodeRune(s string) (string, int) {
	for _, r := range s {
		return string(r), len(string(r))
	}
	return "", 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
