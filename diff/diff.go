// Package diff implements the frame diff writer: BuildOutput pads
// every line to the frame's full width and re-asserts a persistent
// background color, and WriteDiff emits only the lines that changed
// since the previous frame, all inside one buffered OS write.
package diff

import (
	"strings"

	"github.com/tuikit-go/tuikit/ansi"
	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/term"
)

// Writer tracks the previously written frame so it can skip unchanged
// lines on the next one.
type Writer struct {
	term *term.Terminal
	prev []string
	bg   ansi.Color
	hasBG bool
}

// New creates a Writer bound to t. The first frame it writes is always
// a full repaint, since prev starts empty.
func New(t *term.Terminal) *Writer {
	return &Writer{term: t}
}

// SetPersistentBackground sets the color re-asserted at the start of
// every output line by BuildOutput, so nested style resets never leave
// the terminal's default background showing through.
func (w *Writer) SetPersistentBackground(bg ansi.Color) {
	w.bg = bg
	w.hasBG = true
}

// ClearPersistentBackground removes the persistent background.
func (w *Writer) ClearPersistentBackground() {
	w.hasBG = false
}

// BuildOutput pads buf to exactly width columns per line (height rows
// total, padding with blank lines), re-asserting the persistent
// background on every line if one is set.
func (w *Writer) BuildOutput(buf *buffer.Buffer, width, height int) []string {
	out := make([]string, height)
	lines := buf.Lines()
	for i := 0; i < height; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		line = padLine(line, width)
		if w.hasBG {
			line = ansi.PersistentBG(line, w.bg)
		}
		out[i] = line
	}
	return out
}

func padLine(s string, width int) string {
	w := ansi.PrintableLength(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// WriteDiff writes only the lines of out that differ from the last
// frame written, each preceded by a cursor move to its row, all inside
// a single buffered frame (one underlying OS write). Unchanged lines
// are skipped entirely — no cursor move, no bytes.
func (w *Writer) WriteDiff(out []string) error {
	w.term.BeginFrame()
	defer w.term.EndFrame()

	for row, line := range out {
		if row < len(w.prev) && w.prev[row] == line {
			continue
		}
		if _, err := w.term.Write([]byte(ansi.Move(row+1, 1))); err != nil {
			return err
		}
		if _, err := w.term.Write([]byte(clearToEOL(line))); err != nil {
			return err
		}
	}
	w.prev = append([]string(nil), out...)
	return nil
}

// clearToEOL appends an erase-to-end-of-line so a shorter new line
// fully overwrites a longer previous one on terminals where BuildOutput
// didn't already pad to the full width.
func clearToEOL(line string) string {
	return line + "\x1b[K"
}

// Invalidate forces the next WriteDiff to repaint every line, e.g.
// after a terminal resize or alternate-screen re-entry.
func (w *Writer) Invalidate() {
	w.prev = nil
}
