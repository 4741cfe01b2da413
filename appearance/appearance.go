// Package appearance implements the four border appearances: each supplies the eight box-drawing characters needed to draw
// a bordered container (four corners, two edges, two T-junctions). An
// appearance's ID participates in the environment snapshot used to
// invalidate the memo cache on an appearance change.
package appearance

// Appearance is a complete set of border-drawing characters.
type Appearance struct {
	ID string

	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TeeLeft     rune // T-junction opening rightward, on the left edge
	TeeRight    rune // T-junction opening leftward, on the right edge
}

// Line is a single-line-weight border.
var Line = Appearance{
	ID:          "line",
	TopLeft:     '┌',
	TopRight:    '┐',
	BottomLeft:  '└',
	BottomRight: '┘',
	Horizontal:  '─',
	Vertical:    '│',
	TeeLeft:     '├',
	TeeRight:    '┤',
}

// Rounded uses rounded corner glyphs with single-line edges.
var Rounded = Appearance{
	ID:          "rounded",
	TopLeft:     '╭',
	TopRight:    '╮',
	BottomLeft:  '╰',
	BottomRight: '╯',
	Horizontal:  '─',
	Vertical:    '│',
	TeeLeft:     '├',
	TeeRight:    '┤',
}

// DoubleLine uses the double-line box-drawing glyph set.
var DoubleLine = Appearance{
	ID:          "doubleLine",
	TopLeft:     '╔',
	TopRight:    '╗',
	BottomLeft:  '╚',
	BottomRight: '╝',
	Horizontal:  '═',
	Vertical:    '║',
	TeeLeft:     '╠',
	TeeRight:    '╣',
}

// Heavy uses the heavy-weight box-drawing glyph set.
var Heavy = Appearance{
	ID:          "heavy",
	TopLeft:     '┏',
	TopRight:    '┓',
	BottomLeft:  '┗',
	BottomRight: '┛',
	Horizontal:  '━',
	Vertical:    '┃',
	TeeLeft:     '┣',
	TeeRight:    '┫',
}

// All lists every appearance in catalog (cycle) order, used by the
// 'a'/'A' default binding.
var All = []Appearance{Line, Rounded, DoubleLine, Heavy}

// ByID looks up an appearance by its identifier, falling back to Line.
func ByID(id string) Appearance {
	for _, a := range All {
		if a.ID == id {
			return a
		}
	}
	return Line
}

// Next returns the appearance that follows cur in catalog order,
// wrapping around.
func Next(cur Appearance) Appearance {
	for i, a := range All {
		if a.ID == cur.ID {
			return All[(i+1)%len(All)]
		}
	}
	return Line
}
