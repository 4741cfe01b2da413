// Package palette implements the six named color palettes: each maps thirteen semantic tokens to a resolved ansi.Color. A
// palette's ID participates in the environment snapshot used to
// invalidate the memo cache on a theme change.
package palette

import "github.com/tuikit-go/tuikit/ansi"

// Token names one of the thirteen semantic color roles a palette must
// supply.
type Token int

const (
	Background Token = iota
	StatusBarBackground
	AppHeaderBackground
	OverlayBackground
	Foreground
	ForegroundSecondary
	ForegroundTertiary
	Accent
	Success
	Warning
	Error
	Info
	Border

	tokenCount
)

// Palette is a named, complete mapping from Token to ansi.Color.
type Palette struct {
	ID     string
	colors [tokenCount]ansi.Color
}

// Color resolves tok against p.
func (p Palette) Color(tok Token) ansi.Color { return p.colors[tok] }

func build(id string, colors map[Token]ansi.Color) Palette {
	p := Palette{ID: id}
	for tok, c := range colors {
		p.colors[tok] = c
	}
	return p
}

// Green is the default palette.
var Green = build("green", map[Token]ansi.Color{
	Background:          ansi.RGB(0x0a, 0x14, 0x0a),
	StatusBarBackground: ansi.RGB(0x10, 0x24, 0x10),
	AppHeaderBackground: ansi.RGB(0x10, 0x24, 0x10),
	OverlayBackground:   ansi.RGB(0x08, 0x18, 0x08),
	Foreground:          ansi.RGB(0xd0, 0xf0, 0xd0),
	ForegroundSecondary: ansi.RGB(0x9a, 0xc8, 0x9a),
	ForegroundTertiary:  ansi.RGB(0x6a, 0x90, 0x6a),
	Accent:              ansi.RGB(0x3d, 0xd6, 0x6a),
	Success:             ansi.RGB(0x3d, 0xd6, 0x6a),
	Warning:             ansi.RGB(0xd6, 0xb8, 0x3d),
	Error:               ansi.RGB(0xd6, 0x4a, 0x4a),
	Info:                ansi.RGB(0x4a, 0xa8, 0xd6),
	Border:              ansi.RGB(0x2a, 0x5a, 0x2a),
})

// Amber derives its hues from a warm amber primary.
var Amber = build("amber", map[Token]ansi.Color{
	Background:          ansi.RGB(0x1a, 0x12, 0x04),
	StatusBarBackground: ansi.RGB(0x28, 0x1c, 0x08),
	AppHeaderBackground: ansi.RGB(0x28, 0x1c, 0x08),
	OverlayBackground:   ansi.RGB(0x12, 0x0c, 0x04),
	Foreground:          ansi.RGB(0xf0, 0xe0, 0xc0),
	ForegroundSecondary: ansi.RGB(0xc8, 0xaa, 0x7a),
	ForegroundTertiary:  ansi.RGB(0x90, 0x78, 0x50),
	Accent:              ansi.RGB(0xd6, 0x9a, 0x3d),
	Success:             ansi.RGB(0x8a, 0xc4, 0x3d),
	Warning:             ansi.RGB(0xd6, 0xb8, 0x3d),
	Error:               ansi.RGB(0xd6, 0x4a, 0x4a),
	Info:                ansi.RGB(0x4a, 0xa8, 0xd6),
	Border:              ansi.RGB(0x5a, 0x42, 0x2a),
})

// Red derives its hues from a red primary.
var Red = build("red", map[Token]ansi.Color{
	Background:          ansi.RGB(0x1a, 0x06, 0x06),
	StatusBarBackground: ansi.RGB(0x28, 0x0a, 0x0a),
	AppHeaderBackground: ansi.RGB(0x28, 0x0a, 0x0a),
	OverlayBackground:   ansi.RGB(0x12, 0x04, 0x04),
	Foreground:          ansi.RGB(0xf0, 0xd0, 0xd0),
	ForegroundSecondary: ansi.RGB(0xc8, 0x9a, 0x9a),
	ForegroundTertiary:  ansi.RGB(0x90, 0x60, 0x60),
	Accent:              ansi.RGB(0xd6, 0x3d, 0x3d),
	Success:             ansi.RGB(0x3d, 0xd6, 0x6a),
	Warning:             ansi.RGB(0xd6, 0xb8, 0x3d),
	Error:               ansi.RGB(0xf0, 0x4a, 0x4a),
	Info:                ansi.RGB(0x4a, 0xa8, 0xd6),
	Border:              ansi.RGB(0x5a, 0x2a, 0x2a),
})

// Violet derives its hues from a violet primary.
var Violet = build("violet", map[Token]ansi.Color{
	Background:          ansi.RGB(0x12, 0x06, 0x1a),
	StatusBarBackground: ansi.RGB(0x1c, 0x0a, 0x28),
	AppHeaderBackground: ansi.RGB(0x1c, 0x0a, 0x28),
	OverlayBackground:   ansi.RGB(0x0c, 0x04, 0x12),
	Foreground:          ansi.RGB(0xe4, 0xd0, 0xf0),
	ForegroundSecondary: ansi.RGB(0xb4, 0x9a, 0xc8),
	ForegroundTertiary:  ansi.RGB(0x80, 0x68, 0x90),
	Accent:              ansi.RGB(0x9a, 0x3d, 0xd6),
	Success:             ansi.RGB(0x3d, 0xd6, 0x6a),
	Warning:             ansi.RGB(0xd6, 0xb8, 0x3d),
	Error:               ansi.RGB(0xd6, 0x4a, 0x4a),
	Info:                ansi.RGB(0x4a, 0xa8, 0xd6),
	Border:              ansi.RGB(0x42, 0x2a, 0x5a),
})

// Blue derives its hues from a blue primary.
var Blue = build("blue", map[Token]ansi.Color{
	Background:          ansi.RGB(0x04, 0x0c, 0x1a),
	StatusBarBackground: ansi.RGB(0x08, 0x14, 0x28),
	AppHeaderBackground: ansi.RGB(0x08, 0x14, 0x28),
	OverlayBackground:   ansi.RGB(0x04, 0x08, 0x12),
	Foreground:          ansi.RGB(0xd0, 0xe4, 0xf0),
	ForegroundSecondary: ansi.RGB(0x9a, 0xb4, 0xc8),
	ForegroundTertiary:  ansi.RGB(0x68, 0x80, 0x90),
	Accent:              ansi.RGB(0x3d, 0x9a, 0xd6),
	Success:             ansi.RGB(0x3d, 0xd6, 0x6a),
	Warning:             ansi.RGB(0xd6, 0xb8, 0x3d),
	Error:               ansi.RGB(0xd6, 0x4a, 0x4a),
	Info:                ansi.RGB(0x4a, 0xc8, 0xd6),
	Border:              ansi.RGB(0x2a, 0x42, 0x5a),
})

// White is the only palette without a derived-hue source: a neutral
// light theme used as the non-colored baseline.
var White = build("white", map[Token]ansi.Color{
	Background:          ansi.RGB(0xf5, 0xf5, 0xf5),
	StatusBarBackground: ansi.RGB(0xe0, 0xe0, 0xe0),
	AppHeaderBackground: ansi.RGB(0xe0, 0xe0, 0xe0),
	OverlayBackground:   ansi.RGB(0xea, 0xea, 0xea),
	Foreground:          ansi.RGB(0x18, 0x18, 0x18),
	ForegroundSecondary: ansi.RGB(0x48, 0x48, 0x48),
	ForegroundTertiary:  ansi.RGB(0x78, 0x78, 0x78),
	Accent:              ansi.RGB(0x3d, 0x6a, 0xd6),
	Success:             ansi.RGB(0x2a, 0x9a, 0x4a),
	Warning:             ansi.RGB(0xb8, 0x8a, 0x0a),
	Error:               ansi.RGB(0xc8, 0x2a, 0x2a),
	Info:                ansi.RGB(0x2a, 0x78, 0xb8),
	Border:              ansi.RGB(0xb0, 0xb0, 0xb0),
})

// All lists every palette in catalog (cycle) order, used by the 't'/'T'
// default binding.
var All = []Palette{Green, Amber, Red, Violet, Blue, White}

// ByID looks up a palette by its identifier, falling back to Green.
func ByID(id string) Palette {
	for _, p := range All {
		if p.ID == id {
			return p
		}
	}
	return Green
}

// Next returns the palette that follows cur in catalog order, wrapping
// around.
func Next(cur Palette) Palette {
	for i, p := range All {
		if p.ID == cur.ID {
			return All[(i+1)%len(All)]
		}
	}
	return Green
}
