// Package widget provides the minimal set of views needed to exercise
// render, layout, state, and focus end-to-end: Text, Spacer, VStack,
// HStack, Button, Gauge, Sparkline, TextField, Section, Bordered, and If.
// This is deliberately not a full widget catalog; these exist so the
// kernel packages have something concrete to compose and so
// cmd/tuikit-counter has views to build with.
package widget

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/tuikit-go/tuikit/ansi"
	"github.com/tuikit-go/tuikit/appearance"
	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/env"
	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/identity"
	"github.com/tuikit-go/tuikit/key"
	"github.com/tuikit-go/tuikit/layout"
	"github.com/tuikit-go/tuikit/palette"
	"github.com/tuikit-go/tuikit/render"
	"github.com/tuikit-go/tuikit/state"
)

// Text renders a single line of (optionally styled) text.
type Text struct {
	Content string
	Style   ansi.Style
}

func (Text) Tag() string { return "Text" }

// Render implements render.Renderable.
func (t Text) Render(ctx render.Context) *buffer.Buffer {
	return buffer.FromLines([]string{ansi.Colorize(t.Content, t.Style)})
}

// ContentHash implements memo.Hashable: two Text values with the same
// content and style hash identically, regardless of instance identity.
func (t Text) ContentHash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(t.Content))
	if t.Style.FG != nil {
		h.Write([]byte{byte(t.Style.FG.Space), byte(t.Style.FG.Value), t.Style.FG.R, t.Style.FG.G, t.Style.FG.B})
	}
	if t.Style.Bold {
		h.Write([]byte{1})
	}
	if t.Style.BG != nil {
		h.Write([]byte{2, byte(t.Style.BG.Space), byte(t.Style.BG.Value), t.Style.BG.R, t.Style.BG.G, t.Style.BG.B})
	}
	if t.Style.Italic {
		h.Write([]byte{3})
	}
	if t.Style.Underline {
		h.Write([]byte{4})
	}
	if t.Style.Dim {
		h.Write([]byte{5})
	}
	return h.Sum64()
}

// Spacer expands to fill available flex space in a stack; it renders
// as blank lines/columns.
type Spacer struct{}

func (Spacer) Tag() string { return "Spacer" }

func (Spacer) Render(ctx render.Context) *buffer.Buffer {
	lines := make([]string, maxInt(ctx.Height, 1))
	for i := range lines {
		lines[i] = spaces(ctx.Width)
	}
	return buffer.FromLines(lines)
}

func (Spacer) ContentHash() uint64 { return 0 }

// Measure reports a Spacer as zero-minimum and fully flexible on both
// axes, so a stack gives it whatever main-axis space is left over.
func (Spacer) Measure(p layout.Proposal) layout.Size {
	flex := 1
	return layout.Size{WidthFlex: &flex, HeightFlex: &flex}
}

// Child pairs a view with its layout participation: a fixed minimum
// size on the stack's main axis, and a flex weight (0 = fixed size).
type Child struct {
	View   render.View
	Min    int
	Weight int
}

// VStack lays its children out top-to-bottom, distributing the
// available height per layout.DistributeMain. Each child is rendered at
// the stack's full width and placed at the left edge; no horizontal
// centering is applied.
type VStack struct {
	Children []Child
	Spacing  int
}

func (VStack) Tag() string { return "VStack" }

func (s VStack) Render(ctx render.Context) *buffer.Buffer {
	return renderStack(ctx, s.Children, s.Spacing, layout.Vertical)
}

// HStack lays its children out left-to-right, distributing the
// available width per layout.DistributeMain.
type HStack struct {
	Children []Child
	Spacing  int
}

func (HStack) Tag() string { return "HStack" }

func (s HStack) Render(ctx render.Context) *buffer.Buffer {
	return renderStack(ctx, s.Children, s.Spacing, layout.Horizontal)
}

func renderStack(ctx render.Context, children []Child, spacing int, axis layout.Axis) *buffer.Buffer {
	if len(children) == 0 {
		return buffer.New()
	}
	flexChildren := make([]layout.FlexChild, len(children))
	for i, c := range children {
		fc := layout.FlexChild{Min: c.Min, Weight: c.Weight}
		if fc.Min == 0 && fc.Weight == 0 {
			fc = measureChild(ctx, c.View, axis)
		}
		flexChildren[i] = fc
	}
	available := ctx.Width
	if axis == layout.Vertical {
		available = ctx.Height
	}
	spacingTotal := spacing * maxInt(len(children)-1, 0)
	sizes := layout.DistributeMain(flexChildren, available, spacingTotal)

	rendered := make([]*buffer.Buffer, len(children))
	for i, c := range children {
		childID := identity.Child(ctx.Identity, c.View.Tag(), i)
		if ctx.State != nil {
			ctx.State.MarkActive(childID)
		}
		childCtx := ctx.WithIdentity(childID)
		if axis == layout.Vertical {
			childCtx = childCtx.WithSize(ctx.Width, sizes[i])
		} else {
			childCtx = childCtx.WithSize(sizes[i], ctx.Height)
		}
		rendered[i] = render.Render(childCtx, c.View)
	}

	out := rendered[0]
	for i := 1; i < len(rendered); i++ {
		if axis == layout.Vertical {
			out = buffer.AppendVertically(out, rendered[i], spacing)
		} else {
			out = buffer.AppendHorizontally(out, rendered[i], spacing)
		}
	}
	return out
}

// measureChild sizes a child that declared no explicit Min/Weight.
// Layout-aware views get a Measure call with the stack's cross axis as
// the proposal and the main axis unspecified; everything else is
// rendered once in measuring mode and sized by its own output.
func measureChild(ctx render.Context, v render.View, axis layout.Axis) layout.FlexChild {
	if m, ok := v.(layout.Measurable); ok {
		proposal := layout.Proposal{Width: ctx.Width, Height: layout.Unspecified}
		if axis == layout.Horizontal {
			proposal = layout.Proposal{Width: layout.Unspecified, Height: ctx.Height}
		}
		size := m.Measure(proposal)
		if axis == layout.Vertical {
			if size.HeightFlex != nil {
				return layout.FlexChild{Min: size.Height, Weight: *size.HeightFlex}
			}
			return layout.FlexChild{Min: size.Height}
		}
		if size.WidthFlex != nil {
			return layout.FlexChild{Min: size.Width, Weight: *size.WidthFlex}
		}
		return layout.FlexChild{Min: size.Width}
	}
	mctx := ctx
	mctx.IsMeasuring = true
	buf := render.Render(mctx, v)
	if axis == layout.Vertical {
		return layout.FlexChild{Min: buf.Height()}
	}
	return layout.FlexChild{Min: buf.Width()}
}

// Button is a pressable label. It registers itself as a focusable
// element of the enclosing focus section; the dispatcher invokes
// OnPress when the button is focused and Enter or Space arrives.
type Button struct {
	Label   string
	OnPress func()
}

func (Button) Tag() string { return "Button" }

func (b Button) Render(ctx render.Context) *buffer.Buffer {
	pal := env.Get(ctx.Env, PaletteKey)
	focused := false
	if ctx.Focus != nil && !ctx.IsMeasuring {
		elementID := ctx.Identity.String()
		ctx.Focus.RegisterElement(ctx.FocusSection, elementID, b.OnPress)
		focused = ctx.Focus.FocusedElement() == elementID
	}
	style := ansi.Style{FG: colorPtr(pal.Color(palette.Foreground))}
	if focused {
		style = ansi.Style{FG: colorPtr(pal.Color(palette.Accent)), Bold: true}
	}
	label := "[ " + b.Label + " ]"
	return buffer.FromLines([]string{ansi.Colorize(label, style)})
}

func (b Button) ContentHash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(b.Label))
	return h.Sum64()
}

// Gauge renders a horizontal bar filled to Value/Max, colored with the
// palette's success/warning/error tokens at the 60% and 85% marks.
type Gauge struct {
	Value float64
	Max   float64
	Width int // 0 derives the bar width from the available area
}

func (Gauge) Tag() string { return "Gauge" }

func (g Gauge) Render(ctx render.Context) *buffer.Buffer {
	width := g.Width
	if width <= 0 {
		width = maxInt(ctx.Width-7, 1) // room for the brackets and "NNN%"
	}
	ratio := 0.0
	if g.Max > 0 {
		ratio = g.Value / g.Max
	}
	filled := int(math.Round(ratio * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	pal := env.Get(ctx.Env, PaletteKey)
	tok := palette.Success
	switch {
	case ratio >= 0.85:
		tok = palette.Error
	case ratio >= 0.60:
		tok = palette.Warning
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	bar = ansi.Colorize(bar, ansi.Style{FG: colorPtr(pal.Color(tok))})
	line := "[" + bar + "] " + itoa(int(math.Round(ratio*100))) + "%"
	return buffer.FromLines([]string{line})
}

// sparkBlocks are the eight vertical levels an inline sparkline draws
// with, lowest to highest.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders History as one line of block glyphs, auto-scaled
// between the slice's own min and max and truncated to the most
// recent Width samples.
type Sparkline struct {
	History []float64
	Width   int // 0 derives the width from the available area
}

func (Sparkline) Tag() string { return "Sparkline" }

func (s Sparkline) Render(ctx render.Context) *buffer.Buffer {
	width := s.Width
	if width <= 0 {
		width = maxInt(ctx.Width, 1)
	}
	if len(s.History) == 0 {
		return buffer.FromLines([]string{strings.Repeat("-", width)})
	}
	data := s.History
	if len(data) > width {
		data = data[len(data)-width:]
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	span := hi - lo
	for _, v := range data {
		idx := len(sparkBlocks) - 1
		if span > 0 {
			idx = int(math.Round((v - lo) / span * float64(len(sparkBlocks)-1)))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return buffer.FromLines([]string{b.String()})
}

// TextField is a single-line editable text input backed by a state
// cell, so its contents survive re-renders. While focused it claims
// text-input capture: printable keys append, Backspace deletes, and a
// cursor block blinks with the cursor timer.
type TextField struct {
	Placeholder string
}

func (TextField) Tag() string { return "TextField" }

func (f TextField) Render(ctx render.Context) *buffer.Buffer {
	var cell *state.Cell
	content := ""
	focused := false
	if ctx.State != nil {
		cell = ctx.State.Hydrate(ctx.Identity, 0, func() any { return "" })
		content = cell.Get().(string)

		if ctx.Focus != nil && !ctx.IsMeasuring {
			elementID := ctx.Identity.String()
			ctx.Focus.RegisterElement(ctx.FocusSection, elementID, nil)
			if ctx.Focus.FocusedElement() == elementID {
				focused = true
				ctx.Focus.SetTextInput(elementID)
				if ctx.RegisterKeyHandler != nil {
					store := ctx.State
					ctx.RegisterKeyHandler(func(ev key.Event) bool {
						cur := cell.Get().(string)
						switch {
						case ev.Named == key.Backspace:
							if cur != "" {
								store.Set(cell, trimLastRune(cur))
							}
							return true
						case ev.IsChar() && !ev.Ctrl && !ev.Alt:
							store.Set(cell, cur+string(ev.Char))
							return true
						}
						return false
					})
				}
			}
		}
	}

	pal := env.Get(ctx.Env, PaletteKey)
	display := content
	style := ansi.Style{FG: colorPtr(pal.Color(palette.Foreground))}
	if display == "" {
		display = f.Placeholder
		style = ansi.Style{FG: colorPtr(pal.Color(palette.ForegroundTertiary)), Dim: true}
	}
	line := ansi.Colorize(display, style)
	if focused && ctx.CursorOn {
		line += ansi.Colorize("█", ansi.Style{FG: colorPtr(pal.Color(palette.Accent))})
	}
	return buffer.FromLines([]string{line})
}

func trimLastRune(s string) string {
	r := []rune(s)
	return string(r[:len(r)-1])
}

// PaletteKey and AppearanceKey are the environment keys widgets read
// to resolve the active theme. The application wires these via
// env.With at the root of the tree.
var (
	PaletteKey    = env.NewKey("palette", palette.Green)
	AppearanceKey = env.NewKey("appearance", appearance.Line)
)

// If renders Then or Else depending on Cond, descending under a
// branch-labelled identity so each arm owns its own state. When an arm
// is deselected, the cells beneath its branch identity are dropped
// eagerly (state.InvalidateDescendants); cells keyed by the branch
// identity itself go at the end of the render pass, since that identity
// is no longer marked active. Either way, re-selecting the arm later
// starts from defaults.
type If struct {
	Cond bool
	Then render.View
	Else render.View
}

func (If) Tag() string { return "If" }

func (v If) Render(ctx render.Context) *buffer.Buffer {
	label, other, arm := "true", "false", v.Then
	if !v.Cond {
		label, other, arm = "false", "true", v.Else
	}
	if ctx.State != nil && !ctx.IsMeasuring {
		ctx.State.InvalidateDescendants(identity.Branch(ctx.Identity, other))
	}
	if arm == nil {
		return buffer.New()
	}
	branchID := identity.Branch(ctx.Identity, label)
	if ctx.State != nil {
		ctx.State.MarkActive(branchID)
	}
	return render.Render(ctx.WithIdentity(branchID), arm)
}

// SectionShortcut mirrors a focus shortcut at the widget layer so
// applications declare section shortcuts without importing the focus
// package directly.
type SectionShortcut struct {
	Key    string
	Label  string
	Action func()
}

// Section declares a focus section wrapping Inner: it registers the
// section (with its shortcut-bar contribution) each frame, then draws
// Inner inside a border. When the section is active, a pulse dot is
// composited into the border's top-left corner, its color
// interpolated toward the accent by the pulse phase.
type Section struct {
	ID        string
	Parent    string
	Shortcuts []SectionShortcut
	Replace   bool
	Inner     render.View
}

func (Section) Tag() string { return "Section" }

func (s Section) Render(ctx render.Context) *buffer.Buffer {
	if ctx.Focus != nil && !ctx.IsMeasuring {
		mode := focus.Merge
		if s.Replace {
			mode = focus.Replace
		}
		shortcuts := make([]focus.Shortcut, len(s.Shortcuts))
		for i, sc := range s.Shortcuts {
			shortcuts[i] = focus.Shortcut{Key: sc.Key, Label: sc.Label, Action: sc.Action}
		}
		ctx.Focus.Register(focus.Registration{
			ID:        s.ID,
			Parent:    s.Parent,
			Shortcuts: shortcuts,
			Mode:      mode,
		})
	}

	active := ctx.Focus != nil && ctx.Focus.Active() == s.ID
	innerCtx := ctx
	innerCtx.FocusSection = s.ID
	buf := Bordered{Inner: s.Inner}.Render(innerCtx)

	if active && buf.Height() > 0 {
		pal := env.Get(ctx.Env, PaletteKey)
		dot := ansi.Colorize("●", ansi.Style{FG: colorPtr(PulseColor(pal.Color(palette.Accent), ctx.PulsePhase))})
		buf = buffer.Composite(buf, buffer.FromLines([]string{dot}), 1, 0)
	}
	return buf
}

// PulseColor interpolates linearly in RGB between a dimmed (20%)
// accent and the full accent, driven by a sine of the pulse phase so
// the indicator breathes instead of sawtoothing.
func PulseColor(accent ansi.Color, phase float64) ansi.Color {
	t := 0.5 + 0.5*math.Sin(2*math.Pi*phase)
	lerp := func(c uint8) uint8 {
		dim := float64(c) * 0.2
		return uint8(dim + (float64(c)-dim)*t)
	}
	return ansi.RGB(lerp(accent.R), lerp(accent.G), lerp(accent.B))
}

// Bordered wraps a single child in a border drawn using the active
// appearance, reducing the child's proposed area by one cell per side.
type Bordered struct {
	Inner render.View
}

func (Bordered) Tag() string { return "Bordered" }

// Render implements render.Renderable directly (rather than declaring
// a Body) because it must draw the border frame around whatever its
// inner view produces, not simply return it for further dispatch.
func (b Bordered) Render(ctx render.Context) *buffer.Buffer {
	app := env.Get(ctx.Env, AppearanceKey)
	innerW, innerH := layout.InnerArea(ctx.Width, ctx.Height)
	innerID := identity.Body(ctx.Identity, b.Inner.Tag())
	innerCtx := ctx.WithIdentity(innerID).WithSize(innerW, innerH)
	inner := render.Render(innerCtx, b.Inner)

	lines := make([]string, ctx.Height)
	lines[0] = string(app.TopLeft) + repeatRune(app.Horizontal, maxInt(ctx.Width-2, 0)) + string(app.TopRight)
	for i := 1; i < ctx.Height-1; i++ {
		innerLine := ""
		if i-1 < len(inner.Lines()) {
			innerLine = inner.Lines()[i-1]
		}
		lines[i] = string(app.Vertical) + padTo(innerLine, innerW) + string(app.Vertical)
	}
	if ctx.Height > 1 {
		lines[ctx.Height-1] = string(app.BottomLeft) + repeatRune(app.Horizontal, maxInt(ctx.Width-2, 0)) + string(app.BottomRight)
	}
	return buffer.FromLines(lines)
}

func repeatRune(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

func padTo(s string, width int) string {
	w := ansi.PrintableLength(s)
	if w >= width {
		return s
	}
	return s + spaces(width-w)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func colorPtr(c ansi.Color) *ansi.Color { return &c }
