package widget

import (
	"strings"
	"testing"

	"github.com/tuikit-go/tuikit/ansi"
	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/identity"
	"github.com/tuikit-go/tuikit/key"
	"github.com/tuikit-go/tuikit/render"
	"github.com/tuikit-go/tuikit/state"
)

func baseCtx() render.Context {
	return render.Context{Width: 20, Height: 5, Identity: identity.Root("root"), State: state.New()}
}

func TestTextRendersItsContent(t *testing.T) {
	buf := render.Render(baseCtx(), Text{Content: "hello"})
	if buf.Lines()[0] != "hello" {
		t.Errorf("Lines()[0] = %q, want %q", buf.Lines()[0], "hello")
	}
}

func TestTextContentHashStableForEqualValues(t *testing.T) {
	a := Text{Content: "x"}
	b := Text{Content: "x"}
	if a.ContentHash() != b.ContentHash() {
		t.Error("expected equal Text values to hash identically")
	}
}

func TestTextContentHashDiffersForDifferentContent(t *testing.T) {
	a := Text{Content: "x"}
	b := Text{Content: "y"}
	if a.ContentHash() == b.ContentHash() {
		t.Error("expected different content to hash differently")
	}
}

func TestVStackStacksChildrenVertically(t *testing.T) {
	s := VStack{Children: []Child{
		{View: Text{Content: "one"}, Min: 1},
		{View: Text{Content: "two"}, Min: 1},
	}}
	buf := render.Render(baseCtx(), s)
	if buf.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", buf.Height())
	}
	if buf.Lines()[0] != "one" || buf.Lines()[1] != "two" {
		t.Errorf("Lines() = %v, want [one two]", buf.Lines())
	}
}

func TestHStackPlacesChildrenSideBySide(t *testing.T) {
	s := HStack{Children: []Child{
		{View: Text{Content: "ab"}, Min: 2},
		{View: Text{Content: "cd"}, Min: 2},
	}}
	buf := render.Render(baseCtx(), s)
	if buf.Lines()[0] != "abcd" {
		t.Errorf("Lines()[0] = %q, want %q", buf.Lines()[0], "abcd")
	}
}

func TestVStackMarksChildIdentitiesActive(t *testing.T) {
	st := state.New()
	ctx := baseCtx()
	ctx.State = st
	s := VStack{Children: []Child{{View: Text{Content: "a"}, Min: 1}}}
	render.Render(ctx, s)

	childID := identity.Child(ctx.Identity, "Text", 0)
	if !st.IsActive(childID) {
		t.Error("expected child identity marked active during stack render")
	}
}

func TestBorderedDrawsCornersAndWrapsInner(t *testing.T) {
	ctx := baseCtx()
	ctx.Width, ctx.Height = 6, 3
	b := Bordered{Inner: Text{Content: "hi"}}
	buf := render.Render(ctx, b)

	if buf.Height() != 3 {
		t.Fatalf("Height() = %d, want 3", buf.Height())
	}
	if !strings.HasPrefix(buf.Lines()[0], "┌") {
		t.Errorf("top line = %q, want to start with top-left corner", buf.Lines()[0])
	}
	if !strings.Contains(buf.Lines()[1], "hi") {
		t.Errorf("middle line = %q, want to contain inner content", buf.Lines()[1])
	}
}

func TestSpacerFillsProposedArea(t *testing.T) {
	ctx := baseCtx()
	ctx.Width, ctx.Height = 4, 2
	buf := render.Render(ctx, Spacer{})
	if buf.Height() != 2 {
		t.Errorf("Height() = %d, want 2", buf.Height())
	}
	for _, line := range buf.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Errorf("Spacer line = %q, want blank", line)
		}
	}
}

func TestGaugeFillsProportionally(t *testing.T) {
	ctx := baseCtx()
	buf := render.Render(ctx, Gauge{Value: 5, Max: 10, Width: 10})
	line := buf.Lines()[0]
	if !strings.Contains(line, "50%") {
		t.Errorf("gauge line = %q, want 50%% readout", line)
	}
	if strings.Count(line, "█") != 5 || strings.Count(line, "░") != 5 {
		t.Errorf("gauge line = %q, want 5 filled and 5 empty cells", line)
	}
}

func TestGaugeClampsOverflow(t *testing.T) {
	ctx := baseCtx()
	buf := render.Render(ctx, Gauge{Value: 20, Max: 10, Width: 8})
	line := buf.Lines()[0]
	if strings.Count(line, "█") != 8 {
		t.Errorf("gauge line = %q, want bar fully filled at overflow", line)
	}
}

func TestSparklineUsesLowAndHighBlocks(t *testing.T) {
	ctx := baseCtx()
	buf := render.Render(ctx, Sparkline{History: []float64{0, 10}, Width: 2})
	line := buf.Lines()[0]
	if line != "▁█" {
		t.Errorf("sparkline = %q, want lowest then highest block", line)
	}
}

func TestSparklineEmptyHistoryRendersDashes(t *testing.T) {
	ctx := baseCtx()
	buf := render.Render(ctx, Sparkline{Width: 4})
	if buf.Lines()[0] != "----" {
		t.Errorf("sparkline = %q, want dashes for empty history", buf.Lines()[0])
	}
}

func TestSparklineTruncatesToMostRecentSamples(t *testing.T) {
	ctx := baseCtx()
	buf := render.Render(ctx, Sparkline{History: []float64{9, 9, 0, 10}, Width: 2})
	if buf.Lines()[0] != "▁█" {
		t.Errorf("sparkline = %q, want only the last two samples drawn", buf.Lines()[0])
	}
}

func TestSectionRegistersWithFocusManager(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	ctx := baseCtx()
	ctx.Focus = fm
	ctx.Width, ctx.Height = 10, 3

	render.Render(ctx, Section{ID: "main", Inner: Text{Content: "hi"}})

	if fm.Active() != "main" {
		t.Errorf("Active() = %q, want registered section %q", fm.Active(), "main")
	}
}

func TestSectionSkipsRegistrationWhileMeasuring(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	ctx := baseCtx()
	ctx.Focus = fm
	ctx.IsMeasuring = true
	ctx.Width, ctx.Height = 10, 3

	render.Render(ctx, Section{ID: "main", Inner: Text{Content: "hi"}})

	if fm.Active() != "" {
		t.Errorf("Active() = %q, want no registration during measure pass", fm.Active())
	}
}

func TestActiveSectionShowsPulseDot(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	ctx := baseCtx()
	ctx.Focus = fm
	ctx.Width, ctx.Height = 10, 3
	ctx.PulsePhase = 0.25

	buf := render.Render(ctx, Section{ID: "main", Inner: Text{Content: "hi"}})

	if !strings.Contains(buf.Lines()[0], "●") {
		t.Errorf("top border = %q, want pulse dot for the active section", buf.Lines()[0])
	}
}

func TestButtonRegistersAsFocusableAndPressesOnActivate(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "s"})
	ctx := baseCtx()
	ctx.Focus = fm
	ctx.FocusSection = "s"

	pressed := false
	render.Render(ctx, Button{Label: "go", OnPress: func() { pressed = true }})

	if !fm.ActivateFocused() {
		t.Fatal("expected button to be the focused element")
	}
	if !pressed {
		t.Error("expected OnPress to fire on activation")
	}
}

func TestTextFieldEditsPersistAcrossRenders(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "s"})
	st := state.New()

	var handler func(key.Event) bool
	ctx := baseCtx()
	ctx.State = st
	ctx.Focus = fm
	ctx.FocusSection = "s"
	ctx.RegisterKeyHandler = func(h func(key.Event) bool) { handler = h }

	render.Render(ctx, TextField{Placeholder: "name"})
	if handler == nil {
		t.Fatal("expected focused text field to register a key handler")
	}

	handler(key.Event{Char: 'h'})
	handler(key.Event{Char: 'i'})
	handler(key.Event{Char: 'x'})
	handler(key.Event{Named: key.Backspace})

	buf := render.Render(ctx, TextField{Placeholder: "name"})
	if !strings.Contains(buf.Lines()[0], "hi") {
		t.Errorf("text field line = %q, want typed content %q", buf.Lines()[0], "hi")
	}
}

func TestPulseColorStaysBetweenDimAndFullAccent(t *testing.T) {
	accent := ansi.RGB(200, 100, 50)
	for _, phase := range []float64{0, 0.25, 0.5, 0.75} {
		c := PulseColor(accent, phase)
		if c.R > 200 || c.G > 100 || c.B > 50 {
			t.Errorf("PulseColor(phase=%v) = %+v exceeds the accent", phase, c)
		}
		if c.R < 40 || c.G < 20 || c.B < 10 {
			t.Errorf("PulseColor(phase=%v) = %+v dimmer than 20%% floor", phase, c)
		}
	}
}

// statefulLeaf hydrates one int cell and records what it read.
type statefulLeaf struct {
	set  int
	read *int
}

func (statefulLeaf) Tag() string { return "statefulLeaf" }
func (l statefulLeaf) Render(ctx render.Context) *buffer.Buffer {
	cell := ctx.State.Hydrate(ctx.Identity, 0, func() any { return 0 })
	if l.set != 0 {
		ctx.State.Set(cell, l.set)
	}
	if l.read != nil {
		*l.read = cell.Get().(int)
	}
	return buffer.New()
}

func TestIfDeselectedArmLosesItsState(t *testing.T) {
	st := state.New()
	ctx := baseCtx()
	ctx.State = st

	// Frame 1: true arm writes 42 into its cell.
	st.BeginRenderPass()
	render.Render(ctx, If{Cond: true, Then: statefulLeaf{set: 42}})
	st.EndRenderPass()

	// Frame 2: condition flips; the true arm's cells are dropped.
	st.BeginRenderPass()
	render.Render(ctx, If{Cond: false, Else: Text{Content: "other"}})
	st.EndRenderPass()

	// Frame 3: true arm again; its cell re-initializes to the default.
	var got int
	st.BeginRenderPass()
	render.Render(ctx, If{Cond: true, Then: statefulLeaf{read: &got}})
	st.EndRenderPass()

	if got != 0 {
		t.Errorf("re-selected arm read %d, want default 0", got)
	}
}

func TestIfKeepsSelectedArmStateAcrossFrames(t *testing.T) {
	st := state.New()
	ctx := baseCtx()
	ctx.State = st

	st.BeginRenderPass()
	render.Render(ctx, If{Cond: true, Then: statefulLeaf{set: 7}})
	st.EndRenderPass()

	var got int
	st.BeginRenderPass()
	render.Render(ctx, If{Cond: true, Then: statefulLeaf{read: &got}})
	st.EndRenderPass()

	if got != 7 {
		t.Errorf("selected arm read %d, want persisted 7", got)
	}
}
