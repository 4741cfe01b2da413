package render

import (
	"testing"

	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/identity"
	"github.com/tuikit-go/tuikit/memo"
	"github.com/tuikit-go/tuikit/state"
)

type leaf struct{ text string }

func (leaf) Tag() string { return "leaf" }
func (l leaf) Render(ctx Context) *buffer.Buffer {
	return buffer.FromLines([]string{l.text})
}

type wrapper struct{ inner View }

func (wrapper) Tag() string { return "wrapper" }
func (w wrapper) Body(ctx Context) View { return w.inner }

type marker struct{}

func (marker) Tag() string { return "marker" }

func baseCtx() Context {
	return Context{Width: 10, Height: 5, Identity: identity.Root("root")}
}

func TestRenderDispatchesRenderableDirectly(t *testing.T) {
	buf := Render(baseCtx(), leaf{text: "hi"})
	if buf.Lines()[0] != "hi" {
		t.Errorf("Lines()[0] = %q, want %q", buf.Lines()[0], "hi")
	}
}

func TestRenderDescendsThroughComposite(t *testing.T) {
	buf := Render(baseCtx(), wrapper{inner: leaf{text: "nested"}})
	if buf.Lines()[0] != "nested" {
		t.Errorf("Lines()[0] = %q, want %q", buf.Lines()[0], "nested")
	}
}

func TestRenderMarkerDefaultsToEmpty(t *testing.T) {
	buf := Render(baseCtx(), marker{})
	if buf.Height() != 0 {
		t.Errorf("Height() = %d, want 0 for empty default", buf.Height())
	}
}

func TestBodyDescentAppendsBodySegment(t *testing.T) {
	var seen identity.ID
	probe := wrapper{inner: recorderView{record: &seen}}
	Render(baseCtx(), probe)
	root := identity.Root("root")
	if !root.IsPrefixOf(seen) {
		t.Errorf("body descent identity %v is not a descendant of root", seen)
	}
}

type recorderView struct{ record *identity.ID }

func (recorderView) Tag() string { return "recorder" }
func (r recorderView) Render(ctx Context) *buffer.Buffer {
	*r.record = ctx.Identity
	return buffer.New()
}

// hashableLeaf implements both Renderable and memo.Hashable, opting into
// the memoization check at the top of Render.
type hashableLeaf struct {
	text   string
	visits *int
}

func (hashableLeaf) Tag() string { return "hashableLeaf" }
func (h hashableLeaf) Render(ctx Context) *buffer.Buffer {
	if h.visits != nil {
		*h.visits++
	}
	return buffer.FromLines([]string{h.text})
}
func (h hashableLeaf) ContentHash() uint64 {
	sum := uint64(0)
	for _, r := range h.text {
		sum = sum*31 + uint64(r)
	}
	return sum
}

func TestRenderMemoizesHashableViewOnIdentityMatch(t *testing.T) {
	visits := 0
	ctx := baseCtx()
	ctx.State = state.New()
	ctx.Memo = memo.New()

	v := hashableLeaf{text: "same", visits: &visits}
	Render(ctx, v)
	Render(ctx, v)

	if visits != 1 {
		t.Errorf("visits = %d, want 1 (second render should hit the memo cache)", visits)
	}
	if hits, misses := ctx.Memo.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestRenderSkipsMemoOnContentChange(t *testing.T) {
	visits := 0
	ctx := baseCtx()
	ctx.State = state.New()
	ctx.Memo = memo.New()

	Render(ctx, hashableLeaf{text: "a", visits: &visits})
	Render(ctx, hashableLeaf{text: "b", visits: &visits})

	if visits != 2 {
		t.Errorf("visits = %d, want 2 (differing content hash must miss)", visits)
	}
}

func TestRenderMemoHitMarksIdentityActive(t *testing.T) {
	ctx := baseCtx()
	ctx.State = state.New()
	ctx.Memo = memo.New()

	v := hashableLeaf{text: "x"}
	Render(ctx, v)
	ctx.State.BeginRenderPass()
	Render(ctx, v)

	if !ctx.State.IsActive(ctx.Identity) {
		t.Error("memo cache hit did not mark the identity active for this pass")
	}
}
