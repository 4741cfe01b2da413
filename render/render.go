// Package render implements the View/Body dispatch protocol: a view
// either renders itself directly, or declares a body
// that the dispatcher recurses into, or (the default for a bare marker
// type) renders as empty.
package render

import (
	"log/slog"

	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/env"
	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/identity"
	"github.com/tuikit-go/tuikit/key"
	"github.com/tuikit-go/tuikit/memo"
	"github.com/tuikit-go/tuikit/state"
)

// View is implemented by every node in a view tree. Tag names the
// concrete type for structural identity purposes and should be
// a compile-time constant per type, e.g. "Text" or "VStack".
type View interface {
	Tag() string
}

// Renderable views dispatch directly to a buffer without a body
// descent — the leaves of the tree (Text, Spacer, and similar).
type Renderable interface {
	View
	Render(ctx Context) *buffer.Buffer
}

// Composite views dispatch by descending into Body, which returns
// another View to recurse on. Most container and application views are
// Composite rather than Renderable.
type Composite interface {
	View
	Body(ctx Context) View
}

// Context carries everything a Render or Body call needs: the
// available area, the top-down environment, the current structural
// identity (for hydrating state and for the next Body descent), the
// persistent state store, the active focus section, and the animation
// phases driving pulse/cursor effects. IsMeasuring is set during a
// measure-only pass: views that perform side effects in Body
// must guard them behind `if !ctx.IsMeasuring`.
type Context struct {
	Width, Height int
	Env           env.Values
	Identity      identity.ID
	State         *state.Store
	Focus         *focus.Manager
	FocusSection  string

	// Prefs is the bottom-up preference stack for the current pass.
	// Observing views push a scope before evaluating their subtree and
	// pop it afterwards to read the reduced values. Nil outside a
	// running Program.
	Prefs *env.Stack
	PulsePhase    float64
	CursorOn      bool
	IsMeasuring   bool

	// Memo is the subtree memoization cache. Nil outside a
	// running Program, same as the other optional collaborators below —
	// views and tests that construct a bare Context simply get no
	// memoization, never a crash.
	Memo *memo.Cache

	// RegisterKeyHandler lets a view contribute an L2 per-view key
	// handler for the frame currently being rendered. Views
	// register in traversal order (outermost first) by calling this
	// during Render/Body; the Program reverses the collected handlers so
	// dispatch tries the innermost first. Nil outside a running Program (e.g. in
	// tests that construct a bare Context) — callers must guard with a
	// nil check, same as any other optional collaborator.
	RegisterKeyHandler func(handler func(key.Event) bool)
}

// WithIdentity returns a copy of ctx descended to a new identity,
// leaving the rest of the context unchanged.
func (ctx Context) WithIdentity(id identity.ID) Context {
	ctx.Identity = id
	return ctx
}

// WithSize returns a copy of ctx constrained to the given area.
func (ctx Context) WithSize(w, h int) Context {
	ctx.Width, ctx.Height = w, h
	return ctx
}

// Render dispatches v: Renderable views render
// directly; Composite views descend into Body under an identity formed
// by appending a body segment tagged with v's own tag; anything else
// (a bare marker view with neither method) renders as an empty buffer.
//
// Before doing any of that, Render checks whether v opts into
// memoization by implementing memo.Hashable — a capability check, the
// same technique the Renderable/Composite split already uses. A content-hash
// and size match against the last render at this identity returns the
// cached buffer and skips the descent entirely; a miss renders normally
// and stores the result.
func Render(ctx Context, v View) *buffer.Buffer {
	if h, ok := v.(memo.Hashable); ok && ctx.Memo != nil && !ctx.IsMeasuring {
		k := memo.Key{ID: ctx.Identity, ContentHash: h.ContentHash(), Width: ctx.Width, Height: ctx.Height}
		if buf, hit := ctx.Memo.Get(k); hit {
			if ctx.State != nil {
				ctx.State.MarkActive(ctx.Identity)
			}
			return buf
		}
		buf, panicked := safeDispatch(ctx, v)
		if !panicked {
			ctx.Memo.Store(k, buf)
		}
		return buf
	}
	buf, _ := safeDispatch(ctx, v)
	return buf
}

// safeDispatch isolates panics raised by view code: the offending
// subtree renders as empty and the panic is logged, so one broken
// view cannot take down the loop or corrupt the terminal.
func safeDispatch(ctx Context, v View) (buf *buffer.Buffer, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("view panicked during render", "view", v.Tag(), "identity", ctx.Identity.String(), "panic", r)
			buf = buffer.New()
			panicked = true
		}
	}()
	return dispatch(ctx, v), false
}

// dispatch marks ctx.Identity active in the state store and performs the
// direct/compositional/empty choice without any memoization
// bookkeeping; Render wraps it with the cache check above.
func dispatch(ctx Context, v View) *buffer.Buffer {
	if ctx.State != nil {
		ctx.State.MarkActive(ctx.Identity)
	}
	if r, ok := v.(Renderable); ok {
		return r.Render(ctx)
	}
	if c, ok := v.(Composite); ok {
		bodyCtx := ctx.WithIdentity(identity.Body(ctx.Identity, v.Tag()))
		return Render(bodyCtx, c.Body(bodyCtx))
	}
	return buffer.New()
}
