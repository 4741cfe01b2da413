// Package tuikit is the root package: it owns the Program type that
// ties together the terminal driver, the render/state/memo kernel, the
// event loop, and the focus/lifecycle trackers into one program
// lifecycle — construct root state, enter the alternate screen,
// install signal handling, render the first frame, run the event loop,
// and clean up on exit.
package tuikit

import (
	"log/slog"
	"math"
	"os"

	"github.com/tuikit-go/tuikit/appearance"
	"github.com/tuikit-go/tuikit/config"
	"github.com/tuikit-go/tuikit/diff"
	"github.com/tuikit-go/tuikit/env"
	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/identity"
	"github.com/tuikit-go/tuikit/input"
	"github.com/tuikit-go/tuikit/key"
	"github.com/tuikit-go/tuikit/lifecycle"
	"github.com/tuikit-go/tuikit/loop"
	"github.com/tuikit-go/tuikit/memo"
	"github.com/tuikit-go/tuikit/palette"
	"github.com/tuikit-go/tuikit/render"
	"github.com/tuikit-go/tuikit/state"
	"github.com/tuikit-go/tuikit/term"
	"github.com/tuikit-go/tuikit/widget"
)

// RootTag is the type tag assigned to the application's root view for
// structural-identity purposes.
const RootTag = "Root"

// Program owns every long-lived piece of framework state for one
// running application.
type Program struct {
	Term   *term.Terminal
	Store  *state.Store
	Memo   *memo.Cache
	Focus  *focus.Manager
	Life   *lifecycle.Tracker
	Loop   *loop.Loop
	Writer *diff.Writer

	Config     config.Config
	palette    palette.Palette
	appearance appearance.Appearance

	root        func() render.View
	Dispatcher  *input.Dispatcher
	needsRender bool
	pulsePhase  float64
	cursorOn    bool

	// QuitAllowed gates the 'q'/'Q' default binding; ThemeItemEnabled
	// gates 't'/'T'. Both default to true.
	QuitAllowed      bool
	ThemeItemEnabled bool

	// debugLog is non-nil when TUIKIT_DEBUG_RENDER=1: renderFrame logs
	// the memo cache's per-frame hit/miss delta to stderr.
	debugLog       *slog.Logger
	lastMemoHits   int
	lastMemoMisses int
}

// New creates a Program. root is called once per frame to (re)construct
// the view tree's root value — structural identity, not the Go value,
// is what makes state persist across these reconstructions.
func New(root func() render.View, cfg config.Config) *Program {
	p := &Program{
		Term:             term.Default(),
		Store:            state.New(),
		Memo:             memo.New(),
		Focus:            focus.NewManager(),
		Life:             lifecycle.NewTracker(),
		Config:           cfg,
		palette:          palette.ByID(cfg.DefaultPalette),
		appearance:       appearance.ByID(cfg.DefaultAppearance),
		root:             root,
		QuitAllowed:      true,
		ThemeItemEnabled: true,
	}
	p.Loop = loop.New(p.Term)
	p.Writer = diff.New(p.Term)
	p.Dispatcher = &input.Dispatcher{
		Focus: p.Focus,
		Default: map[rune]func(){
			'q': func() { p.Loop.Stop() },
			'Q': func() { p.Loop.Stop() },
			't': func() { p.cyclePalette() },
			'T': func() { p.cyclePalette() },
			'a': func() { p.cycleAppearance() },
			'A': func() { p.cycleAppearance() },
		},
		QuitAllowed:  func() bool { return p.QuitAllowed },
		ThemeAllowed: func() bool { return p.ThemeItemEnabled },
	}

	if os.Getenv("TUIKIT_DEBUG_RENDER") == "1" {
		p.debugLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	p.Store.OnWrite = func() {
		p.needsRender = true
		p.Memo.Clear()
	}
	p.Loop.OnTick = p.tick
	p.Loop.OnKey = func(ev key.Event) { p.Dispatcher.Dispatch(ev) }
	p.Loop.OnResize = func(term.Size) {
		p.Writer.Invalidate()
		p.needsRender = true
	}
	p.Loop.OnPulse = func() {
		// One full period is roughly 3 seconds of 100ms pulse ticks.
		p.pulsePhase = math.Mod(p.pulsePhase+float64(100)/3000.0, 1.0)
		p.needsRender = true
	}
	p.Loop.OnCursorBlink = func() {
		p.cursorOn = !p.cursorOn
		p.needsRender = true
	}
	return p
}

func (p *Program) cyclePalette() {
	p.palette = palette.Next(p.palette)
	p.Memo.Clear() // environment snapshot changed
	p.Writer.SetPersistentBackground(p.palette.Color(palette.Background))
	p.Writer.Invalidate()
	p.needsRender = true
}

func (p *Program) cycleAppearance() {
	p.appearance = appearance.Next(p.appearance)
	p.Memo.Clear()
	p.needsRender = true
}

// Run enters the alternate screen, puts the terminal into raw mode,
// renders the first frame, and runs the event loop until it exits
// (quit, SIGINT, or Loop.Stop). Terminal state is always restored
// before Run returns, even on error.
func (p *Program) Run() error {
	if err := p.Term.EnableRaw(); err != nil {
		return err
	}
	defer p.Term.Close()

	if err := p.Term.EnterAltScreen(); err != nil {
		return err
	}
	defer p.Term.ExitAltScreen()

	if err := p.Term.HideCursor(); err != nil {
		return err
	}
	defer p.Term.ShowCursor()

	p.Writer.SetPersistentBackground(p.palette.Color(palette.Background))
	p.needsRender = true
	p.renderIfNeeded()

	return p.Loop.Run()
}

func (p *Program) tick() {
	p.renderIfNeeded()
}

func (p *Program) renderIfNeeded() {
	if !p.needsRender {
		return
	}
	p.needsRender = false
	p.renderFrame()
}

func (p *Program) renderFrame() {
	size := p.Term.Size()

	p.Store.BeginRenderPass()
	p.Focus.BeginFrame()
	p.Life.BeginFrame()

	// Per-frame reset: handlers registered by views last frame die
	// here; views still on screen re-register during this render.
	var frameHandlers []input.Handler

	view := p.root()
	rootID := identity.Root(RootTag)
	p.Store.MarkActive(rootID)
	p.Life.MarkSeen(rootID)

	ctx := render.Context{
		Width:    size.Cols,
		Height:   size.Rows,
		Identity: rootID,
		State:    p.Store,
		Memo:     p.Memo,
		Focus:    p.Focus,
		Env: env.With(env.With(env.Empty(), widget.PaletteKey, p.palette),
			widget.AppearanceKey, p.appearance),
		Prefs:      env.NewStack(),
		PulsePhase: p.pulsePhase,
		CursorOn:   p.cursorOn,
		RegisterKeyHandler: func(h func(key.Event) bool) {
			frameHandlers = append(frameHandlers, h)
		},
	}

	buf := render.Render(ctx, view)

	// Registration happened outermost-first during the top-down
	// descent; dispatch wants innermost-first.
	for i, j := 0, len(frameHandlers)-1; i < j; i, j = i+1, j-1 {
		frameHandlers[i], frameHandlers[j] = frameHandlers[j], frameHandlers[i]
	}
	p.Dispatcher.ViewHandlers = frameHandlers

	p.Store.EndRenderPass()
	p.Life.EndFrame()
	p.Memo.GC(p.Store.IsActive)

	out := p.Writer.BuildOutput(buf, size.Cols, size.Rows)
	_ = p.Writer.WriteDiff(out)

	if p.debugLog != nil {
		hits, misses := p.Memo.Stats()
		p.debugLog.Debug("frame rendered",
			"memo_hits", hits-p.lastMemoHits,
			"memo_misses", misses-p.lastMemoMisses,
			"memo_hits_total", hits,
			"memo_misses_total", misses,
			"cells", p.Store.Len(),
		)
		p.lastMemoHits, p.lastMemoMisses = hits, misses
	}
}
