// Package loop implements the single-threaded cooperative event loop:
// a fixed-rate tick drives rendering, two
// independent timers drive the pulse and cursor-blink animations,
// SIGINT/SIGWINCH are delivered as flags rather than handled inline,
// and a bounded number of pending key events are drained per tick.
package loop

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuikit-go/tuikit/key"
	"github.com/tuikit-go/tuikit/term"
)

const (
	// tickInterval drives the main loop at roughly 35Hz.
	tickInterval = 28 * time.Millisecond
	// pulseInterval drives the pulse-indicator animation.
	pulseInterval = 100 * time.Millisecond
	// cursorInterval drives the cursor-blink animation.
	cursorInterval = 50 * time.Millisecond
	// maxKeysPerTick bounds how many buffered key events are decoded and
	// dispatched within a single tick, so a burst of pasted input cannot
	// starve rendering.
	maxKeysPerTick = 128
)

// Loop owns the terminal's non-blocking key reads and the three timers
// driving the render/pulse/cursor cadence. Callbacks are invoked
// synchronously on the loop's own goroutine; none of them may block.
type Loop struct {
	Term *term.Terminal

	// OnTick fires once per tick, after any pending key events for that
	// tick have been dispatched. The loop renders nothing itself; the
	// Program renders its frame from this callback.
	OnTick func()
	// OnKey fires once per decoded key event, in arrival order.
	OnKey func(key.Event)
	// OnResize fires when SIGWINCH was observed since the last tick.
	OnResize func(term.Size)
	// OnPulse fires on the pulse timer's own cadence, independent of
	// the render tick.
	OnPulse func()
	// OnCursorBlink fires on the cursor timer's own cadence.
	OnCursorBlink func()

	quit chan struct{}
}

// New creates a Loop bound to t. All callback fields are nil (no-op)
// until assigned by the caller.
func New(t *term.Terminal) *Loop {
	return &Loop{Term: t, quit: make(chan struct{})}
}

// Stop signals Run to return after completing its current tick.
func (l *Loop) Stop() {
	select {
	case <-l.quit:
		// already stopped
	default:
		close(l.quit)
	}
}

// Run blocks until Stop is called or a SIGINT is received. It installs
// its own signal handling for SIGINT and SIGWINCH; callers should not
// also call signal.Notify for those signals on the same process.
func (l *Loop) Run() error {
	sig := make(chan os.Signal, 4)
	signal.Notify(sig, os.Interrupt, syscall.SIGWINCH)
	defer signal.Stop(sig)

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	pulse := time.NewTicker(pulseInterval)
	defer pulse.Stop()
	cursor := time.NewTicker(cursorInterval)
	defer cursor.Stop()

	resizePending := false

	for {
		select {
		case <-l.quit:
			return nil
		case s := <-sig:
			switch s {
			case os.Interrupt:
				return nil
			case syscall.SIGWINCH:
				resizePending = true
			}
		case <-pulse.C:
			if l.OnPulse != nil {
				l.OnPulse()
			}
		case <-cursor.C:
			if l.OnCursorBlink != nil {
				l.OnCursorBlink()
			}
		case <-tick.C:
			if resizePending {
				resizePending = false
				if l.OnResize != nil {
					l.OnResize(l.Term.Size())
				}
			}
			l.drainKeys()
			if l.OnTick != nil {
				l.OnTick()
			}
		}
	}
}

// drainKeys decodes and dispatches up to maxKeysPerTick buffered key
// events, stopping early once no more bytes are available. A single
// read may carry several presses (pasted text); DecodeAll splits them.
func (l *Loop) drainKeys() {
	dispatched := 0
	for dispatched < maxKeysPerTick {
		b, err := l.Term.ReadKeyBytes()
		if err != nil || len(b) == 0 {
			return
		}
		for _, ev := range key.DecodeAll(b) {
			if l.OnKey != nil {
				l.OnKey(ev)
			}
			dispatched++
			if dispatched >= maxKeysPerTick {
				return
			}
		}
	}
}
