// Package input implements layered key-event dispatch: a text-input
// field gets first refusal, then the active shortcut bar, then per-view
// handlers in reverse registration order (innermost first), then the
// focus manager's own navigation bindings, and finally a set of default
// bindings. Each layer may consume the event, stopping the cascade.
package input

import (
	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/key"
)

// Handler inspects an event and reports whether it consumed it.
type Handler func(key.Event) bool

// Dispatcher wires together the five layers. All fields are optional;
// a nil handler is treated as "never consumes".
type Dispatcher struct {
	// TextInput is L0: active only while a text-input view has focus.
	// When Focus is set, TextInput is consulted only if the focus
	// manager reports an active text-input element; L3's navigation
	// bindings are skipped whenever L0 captured the event.
	TextInput Handler
	// StatusBar is L1: an optional override for shortcut handling.
	// When nil and Focus is set, the active section's resolved
	// shortcut bar is consulted instead for printable-character events,
	// invoking the Action of the entry whose Key is that character;
	// named keys (Enter, Esc, arrows, ...) are never matched against it.
	StatusBar Handler
	// ViewHandlers is L2: registered by views during render, innermost
	// view first. Dispatch tries them in the order they appear in this
	// slice, so callers must append in innermost-first order themselves
	// (typically by prepending during a top-down render).
	ViewHandlers []Handler
	// Focus is L3: the focus manager, consulted for Tab/Shift+Tab
	// section cycling, arrow navigation within the active section, and
	// Enter/Space activation of the focused element.
	Focus *focus.Manager
	// Default is L4: fallback bindings such as quit and theme cycling,
	// tried only if nothing else consumed the event.
	Default map[rune]func()
	// QuitAllowed gates the 'q'/'Q' default binding; ThemeAllowed
	// gates 't'/'T'. Both default to enabled when nil.
	QuitAllowed  func() bool
	ThemeAllowed func() bool
}

// Dispatch runs ev through the five layers in order, stopping at the
// first one that consumes it. Returns true if any layer consumed the
// event.
func (d *Dispatcher) Dispatch(ev key.Event) bool {
	captured := d.Focus == nil || d.Focus.TextInputActive()
	if captured && d.TextInput != nil && d.TextInput(ev) {
		return true
	}
	if d.dispatchStatusBar(ev) {
		return true
	}
	for _, h := range d.ViewHandlers {
		if h != nil && h(ev) {
			return true
		}
	}
	if !captured && d.Focus != nil && d.dispatchFocus(ev) {
		return true
	}
	if d.dispatchDefault(ev) {
		return true
	}
	return false
}

func (d *Dispatcher) dispatchStatusBar(ev key.Event) bool {
	if d.StatusBar != nil {
		return d.StatusBar(ev)
	}
	if d.Focus == nil || !ev.IsChar() {
		return false
	}
	if s, ok := d.Focus.Lookup(string(ev.Char)); ok && s.Action != nil {
		s.Action()
		return true
	}
	return false
}

func (d *Dispatcher) dispatchFocus(ev key.Event) bool {
	switch {
	case ev.Named == key.Tab && !ev.Shift:
		d.Focus.Next()
		return true
	case ev.Named == key.Tab && ev.Shift:
		d.Focus.Prev()
		return true
	case ev.Named == key.Down || ev.Named == key.Right:
		d.Focus.NextElement()
		return true
	case ev.Named == key.Up || ev.Named == key.Left:
		d.Focus.PrevElement()
		return true
	case ev.Named == key.Enter || (ev.IsChar() && ev.Char == ' '):
		return d.Focus.ActivateFocused()
	}
	return false
}

func (d *Dispatcher) dispatchDefault(ev key.Event) bool {
	if d.Default == nil || !ev.IsChar() {
		return false
	}
	switch ev.Char {
	case 'q', 'Q':
		if d.QuitAllowed != nil && !d.QuitAllowed() {
			return false
		}
	case 't', 'T':
		if d.ThemeAllowed != nil && !d.ThemeAllowed() {
			return false
		}
	}
	fn, ok := d.Default[ev.Char]
	if !ok {
		return false
	}
	fn()
	return true
}
