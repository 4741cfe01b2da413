package input

import (
	"testing"

	"github.com/tuikit-go/tuikit/focus"
	"github.com/tuikit-go/tuikit/key"
)

func TestTextInputLayerTakesPriority(t *testing.T) {
	d := &Dispatcher{
		TextInput: func(key.Event) bool { return true },
		Default:   map[rune]func(){'q': func() { t.Error("default should not fire") }},
	}
	if !d.Dispatch(key.Event{Char: 'q'}) {
		t.Error("expected TextInput to consume event")
	}
}

func TestFallsThroughToDefaultBindings(t *testing.T) {
	fired := false
	d := &Dispatcher{Default: map[rune]func(){'q': func() { fired = true }}}
	if !d.Dispatch(key.Event{Char: 'q'}) {
		t.Error("expected Default to consume event")
	}
	if !fired {
		t.Error("expected default binding to fire")
	}
}

func TestUnboundEventIsNotConsumed(t *testing.T) {
	d := &Dispatcher{}
	if d.Dispatch(key.Event{Char: 'z'}) {
		t.Error("expected unbound event to be unconsumed")
	}
}

func TestViewHandlersTriedInOrderBeforeDefault(t *testing.T) {
	var order []string
	d := &Dispatcher{
		ViewHandlers: []Handler{
			func(key.Event) bool { order = append(order, "inner"); return false },
			func(key.Event) bool { order = append(order, "outer"); return true },
		},
		Default: map[rune]func(){'a': func() { order = append(order, "default") }},
	}
	d.Dispatch(key.Event{Char: 'a'})
	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("order = %v, want [inner outer]", order)
	}
}

func TestTabCyclesFocusWhenNoHigherLayerConsumes(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "a"})
	fm.Register(focus.Registration{ID: "b"})

	d := &Dispatcher{Focus: fm}
	if !d.Dispatch(key.Event{Named: key.Tab}) {
		t.Error("expected Tab to be consumed by focus layer")
	}
	if fm.Active() != "b" {
		t.Errorf("Active() = %q, want %q", fm.Active(), "b")
	}
}

func TestStatusBarLayerPrecedesViewHandlers(t *testing.T) {
	viewCalled := false
	d := &Dispatcher{
		StatusBar:    func(key.Event) bool { return true },
		ViewHandlers: []Handler{func(key.Event) bool { viewCalled = true; return true }},
	}
	d.Dispatch(key.Event{Char: '/'})
	if viewCalled {
		t.Error("expected StatusBar to consume before ViewHandlers runs")
	}
}

func TestArrowKeysNavigateWithinActiveSection(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "s"})
	fm.RegisterElement("s", "e1", nil)
	fm.RegisterElement("s", "e2", nil)

	d := &Dispatcher{Focus: fm}
	if !d.Dispatch(key.Event{Named: key.Down}) {
		t.Fatal("expected Down to be consumed by focus layer")
	}
	if fm.FocusedElement() != "e2" {
		t.Errorf("FocusedElement() = %q, want %q", fm.FocusedElement(), "e2")
	}
	d.Dispatch(key.Event{Named: key.Up})
	if fm.FocusedElement() != "e1" {
		t.Errorf("FocusedElement() = %q, want %q after Up", fm.FocusedElement(), "e1")
	}
}

func TestEnterActivatesFocusedElement(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "s"})
	pressed := false
	fm.RegisterElement("s", "btn", func() { pressed = true })

	d := &Dispatcher{Focus: fm}
	if !d.Dispatch(key.Event{Named: key.Enter}) {
		t.Fatal("expected Enter to be consumed")
	}
	if !pressed {
		t.Error("expected focused element's activation to fire")
	}
}

func TestStatusBarShortcutResolvedFromFocusManager(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fired := false
	fm.Register(focus.Registration{ID: "s", Shortcuts: []focus.Shortcut{
		{Key: "d", Label: "delete", Action: func() { fired = true }},
	}})

	d := &Dispatcher{Focus: fm}
	if !d.Dispatch(key.Event{Char: 'd'}) {
		t.Fatal("expected shortcut-bar layer to consume 'd'")
	}
	if !fired {
		t.Error("expected shortcut action to fire")
	}
}

func TestQuitBindingRespectsQuitAllowed(t *testing.T) {
	quitFired := false
	d := &Dispatcher{
		Default:     map[rune]func(){'q': func() { quitFired = true }},
		QuitAllowed: func() bool { return false },
	}
	if d.Dispatch(key.Event{Char: 'q'}) {
		t.Error("expected gated quit binding not to consume")
	}
	if quitFired {
		t.Error("expected quit binding suppressed by QuitAllowed=false")
	}
}

func TestTextInputCaptureSkipsFocusNavigation(t *testing.T) {
	fm := focus.NewManager()
	fm.BeginFrame()
	fm.Register(focus.Registration{ID: "a"})
	fm.Register(focus.Registration{ID: "b"})
	fm.SetTextInput("field")

	var captured []key.Event
	d := &Dispatcher{
		Focus:     fm,
		TextInput: func(ev key.Event) bool { captured = append(captured, ev); return true },
	}
	d.Dispatch(key.Event{Named: key.Tab})
	if fm.Active() != "a" {
		t.Errorf("Active() = %q, want unchanged %q while text input captures", fm.Active(), "a")
	}
	if len(captured) != 1 {
		t.Errorf("captured %d events, want 1", len(captured))
	}
}
