// Package lifecycle tracks view appearance and disappearance across
// frames: a view "appears" the first frame its identity is
// seen, and "disappears" the first frame after that where it is no
// longer seen. A cancellable task modifier binds a goroutine's lifetime
// to its owning view's presence in the tree.
package lifecycle

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tuikit-go/tuikit/identity"
)

// Tracker holds two token sets: everything seen
// in the current frame, and everything that has ever appeared (and
// hasn't since disappeared).
type Tracker struct {
	mu            sync.Mutex
	seenThisFrame map[identity.ID]bool
	appearedEver  map[identity.ID]bool
	tasks         map[identity.ID]*TaskHandle

	// OnAppear fires synchronously from MarkSeen for each identity
	// seen for the first time.
	OnAppear func(identity.ID)
	// OnDisappear fires for each identity that was appeared but was not
	// marked seen this frame.
	OnDisappear func(identity.ID)
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seenThisFrame: make(map[identity.ID]bool),
		appearedEver:  make(map[identity.ID]bool),
		tasks:         make(map[identity.ID]*TaskHandle),
	}
}

// BeginFrame clears the seen-this-frame set. Call once before each
// render pass.
func (t *Tracker) BeginFrame() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seenThisFrame = make(map[identity.ID]bool)
}

// MarkSeen records that id was reached by the traversal during the
// current frame. The first time an identity is ever seen, OnAppear
// fires synchronously, from inside the render traversal.
func (t *Tracker) MarkSeen(id identity.ID) {
	t.mu.Lock()
	t.seenThisFrame[id] = true
	first := !t.appearedEver[id]
	if first {
		t.appearedEver[id] = true
	}
	t.mu.Unlock()
	if first && t.OnAppear != nil {
		t.OnAppear(id)
	}
}

// EndFrame compares appearedEver against seenThisFrame, firing
// OnDisappear (and cancelling any bound task) for identities that
// vanished. A vanished identity is removed from appearedEver, so a
// later re-appearance fires OnAppear again.
func (t *Tracker) EndFrame() {
	t.mu.Lock()
	var disappeared []identity.ID
	for id := range t.appearedEver {
		if !t.seenThisFrame[id] {
			delete(t.appearedEver, id)
			disappeared = append(disappeared, id)
		}
	}
	var toCancel []*TaskHandle
	for _, id := range disappeared {
		if h, ok := t.tasks[id]; ok {
			toCancel = append(toCancel, h)
			delete(t.tasks, id)
		}
	}
	t.mu.Unlock()

	for _, h := range toCancel {
		h.Cancel()
	}
	for _, id := range disappeared {
		if t.OnDisappear != nil {
			t.OnDisappear(id)
		}
	}
}

// TaskHandle identifies and controls one lifecycle-bound background
// task. ID is a stable token distinct from the owning view's
// structural identity, used to correlate logs/debug output across a
// task's possibly-long lifetime.
type TaskHandle struct {
	ID     uuid.UUID
	cancel context.CancelFunc
}

// Cancel stops the task if it has not already completed or been
// cancelled. Safe to call more than once.
func (h *TaskHandle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// RunTask starts fn in its own goroutine under a context that Tracker
// cancels automatically when id disappears. Calling RunTask again for an id that
// already has a running task replaces it, cancelling the previous one
// first.
func (t *Tracker) RunTask(parent context.Context, id identity.ID, fn func(context.Context)) *TaskHandle {
	ctx, cancel := context.WithCancel(parent)
	handle := &TaskHandle{ID: uuid.New(), cancel: cancel}

	t.mu.Lock()
	if prior, ok := t.tasks[id]; ok {
		prior.Cancel()
	}
	t.tasks[id] = handle
	t.mu.Unlock()

	go fn(ctx)
	return handle
}
