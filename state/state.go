// Package state implements persistent, identity-keyed storage for
// @State-like handles: a cell allocated on first use by a given
// (identity, property-ordinal) pair, retained across frames as long as
// its owning identity stays active, and garbage-collected at the end of
// any render pass where it was not marked active.
package state

import (
	"sync"

	"github.com/tuikit-go/tuikit/identity"
)

// cellKey uniquely identifies a persistent cell.
type cellKey struct {
	id      identity.ID
	ordinal int
}

// Cell is a reference-identity box holding a value of any type plus a
// version counter bumped on every write.
type Cell struct {
	mu      sync.Mutex
	value   any
	version uint64
}

// Get returns the cell's current value.
func (c *Cell) Get() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Version returns the cell's write count.
func (c *Cell) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Store is the identity-keyed table of persistent cells plus the
// bookkeeping needed to hydrate state handles during a render pass and
// garbage-collect dead cells at its end.
//
// Store is not safe for concurrent render passes (the framework never
// runs two), but write notifications (OnWrite) may legitimately arrive
// from the same goroutine mid-traversal, so its internal map access is
// still guarded for clarity and defense against future schedulers.
type Store struct {
	mu    sync.Mutex
	cells map[cellKey]*Cell
	active map[identity.ID]bool

	// OnWrite is invoked synchronously whenever any cell's Set is
	// called. The render loop and memo cache use it to set the
	// needs-render flag and clear the memo cache, respectively.
	OnWrite func()
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		cells:  make(map[cellKey]*Cell),
		active: make(map[identity.ID]bool),
	}
}

// BeginRenderPass empties the active set for a new pass.
func (s *Store) BeginRenderPass() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = make(map[identity.ID]bool)
}

// MarkActive records that id was reached by the traversal during the
// current pass.
func (s *Store) MarkActive(id identity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[id] = true
}

// IsActive reports whether id was marked active during the current
// pass.
func (s *Store) IsActive(id identity.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[id]
}

// EndRenderPass drops every cell whose owning identity was not marked
// active during the pass just completed.
func (s *Store) EndRenderPass() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.cells {
		if !s.active[k.id] {
			delete(s.cells, k)
		}
	}
}

// InvalidateDescendants drops every cell whose identity has id as a
// strict prefix — used when a conditional branch is deselected.
func (s *Store) InvalidateDescendants(id identity.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.cells {
		if id.IsPrefixOf(k.id) {
			delete(s.cells, k)
		}
	}
}

// Hydrate returns the persistent cell for (id, ordinal), allocating it
// with initial() on first encounter. Subsequent calls for the same key
// return the same cell without re-invoking initial.
func (s *Store) Hydrate(id identity.ID, ordinal int, initial func() any) *Cell {
	key := cellKey{id: id, ordinal: ordinal}
	s.mu.Lock()
	cell, ok := s.cells[key]
	if !ok {
		cell = &Cell{value: initial()}
		s.cells[key] = cell
	}
	s.mu.Unlock()
	return cell
}

// Set updates a cell's value, bumps its version, and fires OnWrite.
func (s *Store) Set(c *Cell, v any) {
	c.mu.Lock()
	c.value = v
	c.version++
	c.mu.Unlock()
	if s.OnWrite != nil {
		s.OnWrite()
	}
}

// Len reports the number of live cells. Exposed for tests and debug
// reporting.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cells)
}

// Context is a hydration helper: the identity being hydrated, the store
// it hydrates against, and a property-ordinal counter that starts at 0.
// The render dispatcher does not create one; a view body that wants
// sequential ordinals builds it with NewContext from its render
// context's Identity and State.
//
// Implementations embedding this type carry it on the call stack
// (a parameter threaded through render calls), not in a package-level
// or goroutine-local variable, so nested descents save/restore their
// own counters automatically via Go's normal call-stack semantics.
type Context struct {
	ID      identity.ID
	Store   *Store
	ordinal int
}

// NewContext begins hydration for id against store, with the ordinal
// counter reset to 0.
func NewContext(id identity.ID, store *Store) Context {
	return Context{ID: id, Store: store}
}

// Next claims the next property ordinal and returns a handle-style
// cell, allocating it on first encounter via initial.
func (c *Context) Next(initial func() any) *Cell {
	cell := c.Store.Hydrate(c.ID, c.ordinal, initial)
	c.ordinal++
	return cell
}
