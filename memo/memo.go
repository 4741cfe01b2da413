// Package memo implements the subtree memoization cache: a rendered buffer is reused across frames as long as the
// identity, content hash, and proposed size are all unchanged.
package memo

import (
	"sync"

	"github.com/tuikit-go/tuikit/buffer"
	"github.com/tuikit-go/tuikit/identity"
)

// Hashable is implemented by views whose rendered output depends only
// on a cheaply comparable summary of their own fields (their "content").
// Views that do not implement Hashable are never memoized — each
// distinct *value* of such a view is a guaranteed cache miss, which is
// always correct, just not always fast.
type Hashable interface {
	ContentHash() uint64
}

// Key identifies one memoized render: the structural position, the
// view's content hash, and the proposed area it was rendered at.
type Key struct {
	ID          identity.ID
	ContentHash uint64
	Width       int
	Height      int
}

// Cache stores rendered buffers keyed by Key, plus hit/miss counters
// surfaced in the TUIKIT_DEBUG_RENDER report.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*buffer.Buffer
	hits    int
	misses  int
	stores  int
	clears  int
}

// New creates an empty memo cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]*buffer.Buffer)}
}

// Get returns a cached buffer for key, bumping the hit/miss counters.
func (c *Cache) Get(key Key) (*buffer.Buffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return buf, ok
}

// Store records a rendered buffer under key.
func (c *Cache) Store(key Key, buf *buffer.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = buf
	c.stores++
}

// InvalidateIdentity drops every cached entry at or beneath id. The
// Program itself clears the whole cache on state writes and environment
// changes rather than calling this.
func (c *Cache) InvalidateIdentity(id identity.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.ID == id || id.IsPrefixOf(k.ID) {
			delete(c.entries, k)
		}
	}
}

// Clear drops the entire cache, e.g. on a state write or a full
// environment snapshot change (palette or appearance swap). A terminal
// resize does not need it: the proposed size is part of every Key.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*buffer.Buffer)
	c.clears++
}

// GC drops any entry whose identity was not reached during the render
// pass just completed, mirroring state.Store's end-of-pass collection.
func (c *Cache) GC(active func(identity.ID) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if !active(k.ID) {
			delete(c.entries, k)
		}
	}
}

// Stats reports cumulative hit/miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Counters reports every cumulative counter: hits, misses, stores,
// and full-cache clears, for the debug render report.
func (c *Cache) Counters() (hits, misses, stores, clears int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.stores, c.clears
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
