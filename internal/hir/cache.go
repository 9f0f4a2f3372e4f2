package hir

import (
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// EntryState tracks one binding's progress through on-demand checking, so
// the resolver can detect a binding that (transitively) depends on itself
// (§4.5: "on-demand, cycle-detecting name/top-level-binding resolver").
type EntryState uint8

const (
	NotStarted EntryState = iota
	InProgress
	Done
)

// CacheEntry is one memoized checking result.
type CacheEntry struct {
	State EntryState
	Type  types.TypeID
	Node  NodeID // lowered initializer, valid once State == Done
}

// Cache memoizes per-binding checking results across the whole program so
// that a binding referenced from multiple call sites is only type-checked
// once, and so that a binding currently being checked can be recognized
// when it is re-entered (a dependency cycle).
type Cache struct {
	entries map[symbols.BindingID]*CacheEntry
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[symbols.BindingID]*CacheEntry)}
}

// Begin marks binding as in-progress, returning the existing entry and true
// if it was already tracked (whether in-progress or done) so the caller can
// short-circuit instead of re-entering it.
func (c *Cache) Begin(binding symbols.BindingID) (*CacheEntry, bool) {
	if e, ok := c.entries[binding]; ok {
		return e, true
	}
	e := &CacheEntry{State: InProgress}
	c.entries[binding] = e
	return e, false
}

// Finish records the resolved type and lowered node for binding, marking it
// Done.
func (c *Cache) Finish(binding symbols.BindingID, t types.TypeID, node NodeID) {
	e, ok := c.entries[binding]
	if !ok {
		e = &CacheEntry{}
		c.entries[binding] = e
	}
	e.State = Done
	e.Type = t
	e.Node = node
}

// Lookup returns the current entry for binding, if any.
func (c *Cache) Lookup(binding symbols.BindingID) (*CacheEntry, bool) {
	e, ok := c.entries[binding]
	return e, ok
}
