package store

import "sync"

// Keyed is any entity carrying a collection-unique identifier.
type Keyed interface {
	Key() int64
}

// Revisioned entities additionally carry a monotonic version stamped by the
// backend. Collections use it to drop updates that arrive behind a newer
// state; entities without a version (zero) fall back to last-write-wins.
type Revisioned interface {
	Keyed
	Revision() int64
}

// Collection is an in-memory normalized set of entities keyed by id.
// It holds at most one entry per id and is mutated through the same four
// primitives by both the command path and the realtime event path, so the
// final state for an id is independent of which path delivered it.
//
// The realtime read loop runs on its own goroutine while commands mutate
// from the caller's, so every method takes the lock.
type Collection[T Keyed] struct {
	mu    sync.RWMutex
	items []T
}

// NewCollection returns an empty collection.
func NewCollection[T Keyed]() *Collection[T] {
	return &Collection[T]{}
}

func revisionOf(entity any) int64 {
	if revisioned, ok := entity.(Revisioned); ok {
		return revisioned.Revision()
	}
	return 0
}

// accepts reports whether incoming may overwrite stored under the version
// gate. When either side carries no version the write is accepted.
func accepts(stored, incoming any) bool {
	storedRev := revisionOf(stored)
	incomingRev := revisionOf(incoming)
	if storedRev == 0 || incomingRev == 0 {
		return true
	}
	return incomingRev >= storedRev
}

// Upsert inserts the entity at the front when its id is absent, and
// otherwise replaces the stored entry in place subject to the version gate.
// The boolean reports whether a new entry was inserted; re-delivery of an
// already-present id (a command response racing its own realtime echo)
// never produces a duplicate.
func (c *Collection[T]) Upsert(entity T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Key() == entity.Key() {
			if accepts(c.items[i], entity) {
				c.items[i] = entity
			}
			return false
		}
	}

	c.items = append([]T{entity}, c.items...)
	return true
}

// Replace overwrites the stored entry with a matching id in place, subject
// to the version gate. Unknown ids are a no-op; the boolean reports whether
// the entry was overwritten.
func (c *Collection[T]) Replace(entity T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Key() == entity.Key() {
			if !accepts(c.items[i], entity) {
				return false
			}
			c.items[i] = entity
			return true
		}
	}
	return false
}

// Remove deletes the entry with the given id. Unknown ids are a no-op.
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Key() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// BulkReplace swaps the whole collection for a freshly fetched one.
func (c *Collection[T]) BulkReplace(items []T) {
	copied := make([]T, len(items))
	copy(copied, items)

	c.mu.Lock()
	c.items = copied
	c.mu.Unlock()
}

// Get returns the entry with the given id.
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.items {
		if c.items[i].Key() == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the collection in its current order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]T, len(c.items))
	copy(copied, c.items)
	return copied
}

// Len returns the number of entries.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// mutate runs fn against the backing slice under the write lock. Wrapper
// stores use it for maintenance that must be atomic with their bookkeeping.
func (c *Collection[T]) mutate(fn func(items []T) []T) {
	c.mu.Lock()
	c.items = fn(c.items)
	c.mu.Unlock()
}
