// Package viewstate holds the in-memory state every resource view-model
// shares: an ordered collection, a loading flag and the last error message.
package viewstate

import (
	"sync"

	"daily-planner-go/internal/apierr"
)

// Collection is a most-recent-first list guarded by a mutex. It never does
// I/O; callers fetch first and apply the result afterwards.
type Collection[T any] struct {
	mu           sync.RWMutex
	items        []T
	inFlight     int
	errMessage   string
	discardStale bool
	generation   uint64
	// loads issued before floor predate the last Reset and never apply.
	floor uint64
}

// LoadTicket identifies one issued load.
type LoadTicket uint64

func NewCollection[T any](discardStale bool) *Collection[T] {
	return &Collection[T]{discardStale: discardStale}
}

// BeginLoad marks a load in flight and returns its ticket.
func (c *Collection[T]) BeginLoad() LoadTicket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight++
	c.generation++
	c.errMessage = ""
	return LoadTicket(c.generation)
}

// FinishLoad replaces the whole collection with items when err is nil, or
// records the error otherwise. With stale discarding enabled only the most
// recently issued ticket may apply; it reports whether the result was applied.
func (c *Collection[T]) FinishLoad(ticket LoadTicket, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight > 0 {
		c.inFlight--
	}
	if uint64(ticket) < c.floor {
		return false
	}
	if c.discardStale && uint64(ticket) != c.generation {
		return false
	}
	if err != nil {
		c.errMessage = apierr.Message(err)
		return true
	}

	c.items = append([]T(nil), items...)
	return true
}

func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{item}, c.items...)
	c.errMessage = ""
}

// ReplaceFirst swaps the first element matching match. Reports false when none matched.
func (c *Collection[T]) ReplaceFirst(match func(T) bool, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			c.errMessage = ""
			return true
		}
	}
	return false
}

// RemoveWhere drops every element matching match and returns how many were removed.
func (c *Collection[T]) RemoveWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	if removed > 0 {
		c.errMessage = ""
	}
	return removed
}

// Find returns the first element matching match.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Replace sets the collection wholesale without touching the load bookkeeping.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T(nil), items...)
}

// Reset empties the collection and its error, and drops every load still in
// flight.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.errMessage = ""
	c.generation++
	c.floor = c.generation
}

// Fail records the user-facing message for err.
func (c *Collection[T]) Fail(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errMessage = apierr.Message(err)
}

func (c *Collection[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errMessage = ""
}

// Items returns a copy of the collection.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]T{}, c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *Collection[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.inFlight > 0
}

func (c *Collection[T]) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.errMessage
}

// State is a consistent copy of the collection and its flags.
type State[T any] struct {
	Items     []T
	IsLoading bool
	Error     string
}

func (c *Collection[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State[T]{
		Items:     append([]T{}, c.items...),
		IsLoading: c.inFlight > 0,
		Error:     c.errMessage,
	}
}
