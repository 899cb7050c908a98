// internal/store/memory.go
//
// In-memory keyed store for solver sessions and practice games.
//
// Characteristics:
//   - Values keyed by ID in a map, guarded by an RWMutex.
//   - Entries idle longer than the TTL are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown or expired IDs.
var ErrNotFound = errors.New("not found")

// Store persists values of type T by ID.
type Store[T any] interface {
	// Save persists or updates a value.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a value by ID.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes a value; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error
}

type entry[T any] struct {
	v    T
	seen time.Time
}

// Memory is a map-based Store.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]*entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory constructs an empty store. A ttl of 0 keeps entries forever.
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{items: make(map[string]*entry[T]), ttl: ttl, now: time.Now}
}

// Save adds or updates v under id.
func (m *Memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = &entry[T]{v: v, seen: m.now()}
	return nil
}

// Get looks up id and refreshes its idle timer.
func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	e, ok := m.items[id]
	if !ok || m.expired(e) {
		return zero, ErrNotFound
	}
	e.seen = m.now()
	return e.v, nil
}

// Delete removes id.
func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// Len is the number of stored entries, expired ones included until swept.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory[T]) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.items {
		if m.expired(e) {
			delete(m.items, id)
			n++
		}
	}
	return n
}

// Janitor calls Sweep every interval until ctx is done.
func (m *Memory[T]) Janitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Memory[T]) expired(e *entry[T]) bool {
	return m.ttl > 0 && m.now().Sub(e.seen) > m.ttl
}
