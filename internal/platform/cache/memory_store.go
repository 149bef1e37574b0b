package cache

import (
	"context"
	"sync"
	"time"

	"stock_dashboard/internal/feature/quotes/domain/entity"
)

type memoEntry struct {
	payload    entity.RawPayload
	insertedAt time.Time
}

// MemoryStore is an in-process Store. Entries are evicted lazily: an entry
// older than the TTL is deleted when it is read, never by a background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoEntry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore. If ttl is 0, it defaults to 5 minutes.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoEntry),
	}
}

// Get returns a live entry. An expired entry is removed and reported as a miss.
func (m *MemoryStore) Get(_ context.Context, key string) (entity.RawPayload, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return entity.RawPayload{}, false, nil
	}
	if m.now().Sub(e.insertedAt) >= m.ttl {
		delete(m.entries, key)
		return entity.RawPayload{}, false, nil
	}
	return e.payload, true, nil
}

// Set stores payload with the current time as its insertion time.
func (m *MemoryStore) Set(_ context.Context, key string, payload entity.RawPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoEntry{payload: payload, insertedAt: m.now()}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet read.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
