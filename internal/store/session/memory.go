package session

import (
	"context"
	"sync"
	"time"

	"github.com/solmerch/orderbot/internal/model/order"
)

const sweepEvery = 256

// MemoryStore keeps sessions in a process-local map and evicts entries that
// have been idle longer than the TTL. Expired entries are invisible to Get
// immediately; the map itself is swept periodically on the write path.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
	writes  uint64
}

type memoryEntry struct {
	session  order.Session
	lastSeen time.Time
}

// NewMemoryStore returns a store evicting sessions idle longer than ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the live session for userID, treating expired entries as absent.
func (m *MemoryStore) Get(_ context.Context, userID string) (order.Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[userID]
	if !ok || m.now().Sub(e.lastSeen) > m.ttl {
		return order.Session{}, false, nil
	}
	return e.session, true, nil
}

// Put stores the session and refreshes its idle timestamp.
func (m *MemoryStore) Put(_ context.Context, s order.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[s.UserID] = memoryEntry{session: s, lastSeen: m.now()}

	m.writes++
	if m.writes%sweepEvery == 0 {
		cutoff := m.now().Add(-m.ttl)
		for k, e := range m.entries {
			if e.lastSeen.Before(cutoff) {
				delete(m.entries, k)
			}
		}
	}
	return nil
}

// Delete removes the session for userID.
func (m *MemoryStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
