package intake

import (
	"sync"
	"time"
)

const lockSweepEvery = 512

// userLocks serializes event handling per user identity while letting
// distinct users proceed in parallel. Idle entries are swept periodically so
// the map does not grow with every user ever seen.
type userLocks struct {
	mu      sync.Mutex
	byKey   map[string]*lockEntry
	hits    uint64
	idleTTL time.Duration
}

type lockEntry struct {
	mu       sync.Mutex
	refs     int
	lastSeen time.Time
}

func newUserLocks(idleTTL time.Duration) *userLocks {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &userLocks{
		byKey:   make(map[string]*lockEntry),
		idleTTL: idleTTL,
	}
}

// lock acquires the per-key mutex and returns its release func.
func (l *userLocks) lock(key string) func() {
	l.mu.Lock()
	e, ok := l.byKey[key]
	if !ok {
		e = &lockEntry{}
		l.byKey[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		e.lastSeen = time.Now()

		l.hits++
		if l.hits%lockSweepEvery == 0 {
			cutoff := time.Now().Add(-l.idleTTL)
			for k, v := range l.byKey {
				if v.refs == 0 && v.lastSeen.Before(cutoff) {
					delete(l.byKey, k)
				}
			}
		}
		l.mu.Unlock()
	}
}
