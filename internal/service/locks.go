package service

import "sync"

// roomLocks hands out one mutex per room identifier. Reserve and vote
// are check-then-write sequences; holding the room's lock for the
// whole sequence is what makes two overlapping reservations (or two
// racing votes) serialize instead of both succeeding.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the given room, creating it on first
// use, and returns the matching unlock function. Locks are never
// removed; the room population is small and bounded.
func (l *roomLocks) lock(roomID string) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
