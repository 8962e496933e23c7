package app

import "sync"

// Guard is an in-process lock table keyed by meeting id. Together with the
// stored-status compare-and-set it gates every transition into running:
// the guard rejects overlapping runs inside one process, the compare-and-set
// closes the race across processes.
type Guard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewGuard builds an empty lock table.
func NewGuard() *Guard {
	return &Guard{held: make(map[string]struct{})}
}

// TryAcquire takes the exclusive lock for meetingID. It never blocks; a
// false return means the meeting is currently running.
func (g *Guard) TryAcquire(meetingID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.held[meetingID]; taken {
		return false
	}
	g.held[meetingID] = struct{}{}
	return true
}

// Release gives the lock back. Safe to call for a lock not held.
func (g *Guard) Release(meetingID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, meetingID)
}
