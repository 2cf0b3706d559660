// Package periodlock provides the in-process mutual exclusion for payroll
// calculation. Locks are keyed by period ID so different periods, even within
// one organization, calculate concurrently. Cross-instance exclusion is
// handled separately by the period row lock inside the run transaction.
package periodlock

import "sync"

type Locker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func New() *Locker {
	return &Locker{held: make(map[string]struct{})}
}

// TryAcquire takes the lock for key without blocking. It returns false when
// the key is already held; callers surface that as a run-in-progress error
// rather than waiting.
func (l *Locker) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

func (l *Locker) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
}
