package app

import (
	"sync"

	"github.com/trickcandle/commissionqueue/internal/ports/primary"
)

// actionLocks serializes lifecycle transitions per commission. A commission
// is keyed by its current message id, or by its natural key before a first
// rendering exists. Acquisition never blocks: a second action arriving while
// one is in flight is denied immediately with ErrConcurrentAction so the
// actor can retry, and actions on different commissions never contend.
type actionLocks struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func newActionLocks() *actionLocks {
	return &actionLocks{inflight: make(map[string]struct{})}
}

// acquire reserves key for one transition. The returned release function is
// idempotent and must be called (deferred) even when the transition fails.
func (l *actionLocks) acquire(key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.inflight[key]; held {
		return nil, primary.ErrConcurrentAction
	}
	l.inflight[key] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.inflight, key)
			l.mu.Unlock()
		})
	}
	return release, nil
}
