package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/trickcandle/commissionqueue/internal/ports/primary"
)

func TestAcquireDeniesSecondHolder(t *testing.T) {
	locks := newActionLocks()

	release, err := locks.acquire("msg-1")
	if err != nil {
		t.Fatalf("first acquire() error = %v", err)
	}

	if _, err := locks.acquire("msg-1"); !errors.Is(err, primary.ErrConcurrentAction) {
		t.Errorf("second acquire() error = %v, want ErrConcurrentAction", err)
	}

	release()

	if _, err := locks.acquire("msg-1"); err != nil {
		t.Errorf("acquire() after release error = %v", err)
	}
}

func TestAcquireDifferentKeysDoNotContend(t *testing.T) {
	locks := newActionLocks()

	if _, err := locks.acquire("msg-1"); err != nil {
		t.Fatalf("acquire(msg-1) error = %v", err)
	}
	if _, err := locks.acquire("msg-2"); err != nil {
		t.Errorf("acquire(msg-2) error = %v, want nil", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	locks := newActionLocks()

	release, err := locks.acquire("msg-1")
	if err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	release()
	release() // must not panic or unlock someone else's acquisition

	release2, err := locks.acquire("msg-1")
	if err != nil {
		t.Fatalf("re-acquire() error = %v", err)
	}
	defer release2()

	if _, err := locks.acquire("msg-1"); !errors.Is(err, primary.ErrConcurrentAction) {
		t.Error("double release must not free a later acquisition")
	}
}

// TestAcquireConcurrent hammers one key from many goroutines and verifies
// exactly one holder wins per round.
func TestAcquireConcurrent(t *testing.T) {
	locks := newActionLocks()

	const workers = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
		denied   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := locks.acquire("msg-1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				acquired++
			} else if errors.Is(err, primary.ErrConcurrentAction) {
				denied++
			}
		}()
	}
	wg.Wait()

	if acquired != 1 {
		t.Errorf("winners = %d, want exactly 1", acquired)
	}
	if denied != workers-1 {
		t.Errorf("denials = %d, want %d", denied, workers-1)
	}
}
