package keylock

import (
	"sync"
	"testing"
)

func TestLockSerializesSameKey(t *testing.T) {
	locks := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("submission/42")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 serialized increments, got %d", counter)
	}
}

func TestLockIndependentKeysDoNotBlock(t *testing.T) {
	locks := New()
	unlockA := locks.Lock("shop/item/1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("shop/item/2")
		unlockB()
		close(done)
	}()

	<-done
}

func TestLockEntriesReleased(t *testing.T) {
	locks := New()
	unlock := locks.Lock("ledger/user/7")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.entries) != 0 {
		t.Fatalf("expected entry map drained, got %d entries", len(locks.entries))
	}
}
