package app

import (
	"sync"
	"testing"
)

func TestGuardExclusiveAcquire(t *testing.T) {
	guard := NewGuard()

	if !guard.TryAcquire("m-1") {
		t.Fatal("first acquire should succeed")
	}
	if guard.TryAcquire("m-1") {
		t.Fatal("second acquire should fail while held")
	}
	if !guard.TryAcquire("m-2") {
		t.Fatal("distinct meetings lock independently")
	}

	guard.Release("m-1")
	if !guard.TryAcquire("m-1") {
		t.Fatal("acquire after release should succeed")
	}
}

func TestGuardSingleWinnerUnderContention(t *testing.T) {
	guard := NewGuard()

	var wg sync.WaitGroup
	wins := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.TryAcquire("m-1") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
}
