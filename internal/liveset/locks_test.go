// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package liveset

import (
	"sync"
	"testing"
	"time"
)

func TestSetLocks_SerializesOneSet(t *testing.T) {
	l := newSetLocks()
	unlock := l.lock(1)

	acquired := make(chan struct{})
	go func() {
		release := l.lock(1)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock was not handed over after release")
	}
}

func TestSetLocks_DistinctSetsDoNotBlock(t *testing.T) {
	l := newSetLocks()
	unlock := l.lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		l.lock(2)()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on set 2 blocked behind set 1")
	}
}

func TestSetLocks_ReleasesEntries(t *testing.T) {
	l := newSetLocks()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			l.lock(id % 5)()
		}(int64(i))
	}
	wg.Wait()

	if n := l.size(); n != 0 {
		t.Errorf("size() = %d after all releases, want 0", n)
	}
}
