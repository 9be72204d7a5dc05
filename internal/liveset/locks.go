// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package liveset

import "sync"

// setLocks hands out one mutex per product set. Entries are dropped when the
// last holder or waiter releases them.
type setLocks struct {
	mu    sync.Mutex
	locks map[int64]*setLock
}

type setLock struct {
	mu   sync.Mutex
	refs int
}

func newSetLocks() *setLocks {
	return &setLocks{locks: make(map[int64]*setLock)}
}

// lock blocks until the set's lock is held and returns its release func.
func (l *setLocks) lock(setID int64) func() {
	l.mu.Lock()
	sl, ok := l.locks[setID]
	if !ok {
		sl = &setLock{}
		l.locks[setID] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, setID)
		}
		l.mu.Unlock()
	}
}

func (l *setLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
