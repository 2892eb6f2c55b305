package services

import "sync"

// UserLocks serializes work per user id. Entries are removed once no caller
// holds or waits for them.
type UserLocks struct {
	mu      sync.Mutex
	entries map[uint]*userLockEntry
}

type userLockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{entries: make(map[uint]*userLockEntry)}
}

// Lock blocks until the caller owns userID and returns the matching unlock.
func (locks *UserLocks) Lock(userID uint) func() {
	locks.mu.Lock()
	entry, ok := locks.entries[userID]
	if !ok {
		entry = &userLockEntry{}
		locks.entries[userID] = entry
	}
	entry.refs++
	locks.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		locks.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(locks.entries, userID)
		}
		locks.mu.Unlock()
	}
}

func (locks *UserLocks) size() int {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	return len(locks.entries)
}
