package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The order service keys them by Slack
// channel so read-merge-write against a channel's sheet is serialized and
// near-simultaneous mentions cannot silently drop each other's edits.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Locks are never reaped; the key space (channels) is small and bounded.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
