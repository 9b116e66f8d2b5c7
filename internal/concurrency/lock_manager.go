package concurrency

import "sync"

// LockManager serializes work per key, typically a character id. Entries are
// reference counted and dropped once no caller holds or waits on them.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	l := lm.acquire(key)
	defer lm.release(key, l)
	return fn()
}

func (lm *LockManager) acquire(key string) *keyLock {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	return l
}

func (lm *LockManager) release(key string, l *keyLock) {
	l.mu.Unlock()

	lm.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
	lm.mu.Unlock()
}

// Len reports how many keys currently have holders or waiters
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
