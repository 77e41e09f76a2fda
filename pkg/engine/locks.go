package engine

import (
	"path/filepath"
	"sync"
)

// pathLocks hands out one mutex per path key, created on demand and
// dropped when the last holder releases it.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// lock blocks until the key's mutex is held and returns the release
// function. Locks for distinct keys are independent.
func (p *pathLocks) lock(key string) func() {
	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

// active reports how many keys currently have holders or waiters.
func (p *pathLocks) active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}

// lockKey normalizes a target path so different spellings of the same
// file serialize on one lock.
func lockKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
