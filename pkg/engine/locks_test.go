package engine

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPathLocks_MutualExclusion(t *testing.T) {
	locks := newPathLocks()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("/some/file")
			defer unlock()

			// Read-modify-write with a yield in between; without the
			// lock this loses updates.
			v := counter
			runtime.Gosched()
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
	assert.Equal(t, 0, locks.active())
}

func TestPathLocks_DistinctKeysIndependent(t *testing.T) {
	locks := newPathLocks()

	unlockA := locks.lock("/a")
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		unlockB := locks.lock("/b")
		close(acquired)
		unlockB()
	}()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on /b blocked behind lock on /a")
	}
}

func TestPathLocks_SameKeyBlocks(t *testing.T) {
	locks := newPathLocks()

	unlock := locks.lock("/a")

	acquired := make(chan struct{})
	go func() {
		second := locks.lock("/a")
		close(acquired)
		second()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock on /a acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second lock on /a never acquired after release")
	}
}

func TestPathLocks_DropsUnusedEntries(t *testing.T) {
	locks := newPathLocks()

	unlock := locks.lock("/a")
	assert.Equal(t, 1, locks.active())
	unlock()
	assert.Equal(t, 0, locks.active())
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, lockKey("/tmp/f"), lockKey("/tmp/./f"))
	assert.Equal(t, lockKey("/tmp/f"), lockKey("/tmp/sub/../f"))
	assert.NotEqual(t, lockKey("/tmp/f"), lockKey("/tmp/g"))
}
