// Package relock provides a re-entrant mutual exclusion lock.
//
// Go's sync.Mutex deliberately rejects recursive locking, but observable
// containers dispatch notifications while holding their instance lock, and a
// notification callback is allowed to mutate the same instance again. Mutex
// models re-entrancy explicitly with a held-by-goroutine id and a depth
// counter: the owning goroutine may re-acquire the lock any number of times,
// and the lock is released when the matching number of Unlock calls is made.
package relock

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Mutex is a re-entrant mutual exclusion lock. The zero value is an unlocked
// mutex. A Mutex must not be copied after first use.
type Mutex struct {
	mu    sync.Mutex
	owner atomic.Int64 // goroutine id of the holder, 0 when unheld
	depth int          // recursion depth, touched only by the owner
}

// Lock acquires the mutex. If the calling goroutine already holds it, the
// hold depth is increased and Lock returns immediately.
func (m *Mutex) Lock() {
	gid := goroutineID()

	if m.owner.Load() == gid {
		m.depth++
		return
	}

	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

// Unlock releases one hold on the mutex. The mutex is unlocked for other
// goroutines once the outermost hold is released. Unlock panics if the
// calling goroutine does not hold the mutex.
func (m *Mutex) Unlock() {
	gid := goroutineID()

	if m.owner.Load() != gid {
		panic("relock: unlock of mutex not held by this goroutine")
	}

	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// goroutineID returns the id of the calling goroutine, parsed from the
// "goroutine N [state]:" header that runtime.Stack writes. Goroutine ids
// start at 1, so 0 is safe as the "unheld" sentinel.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	header := buf[:n]
	header = bytes.TrimPrefix(header, []byte("goroutine "))

	end := bytes.IndexByte(header, ' ')
	if end < 0 {
		end = len(header)
	}

	id, err := strconv.ParseInt(string(header[:end]), 10, 64)
	if err != nil {
		panic("relock: malformed goroutine stack header: " + string(buf[:n]))
	}

	return id
}
