package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a clock for tests that advances by a fixed step on
// every read.
//
// The first call to Now() returns the start time; each later call returns the
// previous value plus step. Reset rewinds to the start so the same scenario can
// run repeatedly with identical timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	reads int64
}

// NewDeterministicClock creates a clock starting at the given unix second and
// advancing by step per read.
func NewDeterministicClock(startUnix int64, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: time.Unix(startUnix, 0).UTC(), step: step}
}

// Now returns the next timestamp.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.reads) * c.step)
	c.reads++
	return t
}

// Reads returns how many times Now has been called.
func (c *DeterministicClock) Reads() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Reset rewinds the clock to its start time.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads = 0
}
