package testutil

import (
	"sync"
	"time"
)

// Epoch is the first instant returned by NewDeterministicClock.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeterministicClock provides a thread-safe stepping wall clock for tests.
//
// Each call to Now returns the previous instant advanced by a fixed step, so
// records created in sequence get distinct, predictable timestamps. The clock
// can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	base  time.Time
	step  time.Duration
	ticks int64
}

// NewDeterministicClock creates a clock starting at Epoch, stepping one second.
//
// The first call to Now() returns Epoch.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(Epoch, time.Second)
}

// NewDeterministicClockAt creates a clock starting at base, stepping by step.
// A zero step freezes the clock at base.
func NewDeterministicClockAt(base time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{base: base.UTC(), step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.ticks) * c.step)
	c.ticks++
	return t
}

// Ticks returns how many times Now has been called since the last reset.
func (c *DeterministicClock) Ticks() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset rewinds the clock to its base.
//
// After Reset(), the next call to Now() returns the base instant.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
