package memoize

import (
	"sync"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Clock is the time source used for TTL and recency bookkeeping.
// Implementations must be non-decreasing across calls.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. It is meant for tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative durations panic.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		panic("manual clock cannot go backwards")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t. Times before the current reading panic.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Before(c.now) {
		panic("manual clock cannot go backwards")
	}
	c.now = t
}

// ageOf is the length of the span between a bookkeeping timestamp and now.
func ageOf(touchedAt, now time.Time) time.Duration {
	return timespan.BetweenTimes(touchedAt, now).Duration()
}
