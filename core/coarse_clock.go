package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// defaultCoarseInterval is the refresh cadence used when the caller
// does not pick one.
const defaultCoarseInterval = 500 * time.Microsecond

// CoarseClock caches the wall clock on a fixed refresh interval so that
// formatters stamping every record can read it without a time.Now call
// per record. Reads observe at most one interval of staleness and never
// carry a monotonic reading.
type CoarseClock struct {
	nanos    atomic.Int64
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoarseClock starts a clock refreshing every interval; zero or a
// negative interval selects the 500µs default. The caller owns the
// clock and stops it when the last consumer is done. Its Now method
// fits the Options.Clock slot of the formatters.
func NewCoarseClock(interval time.Duration) *CoarseClock {
	if interval <= 0 {
		interval = defaultCoarseInterval
	}
	c := &CoarseClock{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	c.nanos.Store(time.Now().UnixNano())
	go c.run()
	return c
}

func (c *CoarseClock) run() {
	for {
		select {
		case t := <-c.ticker.C:
			c.nanos.Store(t.UnixNano())
		case <-c.done:
			return
		}
	}
}

// Now returns the cached wall-clock time. Safe for concurrent use and
// allocation-free. After Stop it keeps returning the last cached value.
func (c *CoarseClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load())
}

// Stop halts the refresh goroutine. Stop is idempotent.
func (c *CoarseClock) Stop() {
	c.stopOnce.Do(func() {
		c.ticker.Stop()
		close(c.done)
	})
}
