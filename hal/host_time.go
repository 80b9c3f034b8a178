package hal

import (
	"sync"
	"time"
)

// hostClock is wall-clock based, or fixed-step when step is non-zero.
type hostClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	ticks uint64
	last  float64
}

func newHostClock() *hostClock {
	return &hostClock{start: time.Now()}
}

// newFixedClock advances by exactly step per tick, independent of wall time.
func newFixedClock(step time.Duration) *hostClock {
	return &hostClock{start: time.Now(), step: step}
}

func (c *hostClock) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
}

func (c *hostClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var now float64
	if c.step > 0 {
		now = (time.Duration(c.ticks) * c.step).Seconds()
	} else {
		now = time.Since(c.start).Seconds()
	}
	if now < c.last {
		now = c.last
	}
	c.last = now
	return now
}
