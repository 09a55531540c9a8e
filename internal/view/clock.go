package view

import (
	"context"
	"sync"
	"time"
)

// Clock drives once-per-second recomputation of countdown strings. It is
// started when a countdown view appears and must be stopped when the
// view goes away; Stop waits for the loop to exit so no tick fires after
// it returns.
type Clock struct {
	interval time.Duration
	tick     func(now time.Time)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock creates a clock calling tick every second.
func NewClock(tick func(now time.Time)) *Clock {
	return &Clock{interval: time.Second, tick: tick}
}

// Start begins the tick loop. Starting a running clock is a no-op.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.tick(now)
			}
		}
	}(c.done)
}

// Stop cancels the loop and waits for it to finish.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
