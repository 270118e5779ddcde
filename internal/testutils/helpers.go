package testutils

import (
	"context"
	"sync"
	"time"
)

// FakeClock is a ports.Clock that never blocks. Each Sleep advances the
// virtual time and is recorded, so tests can assert on pacing.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewFakeClock creates a clock starting at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Sleeps returns a copy of every recorded sleep.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Total is the sum of every recorded sleep.
func (c *FakeClock) Total() time.Duration {
	var total time.Duration
	for _, d := range c.Sleeps() {
		total += d
	}
	return total
}

// GateClock is a ports.Clock whose sleeps block until the test releases them
// one at a time with Tick, or until the caller's context is done.
type GateClock struct {
	ticks   chan struct{}
	waiting chan struct{}
}

// NewGateClock creates a clock with no pending ticks.
func NewGateClock() *GateClock {
	return &GateClock{
		ticks:   make(chan struct{}),
		waiting: make(chan struct{}, 1024),
	}
}

func (c *GateClock) Now() time.Time {
	return time.Now()
}

func (c *GateClock) Sleep(ctx context.Context, d time.Duration) error {
	c.waiting <- struct{}{}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticks:
		return nil
	}
}

// Waiting blocks until some caller is parked in Sleep, or the timeout elapses.
func (c *GateClock) Waiting(timeout time.Duration) bool {
	select {
	case <-c.waiting:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Tick releases one parked Sleep.
func (c *GateClock) Tick() {
	c.ticks <- struct{}{}
}
