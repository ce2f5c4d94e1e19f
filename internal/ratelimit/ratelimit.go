// Package ratelimit spaces out calls to quota-limited external services.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between successive calls. The LLM
// provider bills per request-minute quota, so callers wait their turn
// instead of bursting.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// New builds a limiter; a non-positive interval disables waiting.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the caller's slot arrives or the context ends. The first
// call never waits.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	var delay time.Duration
	if l.next.After(now) {
		delay = l.next.Sub(now)
		l.next = l.next.Add(l.interval)
	} else {
		l.next = now.Add(l.interval)
	}
	l.mu.Unlock()

	if delay == 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
