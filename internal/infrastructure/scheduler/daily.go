// Package scheduler provides a wall-clock daily trigger.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"AINewsAgent/internal/ports"
)

// Daily fires its job once per day at a fixed local time.
type Daily struct {
	hour     int
	minute   int
	location *time.Location
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ ports.Scheduler = (*Daily)(nil)

// NewDaily parses a "HH:MM" trigger time in the given location.
func NewDaily(dailyAt string, location *time.Location, logger *slog.Logger) (*Daily, error) {
	at, err := time.Parse("15:04", dailyAt)
	if err != nil {
		return nil, fmt.Errorf("parse daily time %q: %w", dailyAt, err)
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Daily{hour: at.Hour(), minute: at.Minute(), location: location, logger: logger}, nil
}

// Start launches the trigger loop. The job runs synchronously inside the
// loop, so a long run simply delays the next trigger computation.
func (d *Daily) Start(ctx context.Context, job func(time.Time)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return fmt.Errorf("scheduler already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})

	go d.loop(runCtx, job)
	return nil
}

// Stop cancels the loop and waits for it to drain.
func (d *Daily) Stop(ctx context.Context) error {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel = nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Daily) loop(ctx context.Context, job func(time.Time)) {
	defer close(d.done)

	for {
		next := nextRun(time.Now().In(d.location), d.hour, d.minute)
		d.logger.Info("next digest scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case tick := <-timer.C:
			job(tick)
		}
	}
}

// nextRun returns the next occurrence of hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
