package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"AINewsAgent/internal/ports"
)

// ScheduleRunner drives the pipeline from a scheduler, running one digest
// per tick with the tick's local date.
type ScheduleRunner struct {
	pipeline  *Pipeline
	scheduler ports.Scheduler
	location  *time.Location
	logger    *slog.Logger
}

// NewScheduleRunner binds the pipeline to a scheduler. Tick timestamps are
// converted to the given location before formatting the digest date.
func NewScheduleRunner(pipeline *Pipeline, scheduler ports.Scheduler, location *time.Location, logger *slog.Logger) *ScheduleRunner {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleRunner{pipeline: pipeline, scheduler: scheduler, location: location, logger: logger}
}

// Run blocks until the context ends, executing a digest on every tick.
func (r *ScheduleRunner) Run(ctx context.Context) error {
	err := r.scheduler.Start(ctx, func(tick time.Time) {
		date := tick.In(r.location).Format("2006-01-02")
		if err := r.pipeline.Run(ctx, date, ""); err != nil && !errors.Is(err, ErrNoArticles) {
			r.logger.Error("scheduled run failed", "date", date, "error", err)
		}
	})
	if err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.scheduler.Stop(stopCtx)
}
