// Package app assembles the application from its configuration.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"AINewsAgent/internal/config"
	"AINewsAgent/internal/infrastructure/llm"
	"AINewsAgent/internal/infrastructure/notify"
	"AINewsAgent/internal/infrastructure/parser"
	"AINewsAgent/internal/infrastructure/scheduler"
	"AINewsAgent/internal/infrastructure/sink"
	"AINewsAgent/internal/logging"
	"AINewsAgent/internal/metrics"
	"AINewsAgent/internal/ports"
	"AINewsAgent/internal/ratelimit"
	"AINewsAgent/internal/usecase"
)

// App holds the wired pipeline and its collaborators.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New wires every stage from the configuration. Optional sinks join only
// when their credentials are present, so a bare OPENAI_API_KEY still yields
// a working markdown pipeline.
func New(cfg config.Config) *App {
	logger := logging.New(cfg.Logging.Level)
	run := metrics.NewRun()
	httpClient := &http.Client{Timeout: 30 * time.Second}

	registry := parser.NewRegistry()

	collector := parser.NewCollector(registry, cfg.Sources, httpClient, logger.With("component", "collector"), run)

	chatClient := llm.NewClient(cfg.OpenAI, nil)
	limiter := ratelimit.New(time.Duration(cfg.Pipeline.SummaryDelayMS) * time.Millisecond)

	summarizer := usecase.NewSummarizer(chatClient, limiter, logger.With("component", "summarizer"), run)
	ranker := usecase.NewRanker(chatClient, cfg.Pipeline.TopN, logger.With("component", "ranker"), run)

	sinks := []ports.Sink{sink.NewMarkdown(cfg.Output.Dir)}
	if cfg.Notion.Token != "" && cfg.Notion.DatabaseID != "" {
		sinks = append(sinks, sink.NewNotion(cfg.Notion, httpClient))
	}
	if cfg.Email.SMTPServer != "" {
		sinks = append(sinks, sink.NewEmail(cfg.Email))
	}

	notifier := notify.NewPushover(cfg.Pushover, httpClient)

	pipeline := usecase.NewPipeline(collector, summarizer, ranker, sinks, notifier, logger.With("component", "pipeline"), run)

	return &App{cfg: cfg, logger: logger, pipeline: pipeline}
}

// Logger exposes the application logger for command-level reporting.
func (a *App) Logger() *slog.Logger { return a.logger }

// RunOnce executes a single digest for the given date. An empty date means
// today in the scheduler timezone.
func (a *App) RunOnce(ctx context.Context, date, sinkName string) error {
	if date == "" {
		date = time.Now().In(a.cfg.Scheduler.Location()).Format("2006-01-02")
	}
	return a.pipeline.Run(ctx, date, sinkName)
}

// RunScheduled blocks, executing a digest every day at the configured time.
func (a *App) RunScheduled(ctx context.Context) error {
	daily, err := scheduler.NewDaily(a.cfg.Scheduler.DailyAt, a.cfg.Scheduler.Location(), a.logger)
	if err != nil {
		return err
	}
	runner := usecase.NewScheduleRunner(a.pipeline, daily, a.cfg.Scheduler.Location(), a.logger)
	return runner.Run(ctx)
}
