package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"AINewsAgent/internal/metrics"
	"AINewsAgent/internal/ports"
	"AINewsAgent/internal/render"
)

// ErrNoArticles reports a run where every source came back empty; no digest
// is produced and no sink is invoked.
var ErrNoArticles = errors.New("no articles collected")

// Pipeline runs the full digest flow: collect, summarize, rank, render,
// deliver, notify.
type Pipeline struct {
	source     ports.ArticleSource
	summarizer *Summarizer
	ranker     *Ranker
	sinks      []ports.Sink
	notifier   ports.Notifier
	logger     *slog.Logger
	run        *metrics.Run
	now        func() time.Time
}

// NewPipeline assembles the stages. The notifier may be nil.
func NewPipeline(source ports.ArticleSource, summarizer *Summarizer, ranker *Ranker, sinks []ports.Sink, notifier ports.Notifier, logger *slog.Logger, run *metrics.Run) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if run == nil {
		run = metrics.NewRun()
	}
	return &Pipeline{
		source:     source,
		summarizer: summarizer,
		ranker:     ranker,
		sinks:      sinks,
		notifier:   notifier,
		logger:     logger,
		run:        run,
		now:        time.Now,
	}
}

// Run executes one digest for the given date string. When sinkName is empty
// the digest goes to every configured sink, otherwise only to the named one.
func (p *Pipeline) Run(ctx context.Context, date, sinkName string) error {
	p.run.Reset()
	p.logger.Info("digest run started", "date", date)

	articles, err := p.source.Collect(ctx)
	if err != nil {
		p.notify(ctx, "AI News Agent failed", fmt.Sprintf("Collection failed: %v", err))
		return fmt.Errorf("collect articles: %w", err)
	}
	if len(articles) == 0 {
		p.logger.Warn("no articles collected, skipping digest")
		p.notify(ctx, "AI News Agent", "No articles collected today, digest skipped.")
		return ErrNoArticles
	}

	summarized, err := p.summarizer.Summarize(ctx, articles)
	if err != nil {
		return fmt.Errorf("summarize articles: %w", err)
	}

	ranked := p.ranker.Rank(ctx, summarized)
	p.logger.Info("articles ranked", "collected", len(articles), "selected", len(ranked))

	title := render.Title(date)
	body := render.Document(date, p.now(), ranked)

	var delivered []string
	var failures []string
	matched := 0
	for _, sink := range p.sinks {
		if sinkName != "" && sink.Name() != sinkName {
			continue
		}
		matched++
		location, err := sink.Deliver(ctx, title, body, date)
		if err != nil {
			p.logger.Error("delivery failed", "sink", sink.Name(), "error", err)
			failures = append(failures, sink.Name())
			continue
		}
		p.logger.Info("digest delivered", "sink", sink.Name(), "location", location)
		if location != "" {
			delivered = append(delivered, fmt.Sprintf("%s: %s", sink.Name(), location))
		} else {
			delivered = append(delivered, sink.Name())
		}
	}

	p.run.LogSummary(p.logger)

	if matched == 0 {
		if sinkName == "" {
			return fmt.Errorf("no sinks configured")
		}
		return fmt.Errorf("no sink named %q configured", sinkName)
	}

	switch {
	case len(delivered) == 0 && len(failures) > 0:
		p.notify(ctx, "AI News Agent failed", "Digest delivery failed: "+strings.Join(failures, ", "))
		return fmt.Errorf("all deliveries failed: %s", strings.Join(failures, ", "))
	case len(failures) > 0:
		p.notify(ctx, title, fmt.Sprintf("Digest with %d articles delivered to %s (failed: %s)",
			len(ranked), strings.Join(delivered, "; "), strings.Join(failures, ", ")))
	default:
		p.notify(ctx, title, fmt.Sprintf("Digest with %d articles delivered to %s",
			len(ranked), strings.Join(delivered, "; ")))
	}

	return nil
}

func (p *Pipeline) notify(ctx context.Context, title, message string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, title, message); err != nil {
		p.logger.Warn("notification failed", "error", err)
	}
}
