package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"AINewsAgent/internal/config"
	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/metrics"
	"AINewsAgent/internal/ports"
	"AINewsAgent/internal/retry"
	"AINewsAgent/internal/scanner"
)

const defaultSourceLimit = 10

// Collector fetches every configured source sequentially, dispatches the
// payload to the matching extractor, and aggregates the results. One
// unreachable or malformed source reduces output quantity, never
// availability: its failure is logged and contributes zero records.
type Collector struct {
	registry *scanner.Registry
	sources  []config.SourceConfig
	client   *http.Client
	logger   *slog.Logger
	run      *metrics.Run
	fetchTry retry.Config
}

var _ ports.ArticleSource = (*Collector)(nil)

// NewCollector wires the extractor registry with config-defined sources.
func NewCollector(reg *scanner.Registry, sources []config.SourceConfig, client *http.Client, logger *slog.Logger, run *metrics.Run) *Collector {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if run == nil {
		run = metrics.NewRun()
	}
	return &Collector{
		registry: reg,
		sources:  sources,
		client:   client,
		logger:   logger,
		run:      run,
		fetchTry: retry.Config{MaxAttempts: 2, Delay: 2 * time.Second, Backoff: true},
	}
}

// Collect iterates over all sources and returns the aggregate article list.
func (c *Collector) Collect(ctx context.Context) ([]domain.Article, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("extractor registry is not configured")
	}

	var aggregated []domain.Article
	for _, src := range c.sources {
		articles, err := c.collectSource(ctx, src)
		if err != nil {
			c.logger.Error("source failed", "source", src.Name, "error", err)
			c.run.SourceFailed()
			continue
		}
		c.run.SourceFetched(len(articles))
		c.logger.Info("source collected", "source", src.Name, "count", len(articles))
		aggregated = append(aggregated, articles...)
	}

	c.logger.Info("collection done", "sources", len(c.sources), "total_articles", len(aggregated))
	return aggregated, nil
}

func (c *Collector) collectSource(ctx context.Context, src config.SourceConfig) ([]domain.Article, error) {
	extractor, err := c.registry.Resolve(scanner.Strategy(src.Strategy))
	if err != nil {
		return nil, err
	}

	payload, err := c.fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	limit := src.Limit
	if limit <= 0 {
		limit = defaultSourceLimit
	}

	articles, err := extractor.Extract(payload, scanner.Request{
		SourceName: src.Name,
		BaseURL:    src.URL,
		Limit:      limit,
		TitleGate:  src.TitleGate,
		Vocabulary: src.Vocabulary,
		Denylist:   src.Denylist,
		Cards:      src.Cards,
	})
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	kept := articles[:0:0]
	for _, article := range articles {
		if article.Valid() {
			kept = append(kept, article)
		}
	}

	return scanner.FilterByKeywords(kept, src.Keywords), nil
}

func (c *Collector) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var payload []byte
	err := retry.Do(ctx, c.fetchTry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "AINewsAgent/1.0")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request source: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("source returned %s", resp.Status)
		}

		payload, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		return nil
	})
	return payload, err
}
