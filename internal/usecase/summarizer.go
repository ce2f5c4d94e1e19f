// Package usecase contains the digest pipeline stages and their orchestration.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/metrics"
	"AINewsAgent/internal/ports"
	"AINewsAgent/internal/ratelimit"
)

const (
	summarySystemPrompt = "You are an expert AI researcher and technology analyst. Provide clear, concise summaries of AI news articles."
	summaryMaxTokens    = 60
	summaryTemperature  = 0.3
	summaryContentCap   = 1000
)

// Summarizer produces a one/two-sentence summary for every article. A failed
// service call degrades to a placeholder summary so the article never drops
// out of the digest.
type Summarizer struct {
	client  ports.ChatClient
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	run     *metrics.Run
}

// NewSummarizer wires the LLM client with the per-call rate limiter.
func NewSummarizer(client ports.ChatClient, limiter *ratelimit.Limiter, logger *slog.Logger, run *metrics.Run) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if run == nil {
		run = metrics.NewRun()
	}
	return &Summarizer{client: client, limiter: limiter, logger: logger, run: run}
}

// Summarize returns the input articles in order, each with Summary set.
func (s *Summarizer) Summarize(ctx context.Context, articles []domain.Article) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		summary, err := s.summarizeOne(ctx, article)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("summary failed", "title", article.Title, "error", err)
			s.run.LLMFailed()
			summary = "Summary unavailable: " + article.Title
		}

		article.Summary = summary
		out = append(out, article)
	}
	return out, nil
}

func (s *Summarizer) summarizeOne(ctx context.Context, article domain.Article) (string, error) {
	content := article.Content
	if content == "" {
		content = article.Title
	}
	if len(content) > summaryContentCap {
		content = content[:summaryContentCap]
	}

	prompt := fmt.Sprintf(
		"Please provide a concise 2-3 sentence summary of this AI-related article. "+
			"Focus on the key technical developments, business implications, or research breakthroughs.\n\n"+
			"Title: %s\nSource: %s\nContent: %s\n\nSummary:",
		article.Title, article.Source, content)

	s.run.LLMCall()
	summary, err := s.client.Complete(ctx, ports.ChatRequest{
		System:      summarySystemPrompt,
		User:        prompt,
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", fmt.Errorf("empty summary")
	}
	return summary, nil
}
