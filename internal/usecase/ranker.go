package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/metrics"
	"AINewsAgent/internal/ports"
)

const (
	rankSystemPrompt = "You are an expert AI analyst. Select the most important AI news stories based on technical significance, business impact, and research value."
	rankMaxTokens    = 50
	rankTemperature  = 0.2
)

var digitRun = regexp.MustCompile(`\d+`)

// Ranker asks the LLM to pick the top-N articles by importance. Any failure
// or unusable answer degrades to collection order: the first N articles.
type Ranker struct {
	client ports.ChatClient
	topN   int
	logger *slog.Logger
	run    *metrics.Run
}

// NewRanker builds a ranker selecting up to topN articles.
func NewRanker(client ports.ChatClient, topN int, logger *slog.Logger, run *metrics.Run) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	if run == nil {
		run = metrics.NewRun()
	}
	return &Ranker{client: client, topN: topN, logger: logger, run: run}
}

// Rank returns at most topN articles ordered by ranked importance.
func (r *Ranker) Rank(ctx context.Context, articles []domain.Article) []domain.Article {
	n := r.topN
	if n <= 0 || n > len(articles) {
		n = len(articles)
	}
	if len(articles) == 0 {
		return nil
	}

	r.run.LLMCall()
	answer, err := r.client.Complete(ctx, ports.ChatRequest{
		System:      rankSystemPrompt,
		User:        r.prompt(articles, n),
		MaxTokens:   rankMaxTokens,
		Temperature: rankTemperature,
	})
	if err != nil {
		r.logger.Warn("ranking failed, keeping collection order", "error", err)
		r.run.LLMFailed()
		return articles[:n]
	}

	picked := r.parseSelection(answer, len(articles), n)
	if len(picked) == 0 {
		r.logger.Warn("ranking answer unusable, keeping collection order", "answer", answer)
		return articles[:n]
	}

	ranked := make([]domain.Article, 0, len(picked))
	for _, idx := range picked {
		ranked = append(ranked, articles[idx])
	}
	return ranked
}

func (r *Ranker) prompt(articles []domain.Article, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are AI news summaries from today. Choose and rank the %d most important ones "+
		"for AI researchers, builders, and investors. Consider:\n"+
		"- Technical significance and innovation\n"+
		"- Business and market impact\n"+
		"- Research breakthroughs\n"+
		"- Industry trends and developments\n\n", n)
	fmt.Fprintf(&b, "Return ONLY the numbers of the top %d articles in order of importance (1 being most important):\n\n", n)
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. %s\n   Source: %s\n   Summary: %s\n\n", i+1, article.Title, article.Source, article.Summary)
	}
	fmt.Fprintf(&b, "Top %d article numbers (comma-separated):", n)
	return b.String()
}

// parseSelection extracts 1-based indices from the answer, drops anything out
// of range, and keeps the first occurrence of each index only.
func (r *Ranker) parseSelection(answer string, total, n int) []int {
	tokens := digitRun.FindAllString(answer, -1)
	if len(tokens) > n {
		tokens = tokens[:n]
	}

	seen := make(map[int]bool, len(tokens))
	picked := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		num, err := strconv.Atoi(tok)
		if err != nil || num < 1 || num > total || seen[num] {
			continue
		}
		seen[num] = true
		picked = append(picked, num-1)
	}
	return picked
}
