package parser

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/scanner"
)

// FeedExtractor parses RSS/Atom payloads. Entries arrive newest-first, so
// the cap doubles as a recency window: only the first Limit entries are
// considered, and a configured title gate filters within that window.
type FeedExtractor struct {
	parser *gofeed.Parser
}

var _ scanner.Extractor = (*FeedExtractor)(nil)

// NewFeedExtractor builds a gofeed-backed extractor.
func NewFeedExtractor() *FeedExtractor {
	return &FeedExtractor{parser: gofeed.NewParser()}
}

// Strategy identifies the extractor inside the registry.
func (e *FeedExtractor) Strategy() scanner.Strategy {
	return scanner.StrategyFeed
}

// Extract returns at most req.Limit records in feed order. Entries without
// a title or link are dropped, as are entries failing the title gate.
func (e *FeedExtractor) Extract(payload []byte, req scanner.Request) ([]domain.Article, error) {
	feed, err := e.parser.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := feed.Items
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		if len(req.TitleGate) > 0 && !containsAnyFold(item.Title, req.TitleGate) {
			continue
		}
		articles = append(articles, domain.Article{
			Title:         item.Title,
			URL:           item.Link,
			Source:        req.SourceName,
			PublishedDate: item.Published,
			Content:       truncate(item.Description, excerptLimit),
		})
	}
	return articles, nil
}
