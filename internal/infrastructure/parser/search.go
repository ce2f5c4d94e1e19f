package parser

import (
	"encoding/json"
	"fmt"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/scanner"
)

// SearchExtractor parses Algolia-style search responses: a JSON object with
// a "hits" array. Hits without a title are dropped; hits without an explicit
// URL fall back to a link synthesized from the object identifier.
type SearchExtractor struct{}

var _ scanner.Extractor = (*SearchExtractor)(nil)

// NewSearchExtractor builds the search-API extractor.
func NewSearchExtractor() *SearchExtractor {
	return &SearchExtractor{}
}

// Strategy identifies the extractor inside the registry.
func (e *SearchExtractor) Strategy() scanner.Strategy {
	return scanner.StrategySearchAPI
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	ObjectID    string `json:"objectID"`
	CreatedAt   string `json:"created_at"`
	CommentText string `json:"comment_text"`
}

// Extract returns the first req.Limit qualifying hits in response order.
func (e *SearchExtractor) Extract(payload []byte, req scanner.Request) ([]domain.Article, error) {
	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	articles := make([]domain.Article, 0, req.Limit)
	for _, hit := range resp.Hits {
		if req.Limit > 0 && len(articles) >= req.Limit {
			break
		}
		if hit.Title == "" {
			continue
		}
		link := hit.URL
		if link == "" {
			if hit.ObjectID == "" {
				continue
			}
			link = fmt.Sprintf("https://news.ycombinator.com/item?id=%s", hit.ObjectID)
		}
		articles = append(articles, domain.Article{
			Title:         hit.Title,
			URL:           link,
			Source:        req.SourceName,
			PublishedDate: hit.CreatedAt,
			Content:       truncate(hit.CommentText, excerptLimit),
		})
	}
	return articles, nil
}
