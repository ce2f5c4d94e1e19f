package scanner

import (
	"strings"

	"AINewsAgent/internal/domain"
)

// FilterByKeywords keeps articles whose title or content contains any of the
// keywords, case-insensitive. Pure and order-preserving; an empty keyword
// list disables filtering.
func FilterByKeywords(articles []domain.Article, keywords []string) []domain.Article {
	if len(keywords) == 0 {
		return articles
	}

	filtered := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Content)
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(keyword)) {
				filtered = append(filtered, article)
				break
			}
		}
	}
	return filtered
}
