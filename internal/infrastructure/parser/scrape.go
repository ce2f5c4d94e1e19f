package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/scanner"
)

// minLinkTextLen filters nav and icon links, which rarely carry a full headline.
const minLinkTextLen = 10

// Link targets that can never point at an article.
var skipHrefMarkers = []string{"#", "javascript:", "mailto:", "tel:"}

// Link texts that mark navigation chrome rather than content.
var boilerplateTerms = []string{"skip", "menu", "navigation", "cookie", "privacy"}

// Contact and support links that card pages surface next to real articles.
var contactTerms = []string{"press@", "support.", "mailto:"}

// Card containers worth scanning for headings, by class keyword.
var cardClassTerms = []string{"card", "article", "news", "post"}

// ScrapeExtractor pulls article candidates out of pages with no semantic
// markup. It optimizes for precision over recall: every retained record
// costs an LLM call downstream, so ambiguous candidates are dropped.
type ScrapeExtractor struct{}

var _ scanner.Extractor = (*ScrapeExtractor)(nil)

// NewScrapeExtractor builds the unstructured-page extractor.
func NewScrapeExtractor() *ScrapeExtractor {
	return &ScrapeExtractor{}
}

// Strategy identifies the extractor inside the registry.
func (e *ScrapeExtractor) Strategy() scanner.Strategy {
	return scanner.StrategyScrape
}

// Extract scans the page for article links, optionally preceded by a
// heading/card pass, and stops once req.Limit candidates are accepted.
func (e *ScrapeExtractor) Extract(payload []byte, req scanner.Request) ([]domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	base, err := url.Parse(req.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", req.BaseURL)
	}

	seen := map[string]struct{}{}
	var articles []domain.Article

	if req.Cards {
		articles = e.scanCards(doc, base, req, seen)
	}
	if len(articles) < req.Limit {
		articles = append(articles, e.scanLinks(doc, base, req, seen, req.Limit-len(articles))...)
	}
	return articles, nil
}

// scanLinks walks every anchor on the page inside an over-fetch window.
// Most candidates are rejected, so the window is a multiple of the cap.
func (e *ScrapeExtractor) scanLinks(doc *goquery.Document, base *url.URL, req scanner.Request, seen map[string]struct{}, remaining int) []domain.Article {
	window := 3 * req.Limit
	if len(req.Vocabulary) > 0 {
		window = 5 * req.Limit
	}

	var collected []domain.Article
	doc.Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= window || len(collected) >= remaining {
			return false
		}
		href, _ := sel.Attr("href")
		title := strings.TrimSpace(sel.Text())

		article, ok := e.candidate(title, href, base, req)
		if !ok {
			return true
		}
		if _, dup := seen[article.Title]; dup {
			return true
		}
		seen[article.Title] = struct{}{}
		collected = append(collected, article)
		return true
	})
	return collected
}

// scanCards pairs headings inside card-like containers with their nearest
// enclosing or contained link, deduplicating by exact title string.
func (e *ScrapeExtractor) scanCards(doc *goquery.Document, base *url.URL, req scanner.Request, seen map[string]struct{}) []domain.Article {
	var collected []domain.Article
	doc.Find("article, div").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if len(collected) >= req.Limit {
			return false
		}
		class, _ := card.Attr("class")
		if !containsAnyFold(class, cardClassTerms) {
			return true
		}

		card.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			if len(collected) >= req.Limit {
				return false
			}
			title := strings.TrimSpace(heading.Text())

			link := heading.Closest("a")
			if link.Length() == 0 {
				link = heading.Find("a").First()
			}
			href, _ := link.Attr("href")

			article, ok := e.candidate(title, href, base, req)
			if !ok {
				return true
			}
			if _, dup := seen[article.Title]; dup {
				return true
			}
			seen[article.Title] = struct{}{}
			collected = append(collected, article)
			return true
		})
		return true
	})
	return collected
}

// candidate applies the rejection rules in order and resolves the target URL.
func (e *ScrapeExtractor) candidate(title, href string, base *url.URL, req scanner.Request) (domain.Article, bool) {
	if href == "" || len(title) < minLinkTextLen {
		return domain.Article{}, false
	}
	if containsAnyFold(href, skipHrefMarkers) {
		return domain.Article{}, false
	}
	if containsAnyFold(title, boilerplateTerms) || containsAnyFold(title, req.Denylist) {
		return domain.Article{}, false
	}
	if req.Cards && (containsAnyFold(title, contactTerms) || containsAnyFold(href, contactTerms)) {
		return domain.Article{}, false
	}
	if len(req.Vocabulary) > 0 && !containsAnyFold(title, req.Vocabulary) {
		return domain.Article{}, false
	}

	resolved := resolveURL(base, href)
	if resolved == "" {
		return domain.Article{}, false
	}

	return domain.Article{
		Title:   title,
		URL:     resolved,
		Source:  req.SourceName,
		Content: title,
	}, true
}

// resolveURL absolutizes a link target: root-relative paths get the page
// origin, relative paths join under the base path, absolute links pass
// through untouched.
func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return base.Scheme + "://" + base.Host + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
