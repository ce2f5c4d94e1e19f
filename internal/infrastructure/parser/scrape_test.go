package parser

import (
	"net/url"
	"testing"

	"AINewsAgent/internal/scanner"
)

func TestScrapeExtractLinkRules(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
		<a href="#main">Jump To Main Content</a>
		<a href="javascript:void(0)">Open The Subscribe Popup</a>
		<a href="/menu">Main Menu Navigation</a>
		<a href="/cookies">Cookie Preferences Panel</a>
		<a href="/short">Short</a>
		<a href="/careers">Careers At The Company</a>
		<a href="/news/big-model-launch">Big Model Launch Today</a>
		<a href="https://other.example.org/post">Cross Site Research Post</a>
	</body></html>`)

	got, err := NewScrapeExtractor().Extract(page, scanner.Request{
		SourceName: "blog",
		BaseURL:    "https://example.com/blog/",
		Limit:      5,
		Denylist:   []string{"careers"},
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d: %v", len(got), got)
	}
	if got[0].Title != "Big Model Launch Today" {
		t.Errorf("first title = %q", got[0].Title)
	}
	if got[0].URL != "https://example.com/news/big-model-launch" {
		t.Errorf("root-relative link resolved to %q", got[0].URL)
	}
	if got[1].URL != "https://other.example.org/post" {
		t.Errorf("absolute link must pass through, got %q", got[1].URL)
	}
}

func TestScrapeExtractVocabulary(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
		<a href="/one">Completely Unrelated Story</a>
		<a href="/two">Claude Gets A Big Update</a>
	</body></html>`)

	got, err := NewScrapeExtractor().Extract(page, scanner.Request{
		SourceName: "vendor",
		BaseURL:    "https://example.com/news",
		Limit:      2,
		Vocabulary: []string{"claude", "model"},
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Claude Gets A Big Update" {
		t.Fatalf("vocabulary gate failed: %v", got)
	}
}

func TestScrapeExtractDeduplicatesTitles(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
		<a href="/a">Repeated Headline Entry</a>
		<a href="/b">Repeated Headline Entry</a>
	</body></html>`)

	got, err := NewScrapeExtractor().Extract(page, scanner.Request{
		SourceName: "blog",
		BaseURL:    "https://example.com/",
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected duplicate title to collapse, got %d articles", len(got))
	}
}

func TestScrapeExtractCards(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
		<div class="news-card">
			<a href="/news/claude-release"><h3>Introducing The New Claude Model</h3></a>
		</div>
		<div class="news-card">
			<a href="https://support.example.com/help"><h3>Introducing The Support Portal</h3></a>
		</div>
		<div class="sidebar">
			<a href="/news/hidden"><h3>Claude Item Outside Any Card</h3></a>
		</div>
	</body></html>`)

	got, err := NewScrapeExtractor().Extract(page, scanner.Request{
		SourceName: "anthropic",
		BaseURL:    "https://www.anthropic.com/news",
		Limit:      1,
		Cards:      true,
		Vocabulary: []string{"claude", "introducing"},
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d: %v", len(got), got)
	}
	if got[0].Title != "Introducing The New Claude Model" {
		t.Errorf("title = %q", got[0].Title)
	}
	if got[0].URL != "https://www.anthropic.com/news/claude-release" {
		t.Errorf("url = %q", got[0].URL)
	}
}

func TestScrapeExtractInvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewScrapeExtractor().Extract([]byte("<html></html>"), scanner.Request{
		BaseURL: "not a url",
		Limit:   5,
	})
	if err == nil {
		t.Fatal("expected error for invalid base url")
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://example.com/blog/")

	cases := []struct {
		href string
		want string
	}{
		{"https://example.com/full", "https://example.com/full"},
		{"/news/item", "https://example.com/news/item"},
		{"relative/item", "https://example.com/blog/relative/item"},
	}
	for _, tc := range cases {
		if got := resolveURL(base, tc.href); got != tc.want {
			t.Errorf("resolveURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}
