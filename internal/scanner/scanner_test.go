package scanner

import (
	"strings"
	"testing"

	"AINewsAgent/internal/domain"
)

type stubExtractor struct {
	strategy Strategy
}

func (s *stubExtractor) Strategy() Strategy { return s.strategy }

func (s *stubExtractor) Extract([]byte, Request) ([]domain.Article, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	feed := &stubExtractor{strategy: StrategyFeed}
	reg.Register(feed)

	got, err := reg.Resolve(StrategyFeed)
	if err != nil {
		t.Fatalf("Resolve(feed) returned error: %v", err)
	}
	if got != feed {
		t.Errorf("Resolve(feed) returned wrong extractor")
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, err := reg.Resolve(StrategyScrape)
	if err == nil {
		t.Fatal("expected error for unregistered strategy")
	}
	if !strings.Contains(err.Error(), "web_scrape") {
		t.Errorf("error should name the strategy, got: %v", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first := &stubExtractor{strategy: StrategySearchAPI}
	second := &stubExtractor{strategy: StrategySearchAPI}
	reg.Register(first)
	reg.Register(second)

	got, err := reg.Resolve(StrategySearchAPI)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != second {
		t.Errorf("Register should replace an existing extractor")
	}
}
