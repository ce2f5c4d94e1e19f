package scanner

import (
	"fmt"

	"AINewsAgent/internal/domain"
)

// Strategy selects which extraction algorithm applies to a source. The set
// is closed: adding a source type means adding a constant and an extractor,
// not editing a chain of string checks.
type Strategy string

const (
	StrategyFeed      Strategy = "feed"
	StrategySearchAPI Strategy = "search_api"
	StrategyScrape    Strategy = "web_scrape"
)

// Request carries all per-source parameters an extractor needs.
type Request struct {
	SourceName string
	BaseURL    string
	Limit      int

	// TitleGate makes the feed extractor require one of these terms in the
	// entry title (paper feeds carry a lot of off-topic entries).
	TitleGate []string

	// Vocabulary makes the scrape extractor require one of these terms in
	// the link text before it accepts a candidate.
	Vocabulary []string

	// Denylist extends the built-in boilerplate terms for this source.
	Denylist []string

	// Cards enables the heading/card pre-scan for richer-markup pages.
	Cards bool
}

// Extractor turns one raw payload into article records. Implementations
// return at most req.Limit records, every one of them Valid; any internal
// failure surfaces as an error with zero records and is logged by the caller.
type Extractor interface {
	Strategy() Strategy
	Extract(payload []byte, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from strategy tags to extractor implementations.
type Registry struct {
	extractors map[Strategy]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[Strategy]Extractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(e Extractor) {
	if r.extractors == nil {
		r.extractors = map[Strategy]Extractor{}
	}
	r.extractors[e.Strategy()] = e
}

// Resolve returns the extractor for a strategy or an error if it is absent.
func (r *Registry) Resolve(s Strategy) (Extractor, error) {
	if e, ok := r.extractors[s]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("strategy %s is not registered", s)
}
