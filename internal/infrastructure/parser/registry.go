package parser

import "AINewsAgent/internal/scanner"

// NewRegistry returns a registry with every built-in extractor registered.
func NewRegistry() *scanner.Registry {
	reg := scanner.NewRegistry()
	reg.Register(NewFeedExtractor())
	reg.Register(NewSearchExtractor())
	reg.Register(NewScrapeExtractor())
	return reg
}
