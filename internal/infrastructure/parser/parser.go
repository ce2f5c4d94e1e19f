// Package parser contains the per-strategy extractors that turn raw fetched
// payloads into uniform article records, plus the collector that drives them.
package parser

import "strings"

// excerptLimit caps stored excerpt content; longer excerpts only raise the
// summarization bill without improving the summary.
const excerptLimit = 200

func containsAnyFold(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
