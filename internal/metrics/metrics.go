// Package metrics collects in-process counters for a pipeline run.
package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// Run accumulates counters across one digest run.
type Run struct {
	mu                sync.Mutex
	sourcesFetched    int
	sourcesFailed     int
	articlesCollected int
	llmCalls          int
	llmFailures       int
	startedAt         time.Time
}

// NewRun returns a zeroed counter set.
func NewRun() *Run {
	return &Run{startedAt: time.Now()}
}

// Reset clears all counters at the start of a run.
func (r *Run) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourcesFetched = 0
	r.sourcesFailed = 0
	r.articlesCollected = 0
	r.llmCalls = 0
	r.llmFailures = 0
	r.startedAt = time.Now()
}

// SourceFetched records a successful source with its article count.
func (r *Run) SourceFetched(articles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourcesFetched++
	r.articlesCollected += articles
}

// SourceFailed records a source that contributed nothing.
func (r *Run) SourceFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourcesFailed++
}

// LLMCall records one request to the language-model service.
func (r *Run) LLMCall() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmCalls++
}

// LLMFailed records a service call that fell back.
func (r *Run) LLMFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmFailures++
}

// LogSummary emits the run counters through the provided logger.
func (r *Run) LogSummary(logger *slog.Logger) {
	if logger == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	logger.Info("run summary",
		"sources_ok", r.sourcesFetched,
		"sources_failed", r.sourcesFailed,
		"articles", r.articlesCollected,
		"llm_calls", r.llmCalls,
		"llm_failures", r.llmFailures,
		"elapsed", time.Since(r.startedAt).Round(time.Millisecond),
	)
}
