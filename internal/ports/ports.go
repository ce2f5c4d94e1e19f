package ports

import (
	"context"
	"time"

	"AINewsAgent/internal/domain"
)

// ArticleSource aggregates article records from every configured upstream source.
type ArticleSource interface {
	Collect(ctx context.Context) ([]domain.Article, error)
}

// ChatRequest carries one chat-completion exchange with the LLM service.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// ChatClient pushes prompts to an OpenAI-compatible chat-completion API.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Sink delivers a finished digest document. A successful delivery may return
// a location reference (file path, page URL) for notification purposes.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, title, body, date string) (string, error)
}

// Notifier reports run outcomes to a push channel.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
