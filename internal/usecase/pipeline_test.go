package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"AINewsAgent/internal/domain"
	"AINewsAgent/internal/ports"
)

type fakeSource struct {
	articles []domain.Article
	err      error
}

func (f *fakeSource) Collect(context.Context) ([]domain.Article, error) {
	return f.articles, f.err
}

type fakeSink struct {
	name     string
	err      error
	titles   []string
	bodies   []string
	location string
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(_ context.Context, title, body, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return f.location, nil
}

type fakeNotifier struct {
	titles   []string
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, title, message string) error {
	f.titles = append(f.titles, title)
	f.messages = append(f.messages, message)
	return nil
}

func newTestPipeline(source ports.ArticleSource, chat *fakeChat, topN int, sinks []ports.Sink, notifier ports.Notifier) *Pipeline {
	return NewPipeline(
		source,
		NewSummarizer(chat, nil, nil, nil),
		NewRanker(chat, topN, nil, nil),
		sinks,
		notifier,
		nil,
		nil,
	)
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Article 1", URL: "http://example.com/1", Source: "feed_a"},
		{Title: "Article 2", URL: "http://example.com/2", Source: "feed_b"},
		{Title: "Article 3", URL: "http://example.com/3", Source: "feed_c"},
	}}
	chat := &fakeChat{answers: []string{"Sum 1.", "Sum 2.", "Sum 3.", "2, 1"}}
	sink := &fakeSink{name: "markdown", location: "/tmp/out.md"}
	notifier := &fakeNotifier{}

	p := newTestPipeline(source, chat, 2, []ports.Sink{sink}, notifier)

	if err := p.Run(context.Background(), "2024-01-15", ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(sink.bodies) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sink.bodies))
	}
	body := sink.bodies[0]
	if !strings.Contains(body, "# Top AI News - 2024-01-15") {
		t.Errorf("digest missing heading:\n%s", body)
	}
	if !strings.Contains(body, "### 1. Article 2") || !strings.Contains(body, "### 2. Article 1") {
		t.Errorf("digest not in ranked order:\n%s", body)
	}
	if strings.Contains(body, "Article 3") {
		t.Errorf("unranked article leaked into digest")
	}
	if sink.titles[0] != "Top AI News - 2024-01-15" {
		t.Errorf("delivery title = %q", sink.titles[0])
	}

	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "/tmp/out.md") {
		t.Errorf("notification missing delivery location: %v", notifier.messages)
	}
}

func TestPipelineRunNoArticles(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{name: "markdown"}
	notifier := &fakeNotifier{}
	p := newTestPipeline(&fakeSource{}, &fakeChat{}, 5, []ports.Sink{sink}, notifier)

	err := p.Run(context.Background(), "2024-01-15", "")
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
	if len(sink.bodies) != 0 {
		t.Error("sink must not run for an empty collection")
	}
	if len(notifier.messages) != 1 {
		t.Errorf("expected a skip notification, got %v", notifier.messages)
	}
}

func TestPipelineRunCollectFailure(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(&fakeSource{err: fmt.Errorf("dns broke")}, &fakeChat{}, 5, nil, nil)

	if err := p.Run(context.Background(), "2024-01-15", ""); err == nil {
		t.Fatal("expected error when collection fails")
	}
}

func TestPipelineRunSinkSelection(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Only Article", URL: "http://example.com/1", Source: "feed"},
	}}
	chat := &fakeChat{answers: []string{"Sum.", "1"}}
	md := &fakeSink{name: "markdown"}
	mail := &fakeSink{name: "email"}

	p := newTestPipeline(source, chat, 1, []ports.Sink{md, mail}, nil)

	if err := p.Run(context.Background(), "2024-01-15", "email"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(md.bodies) != 0 {
		t.Error("markdown sink must be skipped when email is selected")
	}
	if len(mail.bodies) != 1 {
		t.Error("email sink must receive the digest")
	}
}

func TestPipelineRunUnknownSink(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Only Article", URL: "http://example.com/1", Source: "feed"},
	}}
	chat := &fakeChat{answers: []string{"Sum.", "1"}}

	p := newTestPipeline(source, chat, 1, []ports.Sink{&fakeSink{name: "markdown"}}, nil)

	if err := p.Run(context.Background(), "2024-01-15", "carrier-pigeon"); err == nil {
		t.Fatal("expected error for unknown sink name")
	}
}

func TestPipelineRunAllDeliveriesFail(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Only Article", URL: "http://example.com/1", Source: "feed"},
	}}
	chat := &fakeChat{answers: []string{"Sum.", "1"}}
	broken := &fakeSink{name: "markdown", err: fmt.Errorf("disk full")}
	notifier := &fakeNotifier{}

	p := newTestPipeline(source, chat, 1, []ports.Sink{broken}, notifier)

	if err := p.Run(context.Background(), "2024-01-15", ""); err == nil {
		t.Fatal("expected error when every delivery fails")
	}
	if len(notifier.titles) != 1 || !strings.Contains(notifier.titles[0], "failed") {
		t.Errorf("expected failure notification, got %v", notifier.titles)
	}
}
