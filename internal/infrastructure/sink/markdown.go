// Package sink implements digest delivery targets.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"AINewsAgent/internal/ports"
)

// Markdown writes the digest as a markdown file into a directory.
type Markdown struct {
	dir string
}

var _ ports.Sink = (*Markdown)(nil)

// NewMarkdown creates the file sink. An empty dir means the working directory.
func NewMarkdown(dir string) *Markdown {
	if dir == "" {
		dir = "."
	}
	return &Markdown{dir: dir}
}

// Name implements ports.Sink.
func (m *Markdown) Name() string { return "markdown" }

// Deliver writes the digest to top_ai_news_<date>.md and returns its path.
func (m *Markdown) Deliver(_ context.Context, _, body, date string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(m.dir, fmt.Sprintf("top_ai_news_%s.md", date))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write digest file: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}
