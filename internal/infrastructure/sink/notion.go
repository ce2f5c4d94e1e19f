package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"AINewsAgent/internal/config"
	"AINewsAgent/internal/ports"
)

const (
	notionEndpoint = "https://api.notion.com/v1/pages"
	notionVersion  = "2022-06-28"
)

// Notion creates a database page per digest via the Notion REST API.
type Notion struct {
	token      string
	databaseID string
	endpoint   string
	httpClient *http.Client
}

var _ ports.Sink = (*Notion)(nil)

// NewNotion builds the Notion sink from its config section.
func NewNotion(cfg config.NotionConfig, httpClient *http.Client) *Notion {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Notion{
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		endpoint:   notionEndpoint,
		httpClient: httpClient,
	}
}

// Name implements ports.Sink.
func (n *Notion) Name() string { return "notion" }

// Deliver creates a page under the configured database and returns its URL.
// The page title carries the weekday so consecutive digests read naturally
// in a database view.
func (n *Notion) Deliver(ctx context.Context, _, body, date string) (string, error) {
	if n.token == "" || n.databaseID == "" {
		return "", fmt.Errorf("notion credentials are not configured")
	}

	blocks := markdownToBlocks(body)

	pageTitle := "Top AI News"
	if parsed, err := time.Parse("2006-01-02", date); err == nil {
		pageTitle = "Top AI News: " + parsed.Weekday().String()
	}

	payload := map[string]any{
		"parent": map[string]any{"database_id": n.databaseID},
		"properties": map[string]any{
			"Title": map[string]any{
				"title": []any{textSpan(pageTitle)},
			},
			"Date": map[string]any{
				"date": map[string]any{"start": date},
			},
			"Summary": map[string]any{
				"rich_text": []any{textSpan(topStory(blocks))},
			},
		},
		"children": blocks,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("notion API returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var created struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return created.URL, nil
}

type block map[string]any

func textSpan(content string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": map[string]any{"content": content},
	}
}

func headingBlock(level int, content string) block {
	kind := fmt.Sprintf("heading_%d", level)
	return block{
		"object": "block",
		"type":   kind,
		kind: map[string]any{
			"rich_text": []any{textSpan(content)},
		},
	}
}

func paragraphBlock(content string) block {
	return block{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": []any{textSpan(content)},
		},
	}
}

// markdownToBlocks maps the digest markdown onto Notion block objects line
// by line: headings, dividers, link bookmarks, and plain paragraphs.
func markdownToBlocks(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, headingBlock(1, strings.TrimPrefix(line, "# ")))
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, headingBlock(2, strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, headingBlock(3, strings.TrimPrefix(line, "### ")))
		case line == "---":
			blocks = append(blocks, block{
				"object":  "block",
				"type":    "divider",
				"divider": map[string]any{},
			})
		case strings.HasPrefix(line, "**Link:**"):
			url := strings.TrimSpace(strings.TrimPrefix(line, "**Link:**"))
			if strings.HasPrefix(url, "http") {
				blocks = append(blocks, block{
					"object":   "block",
					"type":     "bookmark",
					"bookmark": map[string]any{"url": url},
				})
			} else {
				blocks = append(blocks, paragraphBlock(line))
			}
		default:
			blocks = append(blocks, paragraphBlock(line))
		}
	}
	return blocks
}

// topStory extracts the first article heading for the page summary column.
func topStory(blocks []block) string {
	for _, b := range blocks {
		if b["type"] != "heading_3" {
			continue
		}
		heading, _ := b["heading_3"].(map[string]any)
		spans, _ := heading["rich_text"].([]any)
		if len(spans) == 0 {
			continue
		}
		span, _ := spans[0].(map[string]any)
		text, _ := span["text"].(map[string]any)
		if content, ok := text["content"].(string); ok {
			return content
		}
	}
	return "No articles found"
}
