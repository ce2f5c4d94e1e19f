// Package notify pushes run outcomes to a mobile notification channel.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"AINewsAgent/internal/config"
	"AINewsAgent/internal/ports"
)

const pushoverEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover sends run-outcome notifications through the Pushover API.
type Pushover struct {
	token      string
	userKey    string
	endpoint   string
	httpClient *http.Client
}

var _ ports.Notifier = (*Pushover)(nil)

// NewPushover builds the notifier from its config section.
func NewPushover(cfg config.PushoverConfig, httpClient *http.Client) *Pushover {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Pushover{
		token:      cfg.Token,
		userKey:    cfg.UserKey,
		endpoint:   pushoverEndpoint,
		httpClient: httpClient,
	}
}

// Notify posts one message. Missing credentials make it a no-op so the
// pipeline never depends on the notification channel.
func (p *Pushover) Notify(ctx context.Context, title, message string) error {
	if p.token == "" || p.userKey == "" {
		return nil
	}

	form := url.Values{
		"token":   {p.token},
		"user":    {p.userKey},
		"title":   {title},
		"message": {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushover API returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
