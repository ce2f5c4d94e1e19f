package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	if cfg.OpenAI.Endpoint != "https://api.openai.com/v1/chat/completions" {
		t.Errorf("endpoint = %q", cfg.OpenAI.Endpoint)
	}
	if cfg.Pipeline.TopN != 10 {
		t.Errorf("topN = %d", cfg.Pipeline.TopN)
	}
	if cfg.Scheduler.DailyAt != "09:00" {
		t.Errorf("dailyAt = %q", cfg.Scheduler.DailyAt)
	}
	if len(cfg.Sources) == 0 {
		t.Fatal("default source catalog is empty")
	}

	strategies := map[string]bool{}
	for _, src := range cfg.Sources {
		strategies[src.Strategy] = true
	}
	for _, want := range []string{"feed", "search_api", "web_scrape"} {
		if !strategies[want] {
			t.Errorf("default catalog missing strategy %q", want)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(openAIKeyEnv, "env-key")
	t.Setenv(notionTokenEnv, "env-notion")
	t.Setenv(logLevelEnv, "debug")

	cfg := Load()

	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("apiKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.Notion.Token != "env-notion" {
		t.Errorf("notion token = %q", cfg.Notion.Token)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
openai:
  model: gpt-4o
pipeline:
  topN: 3
sources:
  - name: only_source
    url: http://example.com/feed
    strategy: feed
    limit: 2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.Pipeline.TopN != 3 {
		t.Errorf("topN = %d", cfg.Pipeline.TopN)
	}
	// Unset fields keep their defaults.
	if cfg.OpenAI.Endpoint != "https://api.openai.com/v1/chat/completions" {
		t.Errorf("endpoint = %q", cfg.OpenAI.Endpoint)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "only_source" {
		t.Errorf("sources = %v", cfg.Sources)
	}
}

func TestLoadMissingYAMLFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := Load()
	if len(cfg.Sources) == 0 {
		t.Error("missing file must fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without API key")
	}

	cfg.OpenAI.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned error: %v", err)
	}

	cfg.Sources = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without sources")
	}
}

func TestBindTimezone(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Scheduler.Timezone = "America/New_York"
	cfg.bindTimezone()

	if got := cfg.Scheduler.Location().String(); got != "America/New_York" {
		t.Errorf("location = %q", got)
	}

	cfg.Scheduler.Timezone = "Mars/Olympus_Mons"
	cfg.bindTimezone()
	if got := cfg.Scheduler.Location().String(); got != "UTC" {
		t.Errorf("unknown timezone must revert to UTC, got %q", got)
	}
}
