package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "NEWS_AGENT_CONFIG"

	openAIKeyEnv      = "OPENAI_API_KEY"
	openAIOrgEnv      = "OPENAI_ORGANIZATION_ID"
	notionTokenEnv    = "NOTION_TOKEN"
	notionDatabaseEnv = "NOTION_DATABASE_ID"
	smtpServerEnv     = "SMTP_SERVER"
	smtpPortEnv       = "SMTP_PORT"
	emailUserEnv      = "EMAIL_USER"
	emailPasswordEnv  = "EMAIL_PASSWORD"
	recipientEnv      = "RECIPIENT_EMAIL"
	pushoverTokenEnv  = "PUSHOVER_TOKEN"
	pushoverUserEnv   = "PUSHOVER_USER_KEY"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Output    OutputConfig    `yaml:"output"`
	Notion    NotionConfig    `yaml:"notion"`
	Email     EmailConfig     `yaml:"email"`
	Pushover  PushoverConfig  `yaml:"pushover"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
	Sources   []SourceConfig  `yaml:"sources"`
}

// OpenAIConfig defines how to contact the chat-completion API.
type OpenAIConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	Organization string `yaml:"organization"`
}

// PipelineConfig tunes the digest run itself.
type PipelineConfig struct {
	TopN           int `yaml:"topN"`
	SummaryDelayMS int `yaml:"summaryDelayMs"`
}

// OutputConfig describes where the markdown sink writes files.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// NotionConfig wires the Notion page sink.
type NotionConfig struct {
	Token      string `yaml:"token"`
	DatabaseID string `yaml:"databaseId"`
}

// EmailConfig wires the SMTP sink.
type EmailConfig struct {
	SMTPServer string `yaml:"smtpServer"`
	SMTPPort   string `yaml:"smtpPort"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Recipient  string `yaml:"recipient"`
}

// PushoverConfig wires the run-outcome notifier.
type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"userKey"`
}

// SchedulerConfig defines when the scheduled variant runs.
type SchedulerConfig struct {
	DailyAt  string         `yaml:"dailyAt"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes a single source with its extraction strategy and
// per-source tunables. The vocabulary and denylist entries are curated
// against current page structures and belong in configuration, not code.
type SourceConfig struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	Strategy   string   `yaml:"strategy"`
	Limit      int      `yaml:"limit"`
	Keywords   []string `yaml:"keywords"`
	TitleGate  []string `yaml:"titleGate"`
	Vocabulary []string `yaml:"vocabulary"`
	Denylist   []string `yaml:"denylist"`
	Cards      bool     `yaml:"cards"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

// Validate reports fatal configuration problems. Every pipeline run needs
// the LLM credential, so startup stops without it.
func (c Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("%s is not set", openAIKeyEnv)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIOrgEnv); v != "" {
		c.OpenAI.Organization = v
	}
	if v := os.Getenv(notionTokenEnv); v != "" {
		c.Notion.Token = v
	}
	if v := os.Getenv(notionDatabaseEnv); v != "" {
		c.Notion.DatabaseID = v
	}
	if v := os.Getenv(smtpServerEnv); v != "" {
		c.Email.SMTPServer = v
	}
	if v := os.Getenv(smtpPortEnv); v != "" {
		c.Email.SMTPPort = v
	}
	if v := os.Getenv(emailUserEnv); v != "" {
		c.Email.User = v
	}
	if v := os.Getenv(emailPasswordEnv); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv(recipientEnv); v != "" {
		c.Email.Recipient = v
	}
	if v := os.Getenv(pushoverTokenEnv); v != "" {
		c.Pushover.Token = v
	}
	if v := os.Getenv(pushoverUserEnv); v != "" {
		c.Pushover.UserKey = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Organization != "" {
		base.OpenAI.Organization = override.OpenAI.Organization
	}

	if override.Pipeline.TopN > 0 {
		base.Pipeline.TopN = override.Pipeline.TopN
	}
	if override.Pipeline.SummaryDelayMS > 0 {
		base.Pipeline.SummaryDelayMS = override.Pipeline.SummaryDelayMS
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}

	if override.Notion.Token != "" {
		base.Notion.Token = override.Notion.Token
	}
	if override.Notion.DatabaseID != "" {
		base.Notion.DatabaseID = override.Notion.DatabaseID
	}

	if override.Email.SMTPServer != "" {
		base.Email = override.Email
	}

	if override.Pushover.Token != "" {
		base.Pushover = override.Pushover
	}

	if override.Scheduler.DailyAt != "" {
		base.Scheduler.DailyAt = override.Scheduler.DailyAt
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

// aiTitleGate is the coarse relevance gate applied to research-paper feeds.
var aiTitleGate = []string{"ai", "artificial intelligence", "machine learning", "neural"}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		OpenAI: OpenAIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Pipeline: PipelineConfig{
			TopN:           10,
			SummaryDelayMS: 1000,
		},
		Output:    OutputConfig{Dir: "."},
		Scheduler: SchedulerConfig{DailyAt: "09:00", Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info"},
		Sources: []SourceConfig{
			{
				Name:      "arxiv_ai",
				URL:       "http://export.arxiv.org/rss/cs.AI",
				Strategy:  "feed",
				Limit:     3,
				TitleGate: aiTitleGate,
			},
			{
				Name:      "arxiv_ml",
				URL:       "http://export.arxiv.org/rss/cs.LG",
				Strategy:  "feed",
				Limit:     3,
				TitleGate: aiTitleGate,
			},
			{
				Name:     "hackernews_ai",
				URL:      "https://hn.algolia.com/api/v1/search?query=AI%20OR%20artificial%20intelligence%20OR%20machine%20learning&tags=story&hitsPerPage=5",
				Strategy: "search_api",
				Limit:    5,
			},
			{
				Name:     "techcrunch_ai",
				URL:      "https://techcrunch.com/tag/artificial-intelligence/feed/",
				Strategy: "feed",
				Limit:    5,
			},
			{
				Name:     "nvidia_blog",
				URL:      "https://blogs.nvidia.com/feed/",
				Strategy: "feed",
				Limit:    5,
				Keywords: []string{"AI", "artificial intelligence", "machine learning", "GPU", "deep learning"},
			},
			{
				Name:     "huggingface",
				URL:      "https://huggingface.co/blog/feed.xml",
				Strategy: "feed",
				Limit:    5,
			},
			{
				Name:     "openai_blog",
				URL:      "https://openai.com/blog/rss.xml",
				Strategy: "feed",
				Limit:    5,
			},
			{
				Name:     "ai_news",
				URL:      "https://artificialintelligence-news.com/feed/",
				Strategy: "feed",
				Limit:    5,
			},
			{
				Name:     "deepmind",
				URL:      "https://deepmind.google/discover/blog/",
				Strategy: "web_scrape",
				Limit:    5,
			},
			{
				Name:     "gemini",
				URL:      "https://ai.google.dev/",
				Strategy: "web_scrape",
				Limit:    5,
			},
			{
				Name:       "anthropic",
				URL:        "https://www.anthropic.com/news",
				Strategy:   "web_scrape",
				Limit:      5,
				Cards:      true,
				Vocabulary: []string{"claude", "anthropic", "introducing", "announcement", "release", "model", "ai"},
			},
			{
				Name:     "mistral_ai",
				URL:      "https://mistral.ai/news/",
				Strategy: "web_scrape",
				Limit:    5,
			},
		},
	}
}
