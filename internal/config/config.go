package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joenewbry/prospector/pkg/scoring"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Adapters AdaptersConfig `yaml:"adapters"`
	Outreach OutreachConfig `yaml:"outreach"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PipelineConfig configures the default campaign and weight overrides.
type PipelineConfig struct {
	Campaign string           `yaml:"campaign"`
	Weights  scoring.Override `yaml:"weights"`
}

// ScheduleConfig configures the daemon run interval.
type ScheduleConfig struct {
	RunInterval string `yaml:"run_interval"`
}

// ParseRunInterval returns the run interval as time.Duration.
func (s ScheduleConfig) ParseRunInterval() time.Duration {
	d, err := time.ParseDuration(s.RunInterval)
	if err != nil {
		return 6 * time.Hour
	}
	return d
}

// AdaptersConfig holds configuration for all prospect adapters.
type AdaptersConfig struct {
	GitHub     GitHubConfig     `yaml:"github"`
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Twitter    TwitterConfig    `yaml:"x_twitter"`
	RSS        RSSConfig        `yaml:"rss"`
	Bootcamps  ToggleConfig     `yaml:"bootcamps"`
	Gaming     ToggleConfig     `yaml:"gaming_platforms"`
}

// GitHubConfig for the GitHub bio search adapter.
type GitHubConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Token         string   `yaml:"token"`
	Queries       []string `yaml:"queries"`
	MaxPerQuery   int      `yaml:"max_results_per_query"`
	RecencyMonths int      `yaml:"recency_months"`
}

// HackerNewsConfig for the Who's Hiring thread adapter.
type HackerNewsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ThreadType string `yaml:"thread_type"`
	MonthsBack int    `yaml:"months_back"`
	MaxResults int    `yaml:"max_results"`
}

// TwitterConfig for the X/Twitter adapter.
type TwitterConfig struct {
	Enabled     bool     `yaml:"enabled"`
	BearerToken string   `yaml:"bearer_token"`
	Queries     []string `yaml:"queries"`
	MaxPerQuery int      `yaml:"max_results_per_query"`
}

// RSSConfig for the dev community feed adapter.
type RSSConfig struct {
	Enabled bool       `yaml:"enabled"`
	Feeds   []FeedItem `yaml:"feeds"`
	MaxAge  string     `yaml:"max_age"`
}

// ParseMaxAge returns the feed item age cutoff as time.Duration.
func (r RSSConfig) ParseMaxAge() time.Duration {
	d, err := time.ParseDuration(r.MaxAge)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// FeedItem is a single RSS feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ToggleConfig for adapters that only need an on/off switch.
type ToggleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutreachConfig configures message generation.
type OutreachConfig struct {
	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig configures the optional LLM draft polish.
type LLMConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // "openai" or "anthropic"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // custom endpoint (optional)
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./prospector.db"},
		Pipeline: PipelineConfig{Campaign: "memex"},
		Schedule: ScheduleConfig{RunInterval: "6h"},
		Adapters: AdaptersConfig{
			GitHub: GitHubConfig{
				Enabled:       true,
				MaxPerQuery:   20,
				RecencyMonths: 6,
			},
			HackerNews: HackerNewsConfig{
				Enabled:    true,
				ThreadType: "Who wants to be hired?",
				MonthsBack: 2,
				MaxResults: 50,
			},
			Twitter: TwitterConfig{
				Enabled:     true,
				MaxPerQuery: 20,
			},
			RSS: RSSConfig{
				Enabled: false,
				MaxAge:  "168h",
			},
			Bootcamps: ToggleConfig{Enabled: true},
			Gaming:    ToggleConfig{Enabled: true},
		},
		Outreach: OutreachConfig{
			LLM: LLMConfig{
				Provider: "openai",
				Model:    "gpt-4o-mini",
			},
		},
		Alerts: AlertsConfig{},
		Server: ServerConfig{Port: 8000},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROSPECTOR_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PROSPECTOR_CAMPAIGN"); v != "" {
		cfg.Pipeline.Campaign = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Adapters.GitHub.Token = v
	}
	if v := os.Getenv("X_BEARER_TOKEN"); v != "" {
		cfg.Adapters.Twitter.BearerToken = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Outreach.LLM.APIKey = v
		cfg.Outreach.LLM.Enabled = true
		cfg.Outreach.LLM.Provider = "openai"
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Outreach.LLM.APIKey = v
		cfg.Outreach.LLM.Enabled = true
		cfg.Outreach.LLM.Provider = "anthropic"
	}
}
