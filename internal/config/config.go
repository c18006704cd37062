// Package config handles msgboard configuration loading and validation.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tOgg1/msgboard/internal/models"
)

// MinPollInterval is the fastest refresh cadence the client accepts.
const MinPollInterval = 100 * time.Millisecond

// Config is the root configuration structure for msgboard.
type Config struct {
	// API settings for the remote message service.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Poll settings for the background refresh.
	Poll PollConfig `yaml:"poll" mapstructure:"poll"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// APIConfig describes how to reach the message service.
type APIConfig struct {
	// BaseURL is the service root; requests go to BaseURL + "/messages".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// RequestTimeout bounds each HTTP request. Zero disables the bound.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// PollConfig controls the refresh timer.
type PollConfig struct {
	// Interval is the fixed period between collection retrievals.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// StateFile persists compose inputs between runs. Empty disables persistence.
	StateFile string `yaml:"state_file" mapstructure:"state_file"`

	// ShowTimestamps shows created_at next to each author.
	ShowTimestamps bool `yaml:"show_timestamps" mapstructure:"show_timestamps"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI only logs when it is set.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			UserAgent:      "msgboard",
		},
		Poll: PollConfig{
			Interval: 1 * time.Second,
		},
		TUI: TUIConfig{
			Theme:          "default",
			StateFile:      filepath.Join(homeDir, ".local", "share", "msgboard", "tui-state.json"),
			ShowTimestamps: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var knownThemes = map[string]bool{
	"default":       true,
	"high-contrast": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validation := &models.ValidationErrors{}

	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		validation.Addf("api.base_url", "is required")
	} else if u, err := url.Parse(base); err != nil {
		validation.Add("api.base_url", err)
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		validation.Addf("api.base_url", "must be an absolute http(s) URL, got %q", base)
	}

	if c.API.RequestTimeout < 0 {
		validation.Addf("api.request_timeout", "must not be negative")
	}

	if c.Poll.Interval < MinPollInterval {
		validation.Addf("poll.interval", "must be at least %s", MinPollInterval)
	}

	if !knownThemes[c.TUI.Theme] {
		validation.Addf("tui.theme", "must be one of default, high-contrast; got %q", c.TUI.Theme)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		validation.Addf("logging.format", "must be json or console; got %q", c.Logging.Format)
	}

	return validation.Err()
}

// MessagesURL returns the collection endpoint derived from the base URL.
func (c *Config) MessagesURL() string {
	return strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/") + "/messages"
}
