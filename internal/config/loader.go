package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:       viper.New(),
		envFile: ".env",
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// SetEnvFile overrides the dotenv file read before env bindings. Empty skips it.
func (l *Loader) SetEnvFile(path string) {
	l.envFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < .env < env vars < Set() overrides
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	// Variables already present in the environment win over .env entries.
	if err := l.loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.TUI.StateFile = expandTilde(cfg.TUI.StateFile)
	cfg.Logging.File = expandTilde(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (l *Loader) loadEnvFile() error {
	path := strings.TrimSpace(l.envFile)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "msgboard"))
	}
	if homeDir, _ := os.UserHomeDir(); homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "msgboard"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("MSGBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)
	bindEnvVars(v)
	v.AutomaticEnv()
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.request_timeout", cfg.API.RequestTimeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("poll.interval", cfg.Poll.Interval)

	v.SetDefault("tui.theme", cfg.TUI.Theme)
	v.SetDefault("tui.state_file", cfg.TUI.StateFile)
	v.SetDefault("tui.show_timestamps", cfg.TUI.ShowTimestamps)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)
}

// loadConfigFile loads the config file if it exists.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Set overrides a key, typically from a CLI flag.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// bindEnvVars binds MSGBOARD_* variables explicitly so nested keys unmarshal.
// MESSAGING_API is honoured as a fallback for the base URL.
func bindEnvVars(v *viper.Viper) {
	envBindings := []string{
		"api.base_url",
		"api.request_timeout",
		"api.user_agent",
		"poll.interval",
		"tui.theme",
		"tui.state_file",
		"tui.show_timestamps",
		"logging.level",
		"logging.format",
		"logging.file",
		"logging.enable_caller",
	}

	legacy := map[string]string{
		"api.base_url": "MESSAGING_API",
	}

	for _, key := range envBindings {
		envVar := "MSGBOARD_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if fallback, ok := legacy[key]; ok {
			_ = v.BindEnv(key, envVar, fallback)
			continue
		}
		_ = v.BindEnv(key, envVar)
	}
}
