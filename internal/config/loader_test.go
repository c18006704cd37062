package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points config discovery at empty temp dirs and clears msgboard env.
func isolate(t *testing.T) *Loader {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"MSGBOARD_API_BASE_URL",
		"MSGBOARD_API_REQUEST_TIMEOUT",
		"MSGBOARD_POLL_INTERVAL",
		"MSGBOARD_TUI_THEME",
		"MSGBOARD_LOGGING_LEVEL",
		"MESSAGING_API",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	loader := NewLoader()
	loader.SetEnvFile("")
	return loader
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := isolate(t).Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	require.Equal(t, time.Second, cfg.Poll.Interval)
	require.Equal(t, "default", cfg.TUI.Theme)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "http://localhost:8080/messages", cfg.MessagesURL())
}

func TestLoadConfigFile(t *testing.T) {
	loader := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://chat.example.com/v1/
  request_timeout: 3s
poll:
  interval: 2s
tui:
  theme: high-contrast
  state_file: ~/board-state.json
`), 0o644))
	loader.SetConfigFile(path)

	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, path, loader.ConfigFileUsed())
	require.Equal(t, "https://chat.example.com/v1/", cfg.API.BaseURL)
	require.Equal(t, "https://chat.example.com/v1/messages", cfg.MessagesURL())
	require.Equal(t, 3*time.Second, cfg.API.RequestTimeout)
	require.Equal(t, 2*time.Second, cfg.Poll.Interval)
	require.Equal(t, "high-contrast", cfg.TUI.Theme)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "board-state.json"), cfg.TUI.StateFile)
}

func TestLoadMissingExplicitConfigFileFails(t *testing.T) {
	loader := isolate(t)
	loader.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := loader.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config file")
}

func TestEnvOverridesFile(t *testing.T) {
	loader := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file.example\n"), 0o644))
	loader.SetConfigFile(path)
	t.Setenv("MSGBOARD_API_BASE_URL", "http://env.example")
	t.Setenv("MSGBOARD_POLL_INTERVAL", "250ms")

	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "http://env.example", cfg.API.BaseURL)
	require.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
}

func TestLegacyMessagingAPIEnv(t *testing.T) {
	loader := isolate(t)
	t.Setenv("MESSAGING_API", "http://legacy.example:3000")

	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "http://legacy.example:3000", cfg.API.BaseURL)

	t.Setenv("MSGBOARD_API_BASE_URL", "http://primary.example")
	cfg, err = newTestLoader().Load()
	require.NoError(t, err)
	require.Equal(t, "http://primary.example", cfg.API.BaseURL)
}

func TestDotEnvFileFeedsEnvironment(t *testing.T) {
	loader := isolate(t)
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("MSGBOARD_TUI_THEME=high-contrast\n"), 0o644))
	loader.SetEnvFile(envPath)
	t.Cleanup(func() { _ = os.Unsetenv("MSGBOARD_TUI_THEME") })

	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "high-contrast", cfg.TUI.Theme)
}

func TestSetOverridesEverything(t *testing.T) {
	loader := isolate(t)
	t.Setenv("MSGBOARD_API_BASE_URL", "http://env.example")
	loader.Set("api.base_url", "http://flag.example")

	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, "http://flag.example", cfg.API.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults ok", mutate: func(*Config) {}},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url: is required",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "localhost:8080" },
			wantErr: "api.base_url",
		},
		{
			name:    "poll too fast",
			mutate:  func(c *Config) { c.Poll.Interval = 10 * time.Millisecond },
			wantErr: "poll.interval: must be at least 100ms",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.TUI.Theme = "matrix" },
			wantErr: "tui.theme",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.RequestTimeout = -time.Second },
			wantErr: "api.request_timeout",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func newTestLoader() *Loader {
	loader := NewLoader()
	loader.SetEnvFile("")
	return loader
}
