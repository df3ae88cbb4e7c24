package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Sync.PollIntervalMS)
	assert.Equal(t, "bottom-right", cfg.Widget.Position)
	assert.Equal(t, "Chat with us", cfg.Widget.Title)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api": {"key": "k1", "base_url": "https://api.example.com"},
		"sync": {"poll_interval_ms": 5000},
		"widget": {"title": "Support"}
	}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "k1", cfg.API.Key)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5000, cfg.Sync.PollIntervalMS)
	assert.Equal(t, "Support", cfg.Widget.Title)
	// Untouched fields keep their defaults.
	assert.Equal(t, "Type your message...", cfg.Widget.Placeholder)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"key": "from-file"}}`), 0644))

	t.Setenv("EMBEDCHAT_API_KEY", "from-env")
	t.Setenv("EMBEDCHAT_SYNC_POLL_INTERVAL_MS", "750")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, 750, cfg.Sync.PollIntervalMS)
}

func TestLoadConfigFromEnvJSON(t *testing.T) {
	t.Setenv("EMBEDCHAT_CONFIG_JSON", `{"api": {"key": "env-json", "base_url": "https://b"}}`)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "ignored.json"))
	require.NoError(t, err)
	assert.Equal(t, "env-json", cfg.API.Key)
	assert.Equal(t, "https://b", cfg.API.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorContains(t, cfg.Validate(), "api.key")

	cfg.API.Key = "k"
	assert.ErrorContains(t, cfg.Validate(), "api.base_url")

	cfg.API.BaseURL = "https://api.example.com"
	assert.NoError(t, cfg.Validate())

	cfg.Sync.PollIntervalMS = 0
	assert.ErrorContains(t, cfg.Validate(), "poll_interval_ms")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.API.Key = "k"
	cfg.API.BaseURL = "https://api.example.com"

	require.NoError(t, SaveConfig(path, cfg))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
