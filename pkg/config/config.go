package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	API    APIConfig    `json:"api"`
	Sync   SyncConfig   `json:"sync"`
	Server ServerConfig `json:"server"`
	Widget WidgetConfig `json:"widget"`
	Log    LogConfig    `json:"log"`
}

// APIConfig points the SDK at the chat backend. BaseURL is required and is
// never inferred from the embedding page or the environment the process
// happens to run in.
type APIConfig struct {
	Key     string `json:"key" env:"EMBEDCHAT_API_KEY"`
	BaseURL string `json:"base_url" env:"EMBEDCHAT_API_BASE_URL"`
}

type SyncConfig struct {
	PollIntervalMS int `json:"poll_interval_ms" env:"EMBEDCHAT_SYNC_POLL_INTERVAL_MS"`
}

type ServerConfig struct {
	Host string `json:"host" env:"EMBEDCHAT_SERVER_HOST"`
	Port int    `json:"port" env:"EMBEDCHAT_SERVER_PORT"`
}

// WidgetConfig holds the local defaults used before the first remote
// snapshot arrives. Remote customizations override these at runtime.
type WidgetConfig struct {
	Position    string `json:"position" env:"EMBEDCHAT_WIDGET_POSITION"`
	Title       string `json:"title" env:"EMBEDCHAT_WIDGET_TITLE"`
	Placeholder string `json:"placeholder" env:"EMBEDCHAT_WIDGET_PLACEHOLDER"`
}

type LogConfig struct {
	Level string `json:"level" env:"EMBEDCHAT_LOG_LEVEL"`
	JSON  bool   `json:"json" env:"EMBEDCHAT_LOG_JSON"`
}

func DefaultConfig() *Config {
	return &Config{
		Sync: SyncConfig{
			PollIntervalMS: 2000,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 18820,
		},
		Widget: WidgetConfig{
			Position:    "bottom-right",
			Title:       "Chat with us",
			Placeholder: "Type your message...",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a JSON config file, then applies EMBEDCHAT_* environment
// overrides. A missing file is not an error; defaults plus env apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Support full config from env var (for containers / serverless)
	if cfgJSON := os.Getenv("EMBEDCHAT_CONFIG_JSON"); cfgJSON != "" {
		if err := json.Unmarshal([]byte(cfgJSON), cfg); err != nil {
			return nil, fmt.Errorf("parsing EMBEDCHAT_CONFIG_JSON: %w", err)
		}
		if err := env.Parse(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects configs the SDK cannot start with.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Sync.PollIntervalMS <= 0 {
		return fmt.Errorf("sync.poll_interval_ms must be positive, got %d", c.Sync.PollIntervalMS)
	}
	return nil
}
