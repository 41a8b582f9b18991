package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Session SessionConfig `json:"session" yaml:"session"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// ServiceConfig locates the remote brokerage service.
type ServiceConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "30s"
}

// ParseTimeout converts the timeout string to a time.Duration; empty
// means zero (the client applies its own default).
func (s ServiceConfig) ParseTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Timeout)
}

// SessionConfig controls where the durable account id lives and the
// optional launch URL whose accountId parameter overrides it.
type SessionConfig struct {
	DBPath    string `json:"db_path" yaml:"db_path"`
	LaunchURL string `json:"launch_url,omitempty" yaml:"launch_url,omitempty"`
}

// JournalConfig controls the submitted-ticket journal.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if _, err := c.Service.ParseTimeout(); err != nil {
		return fmt.Errorf("service.timeout: %w", err)
	}
	if c.Session.DBPath == "" {
		return fmt.Errorf("session.db_path is required")
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required when journal is enabled")
	}
	return nil
}

// Default returns a configuration with sensible defaults. The session
// and journal databases land under the user cache directory.
func Default() *Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = "."
	}
	dir := filepath.Join(cacheDir, "optiondesk")

	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://127.0.0.1:8231",
			Timeout: "30s",
		},
		Session: SessionConfig{
			DBPath: filepath.Join(dir, "session.sqlite"),
		},
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  filepath.Join(dir, "journal.sqlite"),
		},
	}
}
