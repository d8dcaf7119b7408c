package config

import (
	"fmt"
)

// Config represents the main application configuration
type Config struct {
	PostHog  PostHogConfig  `yaml:"posthog" json:"posthog"`
	Playlist PlaylistConfig `yaml:"playlist" json:"playlist"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// PostHogConfig holds the PostHog instance and credentials
type PostHogConfig struct {
	Host      string `yaml:"host" json:"host"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	ProjectID string `yaml:"project_id" json:"project_id"`
}

// MaskedAPIKey returns the API key with all but its prefix hidden
func (c PostHogConfig) MaskedAPIKey() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) <= 8 {
		return "****"
	}
	return c.APIKey[:4] + "****"
}

// PlaylistConfig holds defaults applied to every playlist created
type PlaylistConfig struct {
	DateFrom           string `yaml:"date_from" json:"date_from"`
	FilterTestAccounts bool   `yaml:"filter_test_accounts" json:"filter_test_accounts"`
	Host               string `yaml:"host" json:"host"` // site host filter, e.g. thelai.com
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format string `yaml:"format" json:"format"` // text, json, yaml
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // trace, debug, info, warn, error, fatal, panic
	Format string `yaml:"format" json:"format"` // text, json
	Color  bool   `yaml:"color" json:"color"`
	File   string `yaml:"file" json:"file"`
}

var (
	validOutputFormats = []string{"text", "json", "yaml"}
	validLogLevels     = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	validLogFormats    = []string{"text", "json"}
)

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		PostHog: PostHogConfig{
			Host: "us.posthog.com",
		},
		Playlist: PlaylistConfig{
			DateFrom: "-30d",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "warn", // stdout is reserved for results
			Format: "text",
			Color:  true,
		},
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.PostHog.Host == "" {
		return fmt.Errorf("posthog host cannot be empty")
	}

	if !contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("output format must be one of: %v", validOutputFormats)
	}

	if !contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging level must be one of: %v", validLogLevels)
	}

	if !contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging format must be one of: %v", validLogFormats)
	}

	return nil
}

// HasCredentials returns true if both API key and project are configured
func (c *Config) HasCredentials() bool {
	return c.PostHog.APIKey != "" && c.PostHog.ProjectID != ""
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
