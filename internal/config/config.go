// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	ServerURL string `json:"server_url,omitempty"` // Base URL of the career wizard API
	Token     string `json:"token,omitempty"`      // Bearer token for authenticated endpoints

	// Wizard run
	NodeID  string `json:"node_id,omitempty"` // Career transition node UUID
	Answers string `json:"answers,omitempty"` // Path to the JSON answers file driving the wizard

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for the optional update recap
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (serve mode)
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required-field checks happen after CLI flag merging, not here.
func (c *Config) Validate() error {
	if c.Answers != "" {
		if _, err := os.Stat(c.Answers); os.IsNotExist(err) {
			return fmt.Errorf("config error: answers file not found: %s", c.Answers)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ServerURL == "" {
		result.ServerURL = defaults.ServerURL
	}
	if result.Token == "" {
		result.Token = defaults.Token
	}
	if result.NodeID == "" {
		result.NodeID = defaults.NodeID
	}
	if result.Answers == "" {
		result.Answers = defaults.Answers
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
