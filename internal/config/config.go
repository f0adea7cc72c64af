// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Tech     string `json:"tech,omitempty"`      // Free-text tech stack description
	URLs     string `json:"urls,omitempty"`      // Path to known-URLs file (one per line)
	URLsHTML string `json:"urls_html,omitempty"` // Path to a saved HTML page to harvest known URLs from
	Wordlist string `json:"wordlist,omitempty"`  // Path to exclusion wordlist file

	// Model
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=openai gemini"`
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty"` // API-compatible proxy endpoint (OpenAI only)
	KeyFile  string `json:"key_file,omitempty"` // Path to API key file; env var fallback otherwise

	// Request shaping
	NumResults int    `json:"num_results,omitempty" validate:"omitempty,gte=1"`
	MaxTokens  int    `json:"max_tokens,omitempty" validate:"omitempty,gte=1"`
	Format     string `json:"format,omitempty" validate:"omitempty,oneof=lines markdown json"`

	// Behavior
	Output      string  `json:"output,omitempty"`  // Results destination; empty means stdout
	Pricing     string  `json:"pricing,omitempty"` // Path to YAML rate table
	RateLimit   float64 `json:"rate_limit,omitempty" validate:"omitempty,gt=0"`
	Concurrency int     `json:"concurrency,omitempty" validate:"omitempty,gte=1"`
	TimeoutSecs int     `json:"timeout_secs,omitempty" validate:"omitempty,gte=1"`
	Verbose     bool    `json:"verbose,omitempty"`
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

// Validate checks that the configuration has valid values. Required-field
// checks happen after merging with CLI flags, not here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	for _, path := range []string{c.URLs, c.URLsHTML, c.Wordlist, c.KeyFile, c.Pricing} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags have already been applied on top of c by the caller.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.NumResults == 0 {
		result.NumResults = defaults.NumResults
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.TimeoutSecs == 0 {
		result.TimeoutSecs = defaults.TimeoutSecs
	}

	return result
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4",
		Format:      "lines",
		NumResults:  10,
		MaxTokens:   4000,
		Concurrency: 10,
		TimeoutSecs: 120,
	}
}
