package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"tech": "PHP, WordPress",
		"provider": "openai",
		"num_results": 25,
		"rate_limit": 2.5
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "PHP, WordPress", cfg.Tech)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 25, cfg.NumResults)
	assert.InDelta(t, 2.5, cfg.RateLimit, 1e-9)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.ErrorContains(t, err, "config path is empty")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config JSON")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"Empty config is valid", Config{}, ""},
		{"Valid provider", Config{Provider: "gemini"}, ""},
		{"Unknown provider", Config{Provider: "anthropic"}, "config error"},
		{"Unknown format", Config{Format: "xml"}, "config error"},
		{"Negative results", Config{NumResults: -1}, "config error"},
		{"Zero rate limit ok because unset", Config{RateLimit: 0}, ""},
		{"Negative rate limit", Config{RateLimit: -1}, "config error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	cfg := Config{URLs: filepath.Join(t.TempDir(), "urls.txt")}
	assert.ErrorContains(t, cfg.Validate(), "file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Model: "gpt-4o", NumResults: 5}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "gpt-4o", merged.Model, "explicit value wins")
	assert.Equal(t, 5, merged.NumResults)
	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, 4000, merged.MaxTokens)
	assert.Equal(t, "lines", merged.Format)
	assert.Equal(t, 120, merged.TimeoutSecs)
}
