package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineStrategyExtract(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected []string
	}{
		{
			name:     "Numbered list with prose",
			reply:    "Here are some guesses:\n1. /api/v1/users\n2. /health\nThat's all I found.",
			expected: []string{"/api/v1/users", "/health"},
		},
		{
			name:     "Bulleted list",
			reply:    "- /admin\n* /backup.zip\n• /.git/config",
			expected: []string{"/admin", "/backup.zip", "/.git/config"},
		},
		{
			name:     "Backticked entries",
			reply:    "`/debug`\n`/metrics`",
			expected: []string{"/debug", "/metrics"},
		},
		{
			name:     "Absolute URLs",
			reply:    "https://target.example/api/internal\n/status",
			expected: []string{"https://target.example/api/internal", "/status"},
		},
		{
			name:     "Trailing prose after candidate",
			reply:    "/admin (likely an admin panel)",
			expected: []string{"/admin"},
		},
		{
			name:     "Protocol-relative rejected",
			reply:    "//cdn.example.com/lib.js\n/ok",
			expected: []string{"/ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := LineStrategy{}.Extract(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, candidates)
		})
	}
}

func TestLineStrategyEmptyResponse(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"Prose only", "I could not determine any likely endpoints for this target."},
		{"Empty reply", ""},
		{"Relative paths only", "admin\nlogin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LineStrategy{}.Extract(tt.reply)
			require.Error(t, err)

			var emptyErr *EmptyResponseError
			assert.True(t, errors.As(err, &emptyErr))
		})
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Default", "", "lines"},
		{"Lines", "lines", "lines"},
		{"Markdown", "markdown", "markdown"},
		{"JSON", "json", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := ForName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy.Name())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ForName("xml")
		assert.ErrorContains(t, err, "unknown extraction strategy")
	})
}
