package tokens

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	est := NewEstimator(DefaultPricing())

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"Empty", "", 0},
		{"Exact multiple", "abcdefgh", 2},
		{"Rounds up", "abcde", 2},
		{"Single char", "a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, est.CountTokens(tt.text))
		})
	}
}

func TestCountTokensMonotonic(t *testing.T) {
	est := NewEstimator(DefaultPricing())
	short := est.CountTokens(strings.Repeat("x", 100))
	long := est.CountTokens(strings.Repeat("x", 1000))
	assert.Greater(t, long, short)
}

func TestOutputTokens(t *testing.T) {
	est := NewEstimator(DefaultPricing())
	assert.Equal(t, 200, est.OutputTokens(10))
	assert.Equal(t, 0, est.OutputTokens(0))
	assert.Equal(t, 0, est.OutputTokens(-1))
}

func TestEstimate(t *testing.T) {
	est := NewEstimator(DefaultPricing())

	result := est.Estimate(strings.Repeat("x", 400), "gpt-4", 10, 4000)
	assert.Equal(t, 100, result.InputTokens)
	assert.Equal(t, 200, result.OutputTokens)
	assert.Equal(t, 300, result.TotalTokens)
	// 100/1000*0.03 + 200/1000*0.06
	assert.InDelta(t, 0.015, result.USD, 1e-9)
}

func TestEstimateBoundsOutputByMaxTokens(t *testing.T) {
	est := NewEstimator(DefaultPricing())
	result := est.Estimate("xxxx", "gpt-4", 1000, 50)
	assert.Equal(t, 50, result.OutputTokens)
}

func TestEstimateUnknownModelUsesDefaultRate(t *testing.T) {
	est := NewEstimator(DefaultPricing())
	known := est.Cost("gpt-4", 1000, 1000)
	unknown := est.Cost("experimental-model", 1000, 1000)
	assert.InDelta(t, known, unknown, 1e-9)
}

func TestEstimateAdd(t *testing.T) {
	a := Estimate{InputTokens: 10, OutputTokens: 20, TotalTokens: 30, USD: 0.1}
	b := Estimate{InputTokens: 1, OutputTokens: 2, TotalTokens: 3, USD: 0.2}

	sum := a.Add(b)
	assert.Equal(t, 11, sum.InputTokens)
	assert.Equal(t, 22, sum.OutputTokens)
	assert.Equal(t, 33, sum.TotalTokens)
	assert.InDelta(t, 0.3, sum.USD, 1e-9)
}

func TestLoadPricing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	content := `chars_per_token: 3.5
models:
  gpt-4o:
    prompt: 0.005
    completion: 0.015
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	pricing, err := LoadPricing(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, pricing.CharsPerToken, 1e-9)
	assert.Equal(t, 20, pricing.OutputPerResult, "unset fields keep defaults")
	assert.InDelta(t, 0.005, pricing.RateFor("gpt-4o").Prompt, 1e-9)
	assert.InDelta(t, 0.03, pricing.RateFor("gpt-4").Prompt, 1e-9)
}

func TestLoadPricingErrors(t *testing.T) {
	_, err := LoadPricing(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chars_per_token: -1\n"), 0o600))
	_, err = LoadPricing(path)
	assert.ErrorContains(t, err, "chars_per_token")
}
