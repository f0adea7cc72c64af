// Package tokens provides deterministic token-count and cost estimation for
// prospective model requests. Counts are a documented approximation (a fixed
// characters-per-token ratio), not an exact tokenizer match.
package tokens

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rate is the USD price per 1,000 tokens for one model.
type Rate struct {
	Prompt     float64 `yaml:"prompt"`
	Completion float64 `yaml:"completion"`
}

// Pricing holds the estimation parameters: the characters-per-token ratio,
// the per-result output allowance, and the per-model rate table.
type Pricing struct {
	CharsPerToken   float64         `yaml:"chars_per_token"`
	OutputPerResult int             `yaml:"output_per_result"`
	Default         Rate            `yaml:"default"`
	Models          map[string]Rate `yaml:"models"`
}

// DefaultPricing returns GPT-4 8K rates with the common ~4 chars/token
// English approximation and 20 output tokens allowed per requested result.
func DefaultPricing() Pricing {
	gpt4 := Rate{Prompt: 0.03, Completion: 0.06}
	return Pricing{
		CharsPerToken:   4.0,
		OutputPerResult: 20,
		Default:         gpt4,
		Models: map[string]Rate{
			"gpt-4": gpt4,
		},
	}
}

// LoadPricing reads a YAML rate table, filling unset fields from defaults.
func LoadPricing(path string) (Pricing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pricing{}, fmt.Errorf("failed to read pricing file %s: %w", path, err)
	}

	pricing := DefaultPricing()
	if err := yaml.Unmarshal(data, &pricing); err != nil {
		return Pricing{}, fmt.Errorf("failed to parse pricing YAML: %w", err)
	}

	if pricing.CharsPerToken <= 0 {
		return Pricing{}, fmt.Errorf("pricing error: chars_per_token must be positive")
	}
	if pricing.OutputPerResult <= 0 {
		return Pricing{}, fmt.Errorf("pricing error: output_per_result must be positive")
	}

	return pricing, nil
}

// RateFor returns the rate for a model, falling back to the default rate for
// models missing from the table.
func (p Pricing) RateFor(model string) Rate {
	if rate, ok := p.Models[model]; ok {
		return rate
	}
	return p.Default
}
