package tokens

import "math"

// Estimate is the pre-flight projection for one prospective request.
type Estimate struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	USD          float64
}

// Estimator converts prompt text and request parameters into token and cost
// estimates. It is pure and never talks to a model gateway.
type Estimator struct {
	pricing Pricing
}

// NewEstimator creates an Estimator using the given pricing table.
func NewEstimator(pricing Pricing) *Estimator {
	if pricing.CharsPerToken <= 0 {
		pricing = DefaultPricing()
	}
	return &Estimator{pricing: pricing}
}

// CountTokens approximates the token count of text as
// ceil(len(text) / chars_per_token).
func (e *Estimator) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / e.pricing.CharsPerToken))
}

// OutputTokens approximates the reply size for a requested result count.
func (e *Estimator) OutputTokens(numResults int) int {
	if numResults < 0 {
		return 0
	}
	return numResults * e.pricing.OutputPerResult
}

// Estimate projects tokens and USD cost for one request. The output estimate
// is bounded by maxTokens when a positive bound is given.
func (e *Estimator) Estimate(promptText, model string, numResults, maxTokens int) Estimate {
	input := e.CountTokens(promptText)
	output := e.OutputTokens(numResults)
	if maxTokens > 0 && output > maxTokens {
		output = maxTokens
	}

	return Estimate{
		InputTokens:  input,
		OutputTokens: output,
		TotalTokens:  input + output,
		USD:          e.Cost(model, input, output),
	}
}

// Cost prices input and output token counts for a model.
func (e *Estimator) Cost(model string, inputTokens, outputTokens int) float64 {
	rate := e.pricing.RateFor(model)
	return float64(inputTokens)/1000*rate.Prompt + float64(outputTokens)/1000*rate.Completion
}

// Add merges per-batch estimates into a run total.
func (est Estimate) Add(other Estimate) Estimate {
	return Estimate{
		InputTokens:  est.InputTokens + other.InputTokens,
		OutputTokens: est.OutputTokens + other.OutputTokens,
		TotalTokens:  est.TotalTokens + other.TotalTokens,
		USD:          est.USD + other.USD,
	}
}
