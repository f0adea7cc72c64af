// Package prompt composes the instruction text sent to the model gateway and
// enforces the token budget before anything is sent.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"glacier/internal/tokens"
)

// Params are the numeric parameters of one model request.
type Params struct {
	NumResults int    `validate:"gte=1"`
	MaxTokens  int    `validate:"gte=1"`
	Model      string `validate:"required"`
}

// Request is a fully composed model request. It is immutable once built and
// owned by the pipeline for the duration of one run.
type Request struct {
	Text   string
	Params Params
}

// BudgetExceededError means the composed prompt would not fit the configured
// token budget. OutputTokens is non-zero when the reserved reply allowance
// contributed to the overrun. The user must lower the result count or the
// input sets, or raise the budget.
type BudgetExceededError struct {
	PromptTokens int
	OutputTokens int
	Budget       int
}

func (e *BudgetExceededError) Error() string {
	if e.OutputTokens > 0 {
		return fmt.Sprintf("prompt needs %d tokens and the reply reserves %d more but the budget is %d; lower --num-results, trim inputs, or raise --max-tokens",
			e.PromptTokens, e.OutputTokens, e.Budget)
	}
	return fmt.Sprintf("prompt needs %d tokens but the budget is %d; lower --num-results, trim inputs, or raise --max-tokens",
		e.PromptTokens, e.Budget)
}

// Builder composes deterministic prompts. For identical inputs the composed
// text is byte-identical: sets are rendered in sorted order and nothing
// time- or randomness-dependent is embedded.
type Builder struct {
	estimator *tokens.Estimator
	validate  *validator.Validate
}

// NewBuilder creates a Builder backed by the given estimator.
func NewBuilder(estimator *tokens.Estimator) *Builder {
	return &Builder{
		estimator: estimator,
		validate:  validator.New(),
	}
}

// Build composes the request and runs the budget pre-flight. It fails with
// *BudgetExceededError when the prompt alone would exceed MaxTokens. A prompt
// consuming exactly the whole budget is rejected too: MaxTokens bounds the
// completion call, and a reply needs tokens of its own.
func (b *Builder) Build(tech string, known, exclusions []string, params Params) (*Request, error) {
	if err := b.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid request parameters: %w", err)
	}

	text := Compose(tech, known, exclusions, params.NumResults)

	promptTokens := b.estimator.CountTokens(text)
	if promptTokens >= params.MaxTokens {
		return nil, &BudgetExceededError{PromptTokens: promptTokens, Budget: params.MaxTokens}
	}

	return &Request{Text: text, Params: params}, nil
}

// Estimator exposes the builder's estimator for pre-flight cost reporting.
func (b *Builder) Estimator() *tokens.Estimator {
	return b.estimator
}

// Compose renders the instruction text without any budget check. Known URLs
// and exclusions are enumerated in sorted order; empty sets render an
// explicit marker rather than an empty section.
func Compose(tech string, known, exclusions []string, numResults int) string {
	var sb strings.Builder

	sb.WriteString("You are assisting a pentester in content discovery and provide URLs that may contain secrets or other sensitive endpoints that could be helpful to find.\n")

	if tech != "" {
		sb.WriteString("The following tech stack is known: ")
		sb.WriteString(tech)
		sb.WriteString("\n")
	}

	sb.WriteString("The following URLs are known:\n")
	writeEnumerated(&sb, known, "(none known yet)")

	sb.WriteString("Do not suggest any of the following paths or anything beneath them:\n")
	writeEnumerated(&sb, exclusions, "(no exclusions)")

	fmt.Fprintf(&sb, "Create %d additional URLs for content discovery based on this data. ", numResults)
	sb.WriteString("Provide only relative URLs. Create one URL per line. Do not explain your answers.\n")

	return sb.String()
}

func writeEnumerated(sb *strings.Builder, entries []string, emptyMarker string) {
	if len(entries) == 0 {
		sb.WriteString(emptyMarker)
		sb.WriteString("\n")
		return
	}

	sorted := make([]string, len(entries))
	copy(sorted, entries)
	sort.Strings(sorted)

	for i, entry := range sorted {
		fmt.Fprintf(sb, "%d. %s\n", i+1, entry)
	}
}
