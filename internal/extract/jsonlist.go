package extract

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// replySchema validates the structured-output mode: the model must answer
// with a flat JSON array of strings.
const replySchema = `{
	"type": "array",
	"items": { "type": "string" }
}`

// JSONStrategy expects the reply to be a JSON array of candidate strings,
// for prompts that request structured output. Markdown code fences around
// the JSON are tolerated. A reply that is not a valid string array yields
// *EmptyResponseError, same as prose with no candidates: the model did not
// produce anything usable.
type JSONStrategy struct{}

// Name implements Strategy.
func (JSONStrategy) Name() string { return "json" }

// Extract implements Strategy.
func (JSONStrategy) Extract(reply string) ([]string, error) {
	cleaned := cleanJSONBlock(reply)
	if cleaned == "" {
		return nil, &EmptyResponseError{Strategy: "json"}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(replySchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil || !result.Valid() {
		return nil, &EmptyResponseError{Strategy: "json"}
	}

	var entries []string
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, &EmptyResponseError{Strategy: "json"}
	}

	var candidates []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if IsCandidate(entry) {
			candidates = append(candidates, entry)
		}
	}

	if len(candidates) == 0 {
		return nil, &EmptyResponseError{Strategy: "json"}
	}
	return candidates, nil
}

// cleanJSONBlock removes markdown code fences the model may wrap around its
// JSON even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
