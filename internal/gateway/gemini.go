package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"glacier/internal/prompt"
)

// GeminiGateway implements Gateway for Google Gemini.
type GeminiGateway struct {
	client *genai.Client
}

// NewGeminiGateway builds a gateway from the injected credential.
func NewGeminiGateway(ctx context.Context, creds CredentialProvider) (*GeminiGateway, error) {
	key, err := creds.APIKey()
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGateway{client: client}, nil
}

// Send issues one generation with temperature 0, bounded by the request's
// token budget.
func (g *GeminiGateway) Send(ctx context.Context, text string, params prompt.Params) (string, error) {
	model := g.client.GenerativeModel(params.Model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(int32(params.MaxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		var apiErr *googleapi.Error
		rateLimited := errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
		return "", wrapSendError("gemini generate content", err, rateLimited)
	}

	reply, err := textFromResponse(resp)
	if err != nil {
		return "", &TransportError{Op: "gemini generate content", Cause: err}
	}
	return strings.TrimSpace(reply), nil
}

// Close releases the underlying client.
func (g *GeminiGateway) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
