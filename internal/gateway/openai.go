package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"glacier/internal/prompt"
)

// OpenAIGateway implements Gateway using the official openai-go SDK (chat
// completions).
type OpenAIGateway struct {
	opts []option.RequestOption
}

// NewOpenAIGateway builds a gateway from the injected credential. baseURL is
// optional and supports API-compatible proxies.
func NewOpenAIGateway(creds CredentialProvider, baseURL string) (*OpenAIGateway, error) {
	key, err := creds.APIKey()
	if err != nil {
		return nil, err
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIGateway{opts: opts}, nil
}

// Send issues one chat completion with temperature 0 for reproducible
// output, bounded by the request's token budget.
func (g *OpenAIGateway) Send(ctx context.Context, text string, params prompt.Params) (string, error) {
	client := openai.NewClient(g.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(text),
		},
		MaxTokens:   openai.Int(int64(params.MaxTokens)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		var apiErr *openai.Error
		rateLimited := errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
		return "", wrapSendError("openai chat completion", err, rateLimited)
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{Op: "openai chat completion", Cause: errors.New("response contains no choices")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Close implements Gateway; the SDK client holds no resources to release.
func (g *OpenAIGateway) Close() error {
	return nil
}
