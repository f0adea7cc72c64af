// Package gateway is the boundary to hosted language-model providers. The
// pipeline depends only on the Gateway interface; failures surface as
// *TransportError or *RateLimitError and are terminal for the run; retry
// policy, if any, belongs to the surrounding application.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"glacier/internal/prompt"
)

// Gateway sends a composed prompt and returns the model's raw reply text.
type Gateway interface {
	Send(ctx context.Context, text string, params prompt.Params) (string, error)
	Close() error
}

// TransportError represents a network, auth, or timeout failure talking to
// the provider.
type TransportError struct {
	Op      string
	Timeout bool
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport error: %s timed out: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// RateLimitError represents provider backpressure (HTTP 429 and friends).
type RateLimitError struct {
	Cause error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by provider: %v", e.Cause)
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// wrapSendError maps a raw provider error into the gateway taxonomy. Context
// expiry becomes the timeout variant of TransportError.
func wrapSendError(op string, err error, rateLimited bool) error {
	if rateLimited {
		return &RateLimitError{Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TransportError{Op: op, Timeout: true, Cause: err}
	}
	return &TransportError{Op: op, Cause: err}
}
