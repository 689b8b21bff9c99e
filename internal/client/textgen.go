package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/aplaceintime/api/internal/model"
)

var (
	// ErrNotConfigured is returned before any network call when a required
	// credential is absent.
	ErrNotConfigured = errors.New("credentials not configured")

	// ErrNoTextContent means the backend replied without a text block.
	ErrNoTextContent = errors.New("no text content in response")
)

// CompletionRequest is a single round trip to a text-generation backend.
// System may be empty. Messages alternate user/assistant, oldest first, and
// end with a user turn.
type CompletionRequest struct {
	Model     string
	System    string
	Messages  []model.ChatMessage
	MaxTokens int
}

// UserPrompt builds a request carrying one user message.
func UserPrompt(modelName, prompt string, maxTokens int) *CompletionRequest {
	return &CompletionRequest{
		Model:     modelName,
		Messages:  []model.ChatMessage{{Role: model.ChatRoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}

// TextGenerator sends a completion request and returns the raw reply text.
type TextGenerator interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	// Name is the human-facing backend name used in messages, e.g. "Claude".
	Name() string
	IsConfigured() bool
}

// GatewayError wraps a failed call to an upstream API. The upstream detail
// is kept in Err.
type GatewayError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
