package client

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/model"
)

// AnthropicClient talks to the Claude Messages API
type AnthropicClient struct {
	client anthropic.Client
	apiKey string
}

// NewAnthropicClient creates a client with SDK retries disabled, so each
// Complete call is exactly one round trip.
func NewAnthropicClient(cfg *config.AnthropicConfig) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		apiKey: cfg.APIKey,
	}
}

// Complete sends req and returns the first text block of the reply
func (c *AnthropicClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == model.ChatRoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		gwErr := &GatewayError{Provider: c.Name(), Err: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			gwErr.StatusCode = apiErr.StatusCode
		}
		return "", gwErr
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &GatewayError{Provider: c.Name(), Err: ErrNoTextContent}
}

func (c *AnthropicClient) Name() string {
	return "Claude"
}

// IsConfigured returns true if the client has an API key
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}
