package client

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"

	"github.com/aplaceintime/api/internal/config"
	"github.com/aplaceintime/api/internal/model"
)

// GroqClient handles communication with Groq's OpenAI-compatible API
type GroqClient struct {
	client openai.Client
	apiKey string
	model  string
}

// NewGroqClient creates a new Groq API client
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	return &GroqClient{
		client: openai.NewClient(
			oaioption.WithAPIKey(cfg.APIKey),
			oaioption.WithBaseURL(cfg.BaseURL),
			oaioption.WithMaxRetries(0),
		),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// Complete sends a chat completion request and returns the first choice
func (c *GroqClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	modelName := req.Model
	if modelName == "" {
		modelName = c.model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		if m.Role == model.ChatRoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		gwErr := &GatewayError{Provider: c.Name(), Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			gwErr.StatusCode = apiErr.StatusCode
		}
		return "", gwErr
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GatewayError{Provider: c.Name(), Err: ErrNoTextContent}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *GroqClient) Name() string {
	return "Groq"
}

// IsConfigured returns true if the client has valid configuration
func (c *GroqClient) IsConfigured() bool {
	return c.apiKey != ""
}
