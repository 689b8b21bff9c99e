package service

import (
	"context"
	"errors"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/prompt"
)

// ChatService answers the site's chat assistant
type ChatService struct {
	generator client.TextGenerator
	model     string
	maxTokens int
}

func NewChatService(generator client.TextGenerator, modelName string, maxTokens int) *ChatService {
	return &ChatService{
		generator: generator,
		model:     modelName,
		maxTokens: maxTokens,
	}
}

// Reply sends the history plus the new message under the assistant persona.
func (s *ChatService) Reply(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	if !s.generator.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	messages := make([]model.ChatMessage, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, model.ChatMessage{Role: model.ChatRoleUser, Content: req.Message})

	raw, err := s.generator.Complete(ctx, &client.CompletionRequest{
		Model:     s.model,
		System:    prompt.ChatSystem,
		Messages:  messages,
		MaxTokens: s.maxTokens,
	})
	if errors.Is(err, client.ErrNoTextContent) {
		logger.Warn("Chat reply had no text block", logger.Fields{"provider": s.generator.Name()})
		return &model.ChatResponse{Reply: ChatApology}, nil
	}
	if err != nil {
		return nil, err
	}

	return &model.ChatResponse{Reply: NormalizeChat(raw)}, nil
}
