package service

import (
	"context"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/prompt"
)

// LyricsService composes generation prompts and normalizes the replies
type LyricsService struct {
	generator client.TextGenerator
	model     string
	maxTokens int
	isLyrics  LyricsPredicate
}

// NewLyricsService creates a lyrics service using LooksLikeLyrics as the
// success check
func NewLyricsService(generator client.TextGenerator, modelName string, maxTokens int) *LyricsService {
	return &LyricsService{
		generator: generator,
		model:     modelName,
		maxTokens: maxTokens,
		isLyrics:  LooksLikeLyrics,
	}
}

// WithPredicate swaps the lyrics/refusal check.
func (s *LyricsService) WithPredicate(p LyricsPredicate) *LyricsService {
	s.isLyrics = p
	return s
}

// Generate writes lyrics for req. A reply that is not lyrics comes back in
// the response's Error field, not as an error.
func (s *LyricsService) Generate(ctx context.Context, req *model.GenerateRequest) (*model.GenerateResponse, error) {
	if !s.generator.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	p := prompt.BuildGeneration(req)
	logger.Debug("Sending generation prompt", logger.Fields{
		"provider": s.generator.Name(),
		"model":    s.model,
		"length":   len(p),
		"preview":  logger.Preview(p),
	})

	raw, err := s.generator.Complete(ctx, client.UserPrompt(s.model, p, s.maxTokens))
	if err != nil {
		return nil, err
	}

	result := NormalizeGeneration(raw, s.generator.Name(), s.isLyrics)
	if result.Error != "" {
		logger.Warn("Generation reply did not start with a section tag", logger.Fields{
			"provider": s.generator.Name(),
			"reply":    logger.Preview(raw),
		})
	}
	return result, nil
}
