package service

import (
	"context"

	"github.com/aplaceintime/api/internal/client"
	"github.com/aplaceintime/api/internal/logger"
	"github.com/aplaceintime/api/internal/model"
	"github.com/aplaceintime/api/internal/prompt"
)

// AnalysisService asks the backend for a JSON flow analysis of lyrics
type AnalysisService struct {
	generator client.TextGenerator
	model     string
	maxTokens int
}

func NewAnalysisService(generator client.TextGenerator, modelName string, maxTokens int) *AnalysisService {
	return &AnalysisService{
		generator: generator,
		model:     modelName,
		maxTokens: maxTokens,
	}
}

// Analyze returns *model.AnalysisOK or *model.AnalysisParseFailed. Only
// gateway and configuration problems are errors.
func (s *AnalysisService) Analyze(ctx context.Context, lyrics string) (model.AnalysisResult, error) {
	if !s.generator.IsConfigured() {
		return nil, client.ErrNotConfigured
	}

	logger.Debug("Sending analysis prompt", logger.Fields{
		"provider": s.generator.Name(),
		"model":    s.model,
		"lyrics":   logger.Preview(lyrics),
	})

	raw, err := s.generator.Complete(ctx, client.UserPrompt(s.model, prompt.BuildAnalysis(lyrics), s.maxTokens))
	if err != nil {
		return nil, err
	}

	result := NormalizeAnalysis(raw)
	if failed, ok := result.(*model.AnalysisParseFailed); ok {
		logger.Warn("Analysis reply was not usable JSON", logger.Fields{
			"reason": failed.Message,
			"reply":  logger.Preview(raw),
		})
	}
	return result, nil
}
