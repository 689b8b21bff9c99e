package client

import (
	"github.com/aplaceintime/api/internal/config"
)

// Models names the backend model used by each flow
type Models struct {
	Generate string
	Analyze  string
	Chat     string
}

// NewTextGenerator picks the backend named by llm.provider. Anything other
// than groq falls back to Anthropic.
func NewTextGenerator(cfg *config.Config) (TextGenerator, Models) {
	if cfg.LLM.Provider == config.ProviderGroq {
		m := cfg.Groq.Model
		return NewGroqClient(&cfg.Groq), Models{Generate: m, Analyze: m, Chat: m}
	}
	return NewAnthropicClient(&cfg.Anthropic), Models{
		Generate: cfg.Anthropic.GenerateModel,
		Analyze:  cfg.Anthropic.AnalyzeModel,
		Chat:     cfg.Anthropic.ChatModel,
	}
}
