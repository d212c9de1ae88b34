package models

import (
	"context"
	"fmt"

	"github.com/easeaico/maitri/internal/config"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// NewLLM builds the model.LLM selected by cfg.Backend.
func NewLLM(ctx context.Context, cfg config.Config) (model.LLM, error) {
	switch cfg.Backend {
	case config.BackendGemini:
		return NewGeminiModel(ctx, cfg.LLMModel, cfg.GoogleAPIKey)
	case config.BackendOpenAI:
		return NewOpenAIModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.OpenAIAPIKey})
	case config.BackendGrok:
		return NewGrokModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.XAIAPIKey})
	case config.BackendOpenRouter:
		return NewOpenRouterModel(ctx, cfg.LLMModel, &genai.ClientConfig{APIKey: cfg.OpenRouterAPIKey})
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

// NewCompleter builds the completer for cfg.Backend.
func NewCompleter(ctx context.Context, cfg config.Config) (*LLMCompleter, error) {
	llm, err := NewLLM(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", cfg.Backend, err)
	}
	return NewLLMCompleter(llm), nil
}
