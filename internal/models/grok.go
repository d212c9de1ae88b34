package models

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const xaiBaseURL = "https://api.x.ai/v1"

// NewGrokModel talks to xAI's OpenAI-compatible endpoint.
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, xaiBaseURL, "grok-go")
}
