package models

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

func NewOpenRouterModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, openRouterBaseURL, "openrouter-go")
}
