// Package models provides generative backend adapters and the completer the
// orchestrator talks to.
package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// openaiModel wraps an OpenAI-compatible chat client as a model.LLM.
type openaiModel struct {
	client *openai.Client
	name   string
}

// NewOpenAIModel creates a model.LLM backed by the OpenAI chat completions API.
func NewOpenAIModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newOpenAICompatible(modelName, cfg, "", "openai-go")
}

func newOpenAICompatible(modelName string, cfg *genai.ClientConfig, baseURL, agent string) (*openaiModel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	userAgent := fmt.Sprintf("%s/%s go/%s",
		agent, "1.0.0", strings.TrimPrefix(runtime.Version(), "go"))
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHeader("User-Agent", userAgent),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiModel{
		name:   modelName,
		client: &client,
	}, nil
}

func (m *openaiModel) Name() string {
	return m.name
}

// GenerateContent always answers with a single, complete response; stream is ignored.
func (m *openaiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *openaiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	params := buildOpenAIParams(req, m.name)

	resp, err := m.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		slog.Error("failed to call llm API", "model", m.name, "error", err.Error())
		return nil, fmt.Errorf("failed to call %s: %w", m.name, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return &model.LLMResponse{}, nil
	}

	choice := resp.Choices[0]
	content := &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{},
	}
	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, &genai.Part{Text: choice.Message.Content})
	}

	llmResp := &model.LLMResponse{
		Content:      content,
		TurnComplete: true,
	}
	if choice.FinishReason == "content_filter" {
		llmResp.FinishReason = genai.FinishReasonSafety
	}
	return llmResp, nil
}
