package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// LLMCompleter turns a model.LLM into a prompt-in, text-out completer.
type LLMCompleter struct {
	llm model.LLM
}

// NewLLMCompleter returns an LLMCompleter.
func NewLLMCompleter(llm model.LLM) *LLMCompleter {
	return &LLMCompleter{llm: llm}
}

// Name returns the underlying model name.
func (c *LLMCompleter) Name() string {
	if c == nil || c.llm == nil {
		return ""
	}
	return c.llm.Name()
}

// Complete sends prompt as a single user turn. Every failure, including an empty
// completion, is returned as a *BackendError.
func (c *LLMCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.llm == nil {
		return "", NewBackendError(ErrorKindUnknown, fmt.Errorf("completer not configured"))
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
	}

	seq := c.llm.GenerateContent(ctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", NewBackendError("", err)
	}
	if resp == nil {
		return "", NewBackendError(ErrorKindEmpty, ErrEmptyCompletion)
	}
	if isSafetyFinish(resp.FinishReason) {
		return "", NewBackendError(ErrorKindSafetyBlocked,
			fmt.Errorf("response blocked by safety filter: %s", resp.FinishReason))
	}
	if resp.ErrorCode != "" {
		return "", NewBackendError("", fmt.Errorf("backend error %s: %s", resp.ErrorCode, resp.ErrorMessage))
	}

	text := strings.TrimSpace(contentText(resp.Content))
	if text == "" {
		return "", NewBackendError(ErrorKindEmpty, ErrEmptyCompletion)
	}
	return text, nil
}
