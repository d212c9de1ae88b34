package models

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrorKind classifies a generative backend failure.
type ErrorKind string

const (
	ErrorKindRateLimited   ErrorKind = "rate_limited"
	ErrorKindSafetyBlocked ErrorKind = "safety_blocked"
	ErrorKindNetwork       ErrorKind = "network"
	ErrorKindEmpty         ErrorKind = "empty"
	ErrorKindUnknown       ErrorKind = "unknown"
)

// ErrEmptyCompletion is returned when the backend answers without text.
var ErrEmptyCompletion = errors.New("backend returned empty completion")

// BackendError is the typed failure returned by completers.
type BackendError struct {
	Kind ErrorKind
	Err  error
}

// NewBackendError wraps err, classifying it when kind is empty.
func NewBackendError(kind ErrorKind, err error) *BackendError {
	if kind == "" {
		kind = Classify(err)
	}
	return &BackendError{Kind: kind, Err: err}
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("backend error (%s)", e.Kind)
	}
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by a BackendError in err's chain, classifying
// untyped errors otherwise.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Kind != "" {
		return backendErr.Kind
	}
	return Classify(err)
}

// Classify maps provider errors onto an ErrorKind. Typed provider errors are
// inspected first; the message is only consulted for errors with no type information.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return ErrorKindEmpty
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorKindNetwork
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return kindFromStatus(genaiErr.Code, genaiErr.Status)
	}
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		if openaiErr.Code == "content_filter" {
			return ErrorKindSafetyBlocked
		}
		return kindFromStatus(openaiErr.StatusCode, openaiErr.Code)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorKindNetwork
	}

	return classifyMessage(err.Error())
}

func kindFromStatus(code int, status string) ErrorKind {
	switch {
	case code == http.StatusTooManyRequests || strings.EqualFold(status, "RESOURCE_EXHAUSTED"):
		return ErrorKindRateLimited
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return ErrorKindNetwork
	default:
		return ErrorKindUnknown
	}
}

func classifyMessage(msg string) ErrorKind {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "limit"):
		return ErrorKindRateLimited
	case strings.Contains(msg, "safety") || strings.Contains(msg, "blocked"):
		return ErrorKindSafetyBlocked
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection"):
		return ErrorKindNetwork
	default:
		return ErrorKindUnknown
	}
}

func isSafetyFinish(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent, genai.FinishReasonSPII:
		return true
	default:
		return false
	}
}
