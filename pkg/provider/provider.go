// Package provider defines the model client used by the vocabulary pipelines
// and its implementations for the supported generative model services.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Standard errors for model calls.
var (
	ErrInvalidRequest   = errors.New("invalid model request")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrEmptyResponse    = errors.New("model returned empty response")
)

// GenerateOptions carries the per-call settings for a model request.
type GenerateOptions struct {
	// Model is the provider-specific model identifier.
	Model string
	// Temperature must lie in [0,1].
	Temperature float64
	// MaxTokens bounds the length of the answer and must be positive.
	MaxTokens int
	// JSON asks the service for a JSON answer when it supports that mode.
	JSON bool
	// Schema optionally describes the JSON answer. Providers that cannot
	// enforce it fall back to plain JSON mode.
	Schema map[string]any
}

// Client is a generative model: text in, text out. Implementations perform
// exactly one outbound call per Generate and never retry. They hold only
// read-only configuration and are safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// validate checks the preconditions shared by every provider.
func validate(prompt string, opts GenerateOptions) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrInvalidRequest)
	}
	if opts.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidRequest)
	}
	if opts.Temperature < 0 || opts.Temperature > 1 {
		return fmt.Errorf("%w: temperature %.2f outside [0,1]", ErrInvalidRequest, opts.Temperature)
	}
	if opts.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidRequest, opts.MaxTokens)
	}
	return nil
}

// unavailable wraps a transport or service failure.
func unavailable(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrModelUnavailable, name, err)
}

// objectSchema returns the schema only when its root is an object, which is
// what the OpenAI and Anthropic structured output modes accept.
func objectSchema(schema map[string]any) (map[string]any, bool) {
	if schema == nil {
		return nil, false
	}
	if t, _ := schema["type"].(string); t != "object" {
		return nil, false
	}
	return schema, true
}
