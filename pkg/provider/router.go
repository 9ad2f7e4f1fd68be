package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Supported provider names.
const (
	Gemini    = "gemini"
	OpenAI    = "openai"
	Anthropic = "anthropic"
)

// Factory builds a Client from an API key.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// Router maps provider names to factories.
type Router struct {
	factories map[string]Factory
}

// NewRouter returns a Router with the built-in providers registered.
func NewRouter() *Router {
	return &Router{
		factories: map[string]Factory{
			Gemini: func(ctx context.Context, apiKey string) (Client, error) {
				return NewGeminiProvider(ctx, apiKey)
			},
			OpenAI: func(_ context.Context, apiKey string) (Client, error) {
				return NewOpenAIProvider(apiKey), nil
			},
			Anthropic: func(_ context.Context, apiKey string) (Client, error) {
				return NewAnthropicProvider(apiKey), nil
			},
		},
	}
}

// Register adds or replaces the factory for name.
func (r *Router) Register(name string, factory Factory) {
	r.factories[strings.ToLower(name)] = factory
}

// Build creates the client registered under name.
func (r *Router) Build(ctx context.Context, name, apiKey string) (Client, error) {
	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q (available: %s)",
			ErrInvalidRequest, name, strings.Join(r.Names(), ", "))
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: missing API key for %s", ErrInvalidRequest, name)
	}
	return factory(ctx, apiKey)
}

// Names returns the registered provider names in sorted order.
func (r *Router) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds a client for one of the built-in providers.
func New(ctx context.Context, name, apiKey string) (Client, error) {
	return NewRouter().Build(ctx, name, apiKey)
}
