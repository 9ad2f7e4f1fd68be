package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider implements Client for Google Gemini models.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a provider for the Gemini API using the given key.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

// Generate sends one GenerateContent request and returns the answer text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validate(prompt, opts); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(opts.Temperature)),
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
		if opts.Schema != nil {
			config.ResponseJsonSchema = opts.Schema
		}
	}

	response, err := p.client.Models.GenerateContent(ctx, opts.Model, genai.Text(prompt), config)
	if err != nil {
		return "", unavailable("gemini", err)
	}

	text := response.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: gemini", ErrEmptyResponse)
	}

	return text, nil
}
