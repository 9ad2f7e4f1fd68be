package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const jsonOnlyInstruction = "Respond with valid JSON only. Do not add any other text or explanation."

// AnthropicProvider implements Client for Anthropic Claude models.
type AnthropicProvider struct {
	client anthropic.Client
}

// NewAnthropicProvider creates a provider for Anthropic with SDK retries disabled.
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
	}
}

// Generate creates a single message and concatenates its text blocks.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validate(prompt, opts); err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(opts.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(opts.Temperature),
	}

	if opts.JSON {
		params.System = []anthropic.TextBlockParam{{Text: jsonOnlyInstruction}}
		if schema, ok := objectSchema(opts.Schema); ok {
			params.OutputConfig = anthropic.OutputConfigParam{
				Format: anthropic.JSONOutputFormatParam{Schema: schema},
			}
		}
	}

	response, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", unavailable("anthropic", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: anthropic", ErrEmptyResponse)
	}

	return text.String(), nil
}
