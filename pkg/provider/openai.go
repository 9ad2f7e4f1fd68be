package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider implements Client for OpenAI chat models.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates a provider for OpenAI. SDK retries are disabled;
// a failed call is reported to the caller as is.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(0),
		),
	}
}

// Generate produces a single chat completion for prompt.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if err := validate(prompt, opts); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:               opts.Model,
		Temperature:         openai.Float(opts.Temperature),
		MaxCompletionTokens: openai.Int(int64(opts.MaxTokens)),
	}

	if opts.JSON {
		// Structured outputs only accept an object at the root; anything
		// else is requested through the prompt alone.
		if schema, ok := objectSchema(opts.Schema); ok {
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
					JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
						Name:   "vocab_response",
						Schema: schema,
						Strict: openai.Bool(false),
					},
				},
			}
		} else if opts.Schema == nil {
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			}
		}
	}

	chat, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", unavailable("openai", err)
	}

	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: openai", ErrEmptyResponse)
	}

	return chat.Choices[0].Message.Content, nil
}
