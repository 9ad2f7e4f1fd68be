package provider

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type loggedClient struct {
	next   Client
	logger *log.Logger
}

// WithLogging wraps next so every call is traced on logger. Prompts and raw
// answers are only written at debug level.
func WithLogging(next Client, logger *log.Logger) Client {
	if logger == nil {
		return next
	}
	return &loggedClient{next: next, logger: logger}
}

func (c *loggedClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	logger := c.logger.With("model", opts.Model)
	logger.Debug("model request", "temperature", opts.Temperature, "max_tokens", opts.MaxTokens, "prompt", prompt)

	start := time.Now()
	text, err := c.next.Generate(ctx, prompt, opts)
	elapsed := time.Since(start)

	if err != nil {
		logger.Warn("model call failed", "elapsed", elapsed, "err", err)
		return "", err
	}

	logger.Debug("model response", "elapsed", elapsed, "response", text)
	return text, nil
}
