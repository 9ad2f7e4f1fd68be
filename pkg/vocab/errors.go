package vocab

import (
	"errors"

	"github.com/susan8213/vocab-mcp/pkg/provider"
)

// Sentinel errors used across the pipelines. Use errors.Is to check.
var (
	ErrValidation        = errors.New("validation error")
	ErrMalformedResponse = errors.New("malformed model response")

	// Model service failures are reported by the provider package.
	ErrModelUnavailable = provider.ErrModelUnavailable
	ErrEmptyResponse    = provider.ErrEmptyResponse
)
