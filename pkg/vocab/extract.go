package vocab

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/susan8213/vocab-mcp/pkg/provider"
)

const (
	extractTemperature = 0.3

	DefaultExtractMaxTokens = 4096
	DefaultMaxItems         = 20
	MinMaxItems             = 1
	MaxMaxItems             = 100
)

// ExtractorConfig carries the read-only settings of an Extractor.
type ExtractorConfig struct {
	Model     string
	MaxTokens int
	Logger    *log.Logger
}

// Extractor selects vocabulary candidates from a text with one model call.
type Extractor struct {
	client provider.Client
	config ExtractorConfig
	schema map[string]any
}

// NewExtractor returns an Extractor that calls client with config.
func NewExtractor(client provider.Client, config ExtractorConfig) *Extractor {
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultExtractMaxTokens
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	return &Extractor{
		client: client,
		config: config,
		schema: extractionSchema(),
	}
}

// Extract asks the model for at most maxItems candidates at level. Any model
// or envelope failure fails the whole call; there is no partial result.
// The answer is trimmed to maxItems when the model returns more.
func (e *Extractor) Extract(ctx context.Context, text string, level Level, maxItems int) (ExtractionOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return ExtractionOutcome{}, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if !level.IsValid() {
		return ExtractionOutcome{}, fmt.Errorf("%w: level %q must be one of %s", ErrValidation, level, strings.Join(LevelStrings(), ", "))
	}
	if maxItems < MinMaxItems || maxItems > MaxMaxItems {
		return ExtractionOutcome{}, fmt.Errorf("%w: max_items %d outside [%d,%d]", ErrValidation, maxItems, MinMaxItems, MaxMaxItems)
	}

	sourceLength := utf8.RuneCountInString(text)
	logger := callLogger(ctx, e.config.Logger).With("level", level, "max_items", maxItems)
	logger.Info("extracting vocabulary", "source_length", sourceLength)

	answer, err := e.client.Generate(ctx, extractionPrompt(text, level, maxItems), provider.GenerateOptions{
		Model:       e.config.Model,
		Temperature: extractTemperature,
		MaxTokens:   e.config.MaxTokens,
		JSON:        true,
		Schema:      e.schema,
	})
	if err != nil {
		return ExtractionOutcome{}, err
	}

	items, err := ParseExtraction(answer)
	if err != nil {
		return ExtractionOutcome{}, err
	}

	if len(items) > maxItems {
		logger.Warn("model returned too many items", "returned", len(items))
		items = items[:maxItems]
	}

	return ExtractionOutcome{
		Items:        items,
		Total:        len(items),
		SourceLength: sourceLength,
	}, nil
}

// extractionSchema is the structured output schema of an extraction answer,
// with the level pinned to the CEFR enumeration.
func extractionSchema() map[string]any {
	schema := provider.GenerateSchema[[]extractionCandidate]()
	items, ok := schema["items"].(map[string]any)
	if !ok {
		return schema
	}
	props, _ := items["properties"].(map[string]any)
	if level, ok := props["level"].(map[string]any); ok {
		level["enum"] = LevelStrings()
	}
	return schema
}
