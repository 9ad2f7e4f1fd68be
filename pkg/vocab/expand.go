package vocab

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/susan8213/vocab-mcp/pkg/provider"
)

const (
	expandTemperature = 0.7

	DefaultExpandMaxTokens = 2048
	DefaultExpandDelay     = 500 * time.Millisecond
)

// ProgressFunc is told about every finished item of a batch.
type ProgressFunc func(current, total int, item Item)

// ExpanderConfig carries the read-only settings of an Expander.
type ExpanderConfig struct {
	Model     string
	MaxTokens int
	// Delay is the pause between two consecutive items. Zero disables it.
	Delay  time.Duration
	Logger *log.Logger
}

// Expander turns lexical items into study material, one model call per item.
type Expander struct {
	client provider.Client
	config ExpanderConfig
	schema map[string]any
	sleep  func(time.Duration)
}

// NewExpander returns an Expander that calls client with config.
func NewExpander(client provider.Client, config ExpanderConfig) *Expander {
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultExpandMaxTokens
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	return &Expander{
		client: client,
		config: config,
		schema: expansionSchema(),
		sleep:  time.Sleep,
	}
}

// ExpandBatch expands items strictly in order. A failing item is recorded
// and the batch moves on; it never aborts the remaining items. The fixed
// delay is applied between items, after successes and failures alike.
func (e *Expander) ExpandBatch(ctx context.Context, items []Item, progress ProgressFunc) BatchOutcome {
	outcome := BatchOutcome{
		Results: make([]Expanded, 0, len(items)),
		Total:   len(items),
	}

	logger := callLogger(ctx, e.config.Logger)
	for i, item := range items {
		expanded, err := e.expandOne(ctx, item)
		if err != nil {
			logger.Warn("failed to expand vocab item", "lemma", item.Lemma, "err", err)
			outcome.Failures = append(outcome.Failures, Failure{Item: item, Err: err})
		} else {
			outcome.Results = append(outcome.Results, expanded)
		}

		logger.Info("expansion progress", "current", i+1, "total", len(items))
		if progress != nil {
			progress(i+1, len(items), item)
		}

		if i < len(items)-1 {
			e.pause()
		}
	}

	return outcome
}

func (e *Expander) expandOne(ctx context.Context, item Item) (Expanded, error) {
	if err := item.Validate(); err != nil {
		return Expanded{}, err
	}

	text, err := e.client.Generate(ctx, expansionPrompt(item), provider.GenerateOptions{
		Model:       e.config.Model,
		Temperature: expandTemperature,
		MaxTokens:   e.config.MaxTokens,
		JSON:        true,
		Schema:      e.schema,
	})
	if err != nil {
		return Expanded{}, err
	}

	fields, err := ParseExpansion(text)
	if err != nil {
		return Expanded{}, err
	}

	return Expanded{
		Lemma:       item.Lemma,
		Definition:  fields.Definition,
		Translation: fields.Translation,
		Examples:    fields.Examples,
		Synonyms:    fields.Synonyms,
		Topics:      fields.Topics,
	}, nil
}

// callLogger returns the logger a tool call stored in ctx, or fallback.
func callLogger(ctx context.Context, fallback *log.Logger) *log.Logger {
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok {
		return logger
	}
	return fallback
}

func (e *Expander) pause() {
	if e.config.Delay > 0 {
		e.sleep(e.config.Delay)
	}
}

// expansionSchema is the structured output schema of an expansion answer,
// with the topic list pinned to the closed enumeration.
func expansionSchema() map[string]any {
	schema := provider.GenerateSchema[expansionAnswer]()
	setItemsEnum(schema, "ielts_topics", TopicStrings())
	return schema
}

// setItemsEnum restricts the elements of the array property key to values.
func setItemsEnum(schema map[string]any, key string, values []string) {
	props, _ := schema["properties"].(map[string]any)
	prop, _ := props[key].(map[string]any)
	items, ok := prop["items"].(map[string]any)
	if !ok {
		return
	}
	items["enum"] = values
}
