package vocab

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/susan8213/vocab-mcp/pkg/tools"
	lexicon "github.com/susan8213/vocab-mcp/pkg/vocab"
)

// TextExtractor is the extraction pipeline as seen by the tool.
type TextExtractor interface {
	Extract(ctx context.Context, text string, level lexicon.Level, maxItems int) (lexicon.ExtractionOutcome, error)
}

// ExtractError is the error payload of extract_vocab_from_text.
type ExtractError struct {
	Error string `json:"error"`
}

type extractArgs struct {
	Text     string `json:"text"`
	Level    string `json:"level"`
	MaxItems *int   `json:"max_items,omitempty"`
}

// ExtractVocabTool selects vocabulary at a CEFR level from a plain text.
type ExtractVocabTool struct {
	*tools.BaseTool
	extractor TextExtractor
}

// NewExtractVocabTool creates the extract_vocab_from_text tool on top of extractor.
func NewExtractVocabTool(extractor TextExtractor) (*ExtractVocabTool, error) {
	handle := mcp.NewTool(
		"extract_vocab_from_text",
		mcp.WithDescription("Extract English words and phrases suited to a CEFR level from a text, with the sentence each one appears in. The result can be passed to expand_vocab."),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Source text. Only the first 8000 characters are analysed."),
		),
		mcp.WithString(
			"level",
			mcp.Required(),
			mcp.Enum(lexicon.LevelStrings()...),
			mcp.Description("Target CEFR level."),
		),
		mcp.WithNumber(
			"max_items",
			integer(),
			mcp.Min(lexicon.MinMaxItems),
			mcp.Max(lexicon.MaxMaxItems),
			mcp.DefaultNumber(lexicon.DefaultMaxItems),
			mcp.Description("Maximum number of items to return (default 20)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	base, err := tools.NewBaseTool(handle)
	if err != nil {
		return nil, err
	}

	return &ExtractVocabTool{BaseTool: base, extractor: extractor}, nil
}

// Handler validates the arguments and runs a single extraction. Any failure
// is reported as an error envelope; there is no partial result.
func (tool *ExtractVocabTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args extractArgs
	if err := tool.Bind(request, &args); err != nil {
		return tools.NewErrorResult(ExtractError{Error: err.Error()}), nil
	}

	level, err := lexicon.ParseLevel(args.Level)
	if err != nil {
		return tools.NewErrorResult(ExtractError{Error: err.Error()}), nil
	}

	maxItems := lexicon.DefaultMaxItems
	if args.MaxItems != nil {
		maxItems = *args.MaxItems
	}

	outcome, err := tool.extractor.Extract(ctx, args.Text, level, maxItems)
	if err != nil {
		tools.Logger(ctx).Error("failed to extract vocabulary", "err", err)
		return tools.NewErrorResult(ExtractError{Error: err.Error()}), nil
	}

	return tools.NewJSONResult(outcome), nil
}

// integer narrows a number property to whole numbers.
func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}
