package vocab

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/susan8213/vocab-mcp/pkg/tools"
	lexicon "github.com/susan8213/vocab-mcp/pkg/vocab"
)

// BatchExpander is the expansion pipeline as seen by the tool.
type BatchExpander interface {
	ExpandBatch(ctx context.Context, items []lexicon.Item, progress lexicon.ProgressFunc) lexicon.BatchOutcome
}

// ExpandResult is the success payload of expand_vocab.
type ExpandResult struct {
	Items   []lexicon.Expanded `json:"items"`
	Success int                `json:"success"`
	Total   int                `json:"total"`
	Errors  []string           `json:"errors,omitempty"`
}

// ExpandError is the error payload of expand_vocab.
type ExpandError struct {
	Error   string `json:"error"`
	Success int    `json:"success"`
	Total   int    `json:"total"`
}

type expandArgs struct {
	Items []lexicon.Item `json:"items"`
}

// ExpandVocabTool generates study material for a list of lexical items.
type ExpandVocabTool struct {
	*tools.BaseTool
	expander BatchExpander
}

// NewExpandVocabTool creates the expand_vocab tool on top of expander.
func NewExpandVocabTool(expander BatchExpander) (*ExpandVocabTool, error) {
	handle := mcp.NewTool(
		"expand_vocab",
		mcp.WithDescription("Expand English vocabulary items into IELTS study material: an English definition, a Traditional Chinese translation, IELTS-style example sentences, synonyms and IELTS topic labels."),
		mcp.WithArray(
			"items",
			mcp.Required(),
			mcp.Description("Vocabulary items to expand, processed in order."),
			mcp.MinItems(1),
			mcp.Items(itemSchema()),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	base, err := tools.NewBaseTool(handle)
	if err != nil {
		return nil, err
	}

	return &ExpandVocabTool{BaseTool: base, expander: expander}, nil
}

// Handler validates the items, runs the batch and reports per-item failures
// alongside the expanded items.
func (tool *ExpandVocabTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args expandArgs
	if err := tool.Bind(request, &args); err != nil {
		return tools.NewErrorResult(ExpandError{Error: err.Error()}), nil
	}

	items := make([]lexicon.Item, len(args.Items))
	for i, item := range args.Items {
		item.Lemma = lexicon.NormalizeLemma(item.Lemma)
		if err := item.Validate(); err != nil {
			return tools.NewErrorResult(ExpandError{Error: fmt.Sprintf("items[%d]: %v", i, err)}), nil
		}
		items[i] = item
	}

	logger := tools.Logger(ctx)
	logger.Info("expanding vocab items", "count", len(items))

	var progress lexicon.ProgressFunc
	if notify := tools.Progress(ctx, request); notify != nil {
		progress = func(current, total int, item lexicon.Item) {
			notify(current, total, fmt.Sprintf("expanded %q", item.Lemma))
		}
	}

	outcome := tool.expander.ExpandBatch(ctx, items, progress)

	return tools.NewJSONResult(ExpandResult{
		Items:   outcome.Results,
		Success: outcome.Success(),
		Total:   outcome.Total,
		Errors:  outcome.Messages(),
	}), nil
}

// itemSchema describes one element of the items argument.
func itemSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lemma": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Word or phrase in its base form.",
			},
			"pos": map[string]any{
				"type":        "string",
				"description": "Part of speech, e.g. noun, verb, adjective, adverb, phrase.",
			},
			"level": map[string]any{
				"type":        "string",
				"enum":        lexicon.LevelStrings(),
				"description": "CEFR level of the item.",
			},
			"context": map[string]any{
				"type":        "string",
				"description": "Sentence the item was found in.",
			},
		},
		"required": []string{"lemma"},
	}
}
