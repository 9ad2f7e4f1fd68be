package vocab

import (
	"github.com/susan8213/vocab-mcp/pkg/tools"
)

// RegisterVocabTools builds every vocabulary tool.
func RegisterVocabTools(expander BatchExpander, extractor TextExtractor) ([]tools.Tool, error) {
	expand, err := NewExpandVocabTool(expander)
	if err != nil {
		return nil, err
	}

	extract, err := NewExtractVocabTool(extractor)
	if err != nil {
		return nil, err
	}

	return []tools.Tool{expand, extract}, nil
}
