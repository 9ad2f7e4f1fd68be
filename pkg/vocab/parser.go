package vocab

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	maxExamples = 3
	maxTopics   = 3
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```[a-z0-9_+-]*\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// StripFence removes a Markdown code fence wrapped around a model answer.
// The opening fence may carry a language tag in any case.
func StripFence(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseEnvelope is the strict structural pass: it strips any fence and
// decodes the remainder as JSON. It never returns a partial value.
func ParseEnvelope(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(StripFence(text)), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}

// ExpansionFields is the coerced content of an expansion answer.
type ExpansionFields struct {
	Definition  string
	Translation string
	Examples    []string
	Synonyms    []string
	Topics      []Topic
}

// expansionAnswer describes the answer shape requested from the model.
// It is reflected into a JSON schema for structured output.
type expansionAnswer struct {
	DefinitionEn  string   `json:"definition_en" jsonschema_description:"A clear, concise definition in English"`
	TranslationZh string   `json:"translation_zh" jsonschema_description:"A concise Traditional Chinese translation"`
	ExamplesEn    []string `json:"examples_en" jsonschema_description:"2-3 example sentences set in IELTS speaking or writing contexts"`
	Synonyms      []string `json:"synonyms" jsonschema_description:"2-4 synonyms"`
	IELTSTopics   []string `json:"ielts_topics" jsonschema_description:"1-3 topics chosen only from the allowed list"`
}

// extractionCandidate describes one element of the extraction answer.
type extractionCandidate struct {
	Lemma   string `json:"lemma" jsonschema_description:"Base form of the word or phrase"`
	POS     string `json:"pos,omitempty" jsonschema:"enum=noun,enum=verb,enum=adjective,enum=adverb,enum=phrase"`
	Level   string `json:"level,omitempty"`
	Context string `json:"context,omitempty" jsonschema_description:"The sentence of the source text the item came from"`
}

// ParseExpansion parses a model answer for one expansion request.
// Non-JSON text or a non-object top level fails; individual fields that are
// missing or mistyped fall back to empty values.
func ParseExpansion(text string) (ExpansionFields, error) {
	v, err := ParseEnvelope(text)
	if err != nil {
		return ExpansionFields{}, err
	}
	return coerceExpansion(v)
}

func coerceExpansion(v any) (ExpansionFields, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return ExpansionFields{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, jsonKind(v))
	}

	fields := ExpansionFields{
		Definition:  stringField(obj, "definition_en"),
		Translation: stringField(obj, "translation_zh"),
		Examples:    stringList(obj, "examples_en"),
		Synonyms:    stringList(obj, "synonyms"),
		Topics:      uniqueTopics(FilterTopics(stringList(obj, "ielts_topics"))),
	}
	if len(fields.Examples) > maxExamples {
		fields.Examples = fields.Examples[:maxExamples]
	}
	if len(fields.Topics) > maxTopics {
		fields.Topics = fields.Topics[:maxTopics]
	}
	return fields, nil
}

// ParseExtraction parses a model answer for an extraction request.
// The top level must be an array; elements without a usable lemma are
// dropped and optional fields are kept only when they are strings.
func ParseExtraction(text string) ([]Item, error) {
	v, err := ParseEnvelope(text)
	if err != nil {
		return nil, err
	}
	return coerceExtraction(v)
}

func coerceExtraction(v any) ([]Item, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrMalformedResponse, jsonKind(v))
	}

	items := make([]Item, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		lemma, ok := obj["lemma"].(string)
		if !ok || strings.TrimSpace(lemma) == "" {
			continue
		}

		item := Item{Lemma: NormalizeLemma(lemma)}
		if pos, ok := obj["pos"].(string); ok {
			item.POS = ptr(pos)
		}
		if level, ok := obj["level"].(string); ok {
			item.Level = ptr(Level(level))
		}
		if context, ok := obj["context"].(string); ok {
			item.Context = ptr(context)
		}
		items = append(items, item)
	}
	return items, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringList(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func uniqueTopics(topics []Topic) []Topic {
	seen := make(map[Topic]struct{}, len(topics))
	out := topics[:0]
	for _, t := range topics {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
