// Package vocab holds the vocabulary domain model and the two model-backed
// pipelines: expansion of lexical items and extraction of items from text.
package vocab

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists every level from lowest to highest.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// ParseLevel converts s into a Level, rejecting anything outside the enumeration.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: level %q must be one of %s", ErrValidation, s, strings.Join(LevelStrings(), ", "))
	}
	return l, nil
}

// LevelStrings returns the level enumeration as plain strings, in order.
func LevelStrings() []string {
	out := make([]string, len(Levels))
	for i, l := range Levels {
		out[i] = string(l)
	}
	return out
}

// Item is a lexical item to be expanded. It is produced either by a caller
// or by the extraction pipeline.
type Item struct {
	Lemma   string  `json:"lemma"`
	POS     *string `json:"pos,omitempty"`
	Level   *Level  `json:"level,omitempty"`
	Context *string `json:"context,omitempty"`
}

// NewItem builds an Item with a normalized lemma.
func NewItem(lemma string) Item {
	return Item{Lemma: NormalizeLemma(lemma)}
}

// Validate checks the invariants an Item must hold before it reaches a pipeline.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Lemma) == "" {
		return fmt.Errorf("%w: lemma is required", ErrValidation)
	}
	if i.Level != nil && !i.Level.IsValid() {
		return fmt.Errorf("%w: level %q must be one of %s", ErrValidation, *i.Level, strings.Join(LevelStrings(), ", "))
	}
	return nil
}

// Expanded is the study material generated for a single Item.
type Expanded struct {
	Lemma       string   `json:"lemma"`
	Definition  string   `json:"definition_en"`
	Translation string   `json:"translation_zh"`
	Examples    []string `json:"examples_en"`
	Synonyms    []string `json:"synonyms"`
	Topics      []Topic  `json:"ielts_topics"`
}

// Failure records an item the expansion pipeline could not process.
type Failure struct {
	Item Item
	Err  error
}

// Message renders the failure the way it is reported to tool callers.
func (f Failure) Message() string {
	return fmt.Sprintf("Failed to expand \"%s\": %v", f.Item.Lemma, f.Err)
}

// BatchOutcome is the result of one expansion batch.
type BatchOutcome struct {
	Results  []Expanded
	Failures []Failure
	Total    int
}

// Success is the number of items expanded successfully.
func (b BatchOutcome) Success() int { return len(b.Results) }

// Messages returns one message per failure, or nil when nothing failed.
func (b BatchOutcome) Messages() []string {
	if len(b.Failures) == 0 {
		return nil
	}
	out := make([]string, len(b.Failures))
	for i, f := range b.Failures {
		out[i] = f.Message()
	}
	return out
}

// ExtractionOutcome is the result of one extraction call.
type ExtractionOutcome struct {
	Items        []Item `json:"items"`
	Total        int    `json:"total"`
	SourceLength int    `json:"source_length"`
}

// NormalizeLemma lowercases and trims a lemma. It is idempotent.
func NormalizeLemma(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ptr[T any](v T) *T { return &v }
