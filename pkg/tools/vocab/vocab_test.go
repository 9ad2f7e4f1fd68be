package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/susan8213/vocab-mcp/pkg/provider"
	"github.com/susan8213/vocab-mcp/pkg/tools"
	lexicon "github.com/susan8213/vocab-mcp/pkg/vocab"
)

const expansionAnswer = `{
  "definition_en": "the ability to recover quickly",
  "translation_zh": "韌性",
  "examples_en": ["Communities showed resilience."],
  "synonyms": ["toughness"],
  "ielts_topics": ["Society", "Politics"]
}`

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Generate(ctx context.Context, prompt string, opts provider.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func decode(result *mcp.CallToolResult, target any) {
	So(result.Content, ShouldHaveLength, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	So(ok, ShouldBeTrue)
	So(json.Unmarshal([]byte(text.Text), target), ShouldBeNil)
}

func newTools(client provider.Client) (*ExpandVocabTool, *ExtractVocabTool) {
	registered, err := RegisterVocabTools(
		lexicon.NewExpander(client, lexicon.ExpanderConfig{Model: "test-model"}),
		lexicon.NewExtractor(client, lexicon.ExtractorConfig{Model: "test-model"}),
	)
	So(err, ShouldBeNil)
	So(registered, ShouldHaveLength, 2)
	return registered[0].(*ExpandVocabTool), registered[1].(*ExtractVocabTool)
}

func TestRegisterVocabTools(t *testing.T) {
	Convey("Given the registered vocabulary tools", t, func() {
		expand, extract := newTools(new(mockClient))

		Convey("They should implement the Tool interface", func() {
			So(expand, ShouldImplement, (*tools.Tool)(nil))
			So(extract, ShouldImplement, (*tools.Tool)(nil))
		})

		Convey("They should be named and annotated", func() {
			So(expand.Name(), ShouldEqual, "expand_vocab")
			So(extract.Name(), ShouldEqual, "extract_vocab_from_text")

			for _, handle := range []mcp.Tool{expand.Handle(), extract.Handle()} {
				So(*handle.Annotations.ReadOnlyHint, ShouldBeTrue)
				So(*handle.Annotations.DestructiveHint, ShouldBeFalse)
				So(*handle.Annotations.OpenWorldHint, ShouldBeTrue)
			}
		})

		Convey("The extraction schema should bound max_items", func() {
			schema := extract.Handle().InputSchema
			So(schema.Required, ShouldResemble, []string{"text", "level"})

			maxItems := schema.Properties["max_items"].(map[string]any)
			So(maxItems["type"], ShouldEqual, "integer")
			So(maxItems["minimum"], ShouldEqual, float64(1))
			So(maxItems["maximum"], ShouldEqual, float64(100))
			So(maxItems["default"], ShouldEqual, float64(20))
		})

		Convey("The expansion schema should require a lemma per item", func() {
			schema := expand.Handle().InputSchema
			So(schema.Required, ShouldResemble, []string{"items"})

			items := schema.Properties["items"].(map[string]any)
			So(items["minItems"], ShouldEqual, 1)
			element := items["items"].(map[string]any)
			So(element["required"], ShouldResemble, []string{"lemma"})
		})
	})
}

func TestExpandVocabTool(t *testing.T) {
	Convey("Given the expand_vocab tool over a mock model", t, func() {
		ctx := context.Background()
		client := new(mockClient)
		expand, _ := newTools(client)

		Convey("A well-formed answer should keep only valid topics", func() {
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return(expansionAnswer, nil).Once()

			result, err := expand.Handler(ctx, call("expand_vocab", map[string]any{
				"items": []any{map[string]any{"lemma": "Resilience"}},
			}))
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)

			var payload ExpandResult
			decode(result, &payload)
			So(payload.Success, ShouldEqual, 1)
			So(payload.Total, ShouldEqual, 1)
			So(payload.Errors, ShouldBeNil)
			So(payload.Items[0].Lemma, ShouldEqual, "resilience")
			So(payload.Items[0].Topics, ShouldResemble, []lexicon.Topic{lexicon.TopicSociety})
		})

		Convey("A failing second item should be listed in errors", func() {
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return(expansionAnswer, nil).Once()
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return("", fmt.Errorf("%w: gemini: dial tcp: timeout", provider.ErrModelUnavailable)).Once()

			result, err := expand.Handler(ctx, call("expand_vocab", map[string]any{
				"items": []any{
					map[string]any{"lemma": "resilience"},
					map[string]any{"lemma": "mitigate", "pos": "verb", "level": "C1"},
				},
			}))
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)

			var payload ExpandResult
			decode(result, &payload)
			So(payload.Success, ShouldEqual, 1)
			So(payload.Total, ShouldEqual, 2)
			So(payload.Errors, ShouldResemble, []string{
				`Failed to expand "mitigate": model unavailable: gemini: dial tcp: timeout`,
			})
		})

		Convey("Invalid arguments should produce the error envelope", func() {
			cases := []map[string]any{
				{},
				{"items": []any{}},
				{"items": []any{map[string]any{"lemma": ""}}},
				{"items": []any{map[string]any{"lemma": "   "}}},
				{"items": []any{map[string]any{"lemma": "word", "level": "Z9"}}},
				{"items": "resilience"},
			}
			for _, args := range cases {
				result, err := expand.Handler(ctx, call("expand_vocab", args))
				So(err, ShouldBeNil)
				So(result.IsError, ShouldBeTrue)

				var envelope map[string]any
				decode(result, &envelope)
				So(envelope["error"], ShouldNotBeEmpty)
				So(envelope["success"], ShouldEqual, float64(0))
				So(envelope["total"], ShouldEqual, float64(0))
			}
			client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})
	})
}

func TestExtractVocabTool(t *testing.T) {
	Convey("Given the extract_vocab_from_text tool over a mock model", t, func() {
		ctx := context.Background()
		client := new(mockClient)
		_, extract := newTools(client)

		Convey("An empty text should be rejected before the model is called", func() {
			result, err := extract.Handler(ctx, call("extract_vocab_from_text", map[string]any{
				"text":  "",
				"level": "B2",
			}))
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)

			var envelope ExtractError
			decode(result, &envelope)
			So(envelope.Error, ShouldContainSubstring, "/text")
			client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})

		Convey("Out of range arguments should be rejected", func() {
			cases := []map[string]any{
				{"text": "Some text.", "level": "D1"},
				{"text": "Some text.", "level": "B2", "max_items": float64(0)},
				{"text": "Some text.", "level": "B2", "max_items": float64(101)},
				{"text": "Some text.", "level": "B2", "max_items": 2.5},
				{"text": "   ", "level": "B2"},
				{"level": "B2"},
			}
			for _, args := range cases {
				result, err := extract.Handler(ctx, call("extract_vocab_from_text", args))
				So(err, ShouldBeNil)
				So(result.IsError, ShouldBeTrue)
			}
			client.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
		})

		Convey("The default cap should be twenty", func() {
			client.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
				return strings.Contains(prompt, "at most 20 items")
			}), mock.Anything).Return(`[{"lemma": "Adapt", "pos": "verb"}]`, nil).Once()

			result, err := extract.Handler(ctx, call("extract_vocab_from_text", map[string]any{
				"text":  "Cities must adapt.",
				"level": "B1",
			}))
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)

			var payload lexicon.ExtractionOutcome
			decode(result, &payload)
			So(payload.Total, ShouldEqual, 1)
			So(payload.SourceLength, ShouldEqual, len("Cities must adapt."))
			So(payload.Items[0].Lemma, ShouldEqual, "adapt")
			So(*payload.Items[0].POS, ShouldEqual, "verb")
			So(payload.Items[0].Context, ShouldBeNil)
			client.AssertExpectations(t)
		})

		Convey("More candidates than max_items should be trimmed", func() {
			answer := make([]string, 8)
			for i := range answer {
				answer[i] = fmt.Sprintf(`{"lemma": "word%d"}`, i)
			}
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return("["+strings.Join(answer, ",")+"]", nil).Once()

			result, err := extract.Handler(ctx, call("extract_vocab_from_text", map[string]any{
				"text":      "A long article.",
				"level":     "C1",
				"max_items": float64(5),
			}))
			So(err, ShouldBeNil)

			var payload lexicon.ExtractionOutcome
			decode(result, &payload)
			So(payload.Items, ShouldHaveLength, 5)
			So(payload.Total, ShouldEqual, 5)
		})

		Convey("Long text should report its original length", func() {
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return("[]", nil).Once()

			result, err := extract.Handler(ctx, call("extract_vocab_from_text", map[string]any{
				"text":  strings.Repeat("y", 10000),
				"level": "B2",
			}))
			So(err, ShouldBeNil)

			var payload lexicon.ExtractionOutcome
			decode(result, &payload)
			So(payload.SourceLength, ShouldEqual, 10000)
			So(payload.Items, ShouldBeEmpty)
		})

		Convey("A model failure should produce the error envelope", func() {
			client.On("Generate", mock.Anything, mock.Anything, mock.Anything).
				Return("not json at all", nil).Once()

			result, err := extract.Handler(ctx, call("extract_vocab_from_text", map[string]any{
				"text":  "Cities must adapt.",
				"level": "B2",
			}))
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)

			var envelope map[string]any
			decode(result, &envelope)
			So(envelope, ShouldHaveLength, 1)
			So(envelope["error"], ShouldContainSubstring, "malformed model response")
		})
	})
}
