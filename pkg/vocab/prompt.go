package vocab

import (
	"fmt"
	"strings"
)

const (
	// maxSourceRunes bounds the text sent to the model for extraction.
	maxSourceRunes  = 8000
	truncatedMarker = "\n...[truncated]"
)

// truncateSource cuts text to maxSourceRunes characters and appends the
// truncation marker. Shorter text is returned unchanged.
func truncateSource(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSourceRunes {
		return text
	}
	return string(runes[:maxSourceRunes]) + truncatedMarker
}

func expansionPrompt(item Item) string {
	var b strings.Builder

	b.WriteString("Build study material for the following English word or phrase.\n\n")
	fmt.Fprintf(&b, "Word/phrase: %s\n", item.Lemma)
	if item.POS != nil && *item.POS != "" {
		fmt.Fprintf(&b, "Part of speech: %s\n", *item.POS)
	}
	if item.Level != nil && *item.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", *item.Level)
	}
	if item.Context != nil && *item.Context != "" {
		fmt.Fprintf(&b, "Original context: %s\n", *item.Context)
	}

	b.WriteString(`
Provide:
1. An English definition, short and clear.
2. A concise Traditional Chinese translation.
3. 2-3 example sentences set in realistic IELTS speaking or writing situations.
4. 2-4 synonyms, as appropriate.
5. 1-3 of the most relevant IELTS topic labels, chosen from this list:
   `)
	b.WriteString(topicList())
	b.WriteString(`

Respond in JSON using exactly this format:
{
  "definition_en": "A clear definition in English",
  "translation_zh": "繁體中文翻譯",
  "examples_en": [
    "Example sentence 1 in IELTS context.",
    "Example sentence 2 in IELTS context."
  ],
  "synonyms": ["synonym1", "synonym2"],
  "ielts_topics": ["Topic1", "Topic2"]
}

Rules:
- examples_en must hold 2-3 sentences that reflect real exam situations
- ielts_topics must be picked from the list above; never invent a label
- the answer must be valid JSON
- do not include any other text or explanation`)

	return b.String()
}

func extractionPrompt(text string, level Level, maxItems int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an IELTS English teaching expert. From the article below, extract English words and phrases suited to learners at CEFR level %s.\n\n", level)
	b.WriteString("## Extraction rules\n")
	fmt.Fprintf(&b, "- Only choose vocabulary that matches level %s (neither too easy nor too hard)\n", level)
	b.WriteString("- Prefer vocabulary that is useful in IELTS writing or speaking\n")
	b.WriteString("- Include multi-word expressions such as verb and noun phrases (e.g. \"take into account\", \"in terms of\")\n")
	b.WriteString("- Give each item the sentence of the article it appears in as context\n")
	b.WriteString("- Exclude proper nouns such as names of people and places, and abbreviations\n")
	fmt.Fprintf(&b, "- Extract at most %d items\n", maxItems)
	b.WriteString("- Reduce each lemma to its base form (verbs in the infinitive, nouns in the singular)\n\n")

	b.WriteString("## Output format\n")
	b.WriteString("Respond with a JSON array in this format:\n")
	fmt.Fprintf(&b, `[
  {
    "lemma": "resilience",
    "pos": "noun",
    "level": "%s",
    "context": "The resilience of local communities was put to the test."
  }
]
`, level)
	b.WriteString("\nAllowed pos values: noun, verb, adjective, adverb, phrase\n\n")

	b.WriteString("## Article\n")
	b.WriteString(truncateSource(text))

	return b.String()
}
