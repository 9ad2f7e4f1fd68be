package vocab

import (
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncateSource(t *testing.T) {
	Convey("Given source texts of various lengths", t, func() {
		Convey("Text at the threshold should pass unchanged", func() {
			text := strings.Repeat("a", maxSourceRunes)
			So(truncateSource(text), ShouldEqual, text)
		})

		Convey("Longer text should be cut to the threshold plus the marker", func() {
			text := strings.Repeat("b", 10000)
			got := truncateSource(text)
			So(strings.HasSuffix(got, truncatedMarker), ShouldBeTrue)
			So(utf8.RuneCountInString(strings.TrimSuffix(got, truncatedMarker)), ShouldEqual, 8000)
		})

		Convey("The threshold should count characters, not bytes", func() {
			text := strings.Repeat("詞", 8001)
			got := strings.TrimSuffix(truncateSource(text), truncatedMarker)
			So(utf8.ValidString(got), ShouldBeTrue)
			So(utf8.RuneCountInString(got), ShouldEqual, 8000)
		})
	})
}

func TestExpansionPrompt(t *testing.T) {
	Convey("Given an item to expand", t, func() {
		Convey("A bare lemma should leave out optional lines", func() {
			prompt := expansionPrompt(NewItem("resilience"))
			So(prompt, ShouldContainSubstring, "Word/phrase: resilience\n")
			So(prompt, ShouldNotContainSubstring, "Part of speech:")
			So(prompt, ShouldNotContainSubstring, "Level:")
			So(prompt, ShouldNotContainSubstring, "Original context:")
		})

		Convey("Optional fields and the topic list should be embedded", func() {
			item := NewItem("mitigate")
			item.POS = ptr("verb")
			item.Level = ptr(LevelC1)
			item.Context = ptr("Governments must mitigate risks.")

			prompt := expansionPrompt(item)
			So(prompt, ShouldContainSubstring, "Part of speech: verb")
			So(prompt, ShouldContainSubstring, "Level: C1")
			So(prompt, ShouldContainSubstring, "Original context: Governments must mitigate risks.")
			So(prompt, ShouldContainSubstring, topicList())
			So(prompt, ShouldContainSubstring, `"ielts_topics"`)
		})
	})
}

func TestExtractionPrompt(t *testing.T) {
	Convey("Given an extraction request", t, func() {
		prompt := extractionPrompt("Cities must adapt to climate change.", LevelB2, 5)

		Convey("It should carry the level, the cap and the text", func() {
			So(prompt, ShouldContainSubstring, "CEFR level B2")
			So(prompt, ShouldContainSubstring, "at most 5 items")
			So(prompt, ShouldContainSubstring, `"level": "B2"`)
			So(strings.HasSuffix(prompt, "Cities must adapt to climate change."), ShouldBeTrue)
		})

		Convey("It should ask for base forms and exclude proper nouns", func() {
			So(prompt, ShouldContainSubstring, "base form")
			So(prompt, ShouldContainSubstring, "proper nouns")
			So(prompt, ShouldContainSubstring, "take into account")
		})
	})
}
