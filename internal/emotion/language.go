package emotion

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/easeaico/maitri/internal/lexicon"
)

// LanguageEnglish is returned when no language markers are found.
const LanguageEnglish = "english"

// DetectLanguageMix returns "{language}_english_mix" for the language with the most
// marker words in text, or "english" when none match. Ties go to the language
// listed first in the lexicon.
func DetectLanguageMix(text string) string {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		words[w] = struct{}{}
	}
	if len(words) == 0 {
		return LanguageEnglish
	}

	best, bestScore := "", 0
	for _, lang := range lexicon.Languages() {
		score := 0
		for _, marker := range lang.Markers {
			if _, ok := words[marker]; ok {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = lang.Name, score
		}
	}
	if bestScore == 0 {
		return LanguageEnglish
	}
	return fmt.Sprintf("%s_english_mix", best)
}

// LanguageInstruction returns the style directive for a detected language tag.
func LanguageInstruction(tag string) string {
	lang, ok := strings.CutSuffix(tag, "_english_mix")
	if !ok || lang == "" {
		return "Reply in natural, simple English."
	}
	return fmt.Sprintf("Mix %s words naturally with English, the way they wrote to you.", strings.ToUpper(lang[:1])+lang[1:])
}
