package answer

import (
	"strings"
	"unicode"
)

// Prepositions that introduce a place in "panchang in Mumbai" style
// questions.
var locationPrepositions = []string{"in", "at", "for", "near"}

// locationStopwords are words that follow a preposition without naming a
// place; hitting one ends or invalidates the candidate.
var locationStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "this": true,
	"that": true, "today": true, "tomorrow": true, "tonight": true,
	"morning": true, "evening": true, "afternoon": true, "night": true,
	"time": true, "hindi": true, "english": true,
}

// ExtractLocation pulls a place name out of the question text via
// prepositional patterns ("in X", "at X", "for X"). It returns "" when
// nothing usable is found, in which case the caller falls back to the
// ambient device location.
func ExtractLocation(question string) string {
	words := strings.Fields(question)
	for i := 0; i < len(words)-1; i++ {
		if !isPreposition(words[i]) {
			continue
		}
		candidate := collectPlaceTokens(words[i+1:])
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func isPreposition(word string) bool {
	w := strings.ToLower(strings.Trim(word, ",.?!;:"))
	for _, p := range locationPrepositions {
		if w == p {
			return true
		}
	}
	return false
}

// collectPlaceTokens gathers up to three capitalized tokens after a
// preposition. Lowercase or stopword tokens end the candidate.
func collectPlaceTokens(words []string) string {
	var tokens []string
	for _, raw := range words {
		w := strings.Trim(raw, ",.?!;:")
		if w == "" {
			break
		}
		if locationStopwords[strings.ToLower(w)] {
			break
		}
		if !startsUpper(w) {
			break
		}
		tokens = append(tokens, w)
		if len(tokens) == 3 {
			break
		}
	}
	return strings.Join(tokens, " ")
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}
