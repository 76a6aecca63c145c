package speech

import "strings"

// Voice describes one entry of the platform's synthetic voice inventory.
type Voice struct {
	Label       string `json:"label"`
	ID          string `json:"voice_id"`
	LanguageTag string `json:"language_tag"`
	Language    Language
}

// voicePatterns lists known good voice names or tags per language, matched
// case-insensitively against a voice's label and language tag. Platform
// inventories reshuffle between releases; these patterns keep the pick
// stable.
var voicePatterns = map[Language][]string{
	LangEnglish:   {"en-in", "google uk english female", "daniel", "moira", "en-us"},
	LangHindi:     {"google हिन्दी", "lekha", "hi-in", "hindi"},
	LangKannada:   {"kn-in", "kannada"},
	LangTamil:     {"ta-in", "tamil"},
	LangTelugu:    {"te-in", "telugu"},
	LangMalayalam: {"ml-in", "malayalam"},
}

// DefaultInventory is the curated voice list served when the platform does
// not supply its own inventory. Labels follow common platform naming so the
// pattern tables above resolve against it too.
func DefaultInventory() []Voice {
	return []Voice{
		{Label: "Google UK English Female", ID: "en-GB-f1", LanguageTag: "en-GB", Language: LangEnglish},
		{Label: "Daniel", ID: "en-GB-m1", LanguageTag: "en-GB", Language: LangEnglish},
		{Label: "Moira", ID: "en-IE-f1", LanguageTag: "en-IE", Language: LangEnglish},
		{Label: "Google हिन्दी", ID: "hi-IN-f1", LanguageTag: "hi-IN", Language: LangHindi},
		{Label: "Lekha", ID: "hi-IN-f2", LanguageTag: "hi-IN", Language: LangHindi},
		{Label: "Kannada Female", ID: "kn-IN-f1", LanguageTag: "kn-IN", Language: LangKannada},
		{Label: "Tamil Female", ID: "ta-IN-f1", LanguageTag: "ta-IN", Language: LangTamil},
		{Label: "Telugu Female", ID: "te-IN-f1", LanguageTag: "te-IN", Language: LangTelugu},
		{Label: "Malayalam Female", ID: "ml-IN-f1", LanguageTag: "ml-IN", Language: LangMalayalam},
	}
}

// SelectVoice deterministically picks the best available voice for a
// language. Resolution order: the preferred voice ID when still present,
// then a curated per-language pattern, then a language-tag prefix match,
// then the first voice. The second return is false only when the inventory
// is empty.
func SelectVoice(lang Language, available []Voice, preferredID string) (Voice, bool) {
	if len(available) == 0 {
		return Voice{}, false
	}

	if preferredID != "" {
		for _, v := range available {
			if v.ID == preferredID {
				return v, true
			}
		}
	}

	for _, pattern := range voicePatterns[lang] {
		for _, v := range available {
			if voiceMatches(v, pattern) {
				return v, true
			}
		}
	}

	prefix := string(lang)
	for _, v := range available {
		if strings.HasPrefix(strings.ToLower(v.LanguageTag), prefix) {
			return v, true
		}
	}

	return available[0], true
}

func voiceMatches(v Voice, pattern string) bool {
	p := strings.ToLower(pattern)
	return strings.Contains(strings.ToLower(v.Label), p) ||
		strings.Contains(strings.ToLower(v.LanguageTag), p)
}
