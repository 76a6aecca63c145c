// Package speech prepares assistant text for audible playback: it
// normalizes mixed-script dates and times into a speakable canonical form,
// cuts long text into utterance-sized chunks, resolves platform voices, and
// defines the synthesis/transcription provider contracts.
package speech

import "strings"

// Language is a supported guidance language, identified by ISO 639-1 code.
type Language string

const (
	LangEnglish   Language = "en"
	LangHindi     Language = "hi"
	LangKannada   Language = "kn"
	LangTamil     Language = "ta"
	LangTelugu    Language = "te"
	LangMalayalam Language = "ml"
)

// Supported lists every language the pipeline handles, English first.
var Supported = []Language{
	LangEnglish, LangHindi, LangKannada, LangTamil, LangTelugu, LangMalayalam,
}

// ParseLanguage maps a language code or tag to a supported language.
// Unknown input falls back to English.
func ParseLanguage(s string) Language {
	code := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, l := range Supported {
		if code == string(l) {
			return l
		}
	}
	return LangEnglish
}
