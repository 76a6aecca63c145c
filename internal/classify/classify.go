// Package classify decides whether a question belongs to the spiritual
// domain and, when it does, which structural shape its answer should take.
package classify

import "strings"

// Verdict is the domain gate result for a user question.
type Verdict string

const (
	VerdictSpiritual Verdict = "spiritual"
	VerdictSecular   Verdict = "secular"
)

// QuestionType selects the formatting layout for an answer.
type QuestionType string

const (
	TypePanchang QuestionType = "panchang"
	TypeFestival QuestionType = "festival"
	TypeTiming   QuestionType = "timing"
	TypeGeneral  QuestionType = "general"
)

// Classify matches the question against the spiritual keyword tables.
// It is a substring gate, not NLU: paraphrases with no keyword overlap
// come back secular, and that is accepted behavior. Unmatched text never
// errors, it defaults to secular.
func Classify(question string) Verdict {
	q := strings.ToLower(question)
	if q == "" {
		return VerdictSecular
	}
	for _, group := range [][]string{
		panchangKeywords,
		festivalKeywords,
		timingKeywords,
		ritualKeywords,
		astrologyKeywords,
	} {
		if matchesAny(q, group) {
			return VerdictSpiritual
		}
	}
	return VerdictSecular
}

// DetectQuestionType runs an ordered cascade: panchang vocabulary and
// today/now phrasing are checked before festival names because festival
// tables share day-words ("today", festival tithis) broad enough to shadow
// panchang questions in a single-pass check. Ties resolve to the first
// matching category.
func DetectQuestionType(question string) QuestionType {
	q := strings.ToLower(question)

	if matchesAny(q, panchangKeywords) {
		return TypePanchang
	}
	if matchesAnyWord(q, todayNowPhrases) && (matchesAny(q, timingKeywords) || matchesAny(q, ritualKeywords)) {
		return TypePanchang
	}
	if matchesAny(q, festivalKeywords) {
		return TypeFestival
	}
	if matchesAny(q, whenIsPhrases) && matchesAny(q, ritualKeywords) {
		return TypeFestival
	}
	if matchesAny(q, timingKeywords) {
		return TypeTiming
	}
	return TypeGeneral
}

func matchesAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// matchesAnyWord requires whole-token matches. Short day-words like "now"
// would otherwise fire inside "know" or "snow".
func matchesAnyWord(lowered string, phrases []string) bool {
	padded := " " + strings.Join(strings.Fields(lowered), " ") + " "
	padded = strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':':
			return ' '
		}
		return r
	}, padded)
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}
