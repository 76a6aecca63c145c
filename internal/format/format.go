// Package format turns a raw model answer into the bulleted, greeting-led
// presentation shown in the conversation view. The same string is later
// normalized for speech, so nothing here may diverge between display and
// audio paths.
package format

import (
	"regexp"
	"strings"

	"github.com/voicevedic/voicevedic/internal/classify"
)

// Greeting is the guaranteed first line of every formatted answer.
const Greeting = "🪔 Namaste!"

const footer = "🙏 Based on traditional Panchangam sources."

const minLineLength = 3

var (
	citationPattern = regexp.MustCompile(`\[\d+\]`)
	boldPattern     = regexp.MustCompile(`\*\*`)

	// Lines carrying these fragments are upstream noise, not content:
	// leaked reasoning, hedging boilerplate, or terms we never render.
	denylist = []string{
		"<think>", "</think>", "reasoning:", "chain of thought",
		"as an ai", "i cannot", "i can't provide",
		"please consult", "consult a professional", "disclaimer",
		"sources:", "citations:",
	}
)

// Format rewrites a raw answer into the presentation layout for its
// question type. Output always starts with the greeting line; surviving
// lines are never reordered within a bucket.
func Format(raw string, qt classify.QuestionType) string {
	lines := survivingLines(raw)

	out := []string{Greeting}
	switch qt {
	case classify.TypeFestival:
		out = append(out, bucketed(lines, festivalBuckets)...)
		out = append(out, footer)
	case classify.TypeTiming:
		out = append(out, bucketed(lines, timingBuckets)...)
		out = append(out, footer)
	case classify.TypePanchang:
		// Panchang answers are dense with facts; heuristic bucketing
		// could drop or reorder them, so every line stays a flat bullet.
		for _, line := range lines {
			out = append(out, "• "+line)
		}
		out = append(out, footer)
	default:
		for _, line := range lines {
			out = append(out, "• "+line)
		}
	}
	return strings.Join(out, "\n")
}

// survivingLines splits the raw answer into candidate lines and applies the
// denylist and length filters. Multi-line answers split on line breaks;
// single-paragraph answers split on sentence punctuation.
func survivingLines(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.ContainsAny(raw, "\n\r") {
		parts = regexp.MustCompile(`\r?\n`).Split(raw, -1)
	} else {
		parts = splitSentences(raw)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = citationPattern.ReplaceAllString(p, "")
		p = boldPattern.ReplaceAllString(p, "")
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "•-* \t")
		p = strings.TrimSpace(p)
		if len([]rune(p)) < minLineLength {
			continue
		}
		if denied(p) {
			continue
		}
		if strings.EqualFold(p, strings.TrimSpace(Greeting)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func splitSentences(raw string) []string {
	var parts []string
	var b strings.Builder
	for _, r := range raw {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?', '।', '॥':
			parts = append(parts, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

func denied(line string) bool {
	lowered := strings.ToLower(line)
	for _, d := range denylist {
		if strings.Contains(lowered, d) {
			return true
		}
	}
	return false
}

// bucket pairs a section header with the per-line predicate that claims
// lines for it. Order in the slice is emission order.
type bucket struct {
	header   string
	keywords []string
}

var festivalBuckets = []bucket{
	{"**📅 Date:**", []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"tithi", "date", "falls on", "observed on", "celebrated on",
	}},
	{"**⏰ Timings:**", []string{
		"am", "pm", "muhurat", "muhurta", "puja time", "timing", "begins",
		"ends", "sunrise", "sunset", ":",
	}},
	{"**🕉️ Significance:**", []string{
		"significance", "symbolizes", "celebrates", "commemorates", "legend",
		"mythology", "story", "marks", "honors", "signifies", "victory",
	}},
	{"**🪔 Rituals:**", []string{
		"ritual", "puja", "pooja", "offer", "perform", "fast", "vrat",
		"devotees", "worship", "light", "chant", "recite",
	}},
}

var timingBuckets = []bucket{
	{"**✅ Auspicious:**", []string{
		"muhurat", "muhurta", "auspicious", "abhijit", "shubh", "good time",
		"favorable", "brahma",
	}},
	{"**⚠️ Inauspicious:**", []string{
		"rahu", "yamaganda", "gulika", "inauspicious", "avoid", "kaal",
		"kalam", "unfavorable",
	}},
	{"**ℹ️ Details:**", nil},
}

// bucketed distributes lines into the first bucket whose keyword list
// matches, falling back to the last bucket. Buckets emit in fixed order,
// empty buckets are skipped, and in-bucket order is input order.
func bucketed(lines []string, buckets []bucket) []string {
	grouped := make([][]string, len(buckets))
	for _, line := range lines {
		idx := len(buckets) - 1
		lowered := strings.ToLower(line)
		for i, b := range buckets {
			if matchesBucket(lowered, b.keywords) {
				idx = i
				break
			}
		}
		grouped[idx] = append(grouped[idx], line)
	}

	var out []string
	for i, b := range buckets {
		if len(grouped[i]) == 0 {
			continue
		}
		out = append(out, b.header)
		for _, line := range grouped[i] {
			out = append(out, "• "+line)
		}
	}
	return out
}

func matchesBucket(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == ":" {
			if strings.Contains(lowered, ":") {
				return true
			}
			continue
		}
		if len(kw) <= 3 {
			// Short tokens like "am"/"pm"/"may" need word boundaries.
			if containsWord(lowered, kw) {
				return true
			}
			continue
		}
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func containsWord(lowered, word string) bool {
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == ';' || r == ')' || r == '('
	})
	for _, f := range fields {
		if f == word {
			return true
		}
	}
	return false
}
