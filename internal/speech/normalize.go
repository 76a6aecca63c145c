package speech

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// langRules holds the compiled per-language patterns used by the
// normalizer. Compiled once at init from the tables in tables.go.
type langRules struct {
	date           *regexp.Regexp // "21 सितंबर 2025"
	transposedDate *regexp.Regexp // "सितंबर 21"
	monthOnly      *regexp.Regexp
	time           *regexp.Regexp // "7:30 शाम"
	transposedTime *regexp.Regexp // "शाम 7:30"
	wordOnly       *regexp.Regexp
}

var rulesByLang = map[Language]*langRules{}

var (
	clockPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{1,2})(\s*(?:AM|PM|am|pm))?\b`)
	dayMonthRe   = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)?\s+(January|February|March|April|May|June|July|August|September|October|November|December)\b`)
	yearPattern  = regexp.MustCompile(`\b20(\d{2})\b`)
)

func init() {
	for _, lang := range Supported {
		r := &langRules{}
		if months := monthNames[lang]; len(months) > 0 {
			alt := alternation(keysOf(months))
			r.monthOnly = regexp.MustCompile(alt)
			r.date = regexp.MustCompile(`(\d{1,2})\s+(` + alt + `)\s+(\d{4})`)
			r.transposedDate = regexp.MustCompile(`(` + alt + `)\s+(\d{1,2})\b`)
		}
		if words := timeWords[lang]; len(words) > 0 {
			alt := alternation(keysOfPeriods(words))
			r.wordOnly = regexp.MustCompile(alt)
			r.time = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(` + alt + `)`)
			r.transposedTime = regexp.MustCompile(`(` + alt + `)\s*(\d{1,2}):(\d{2})`)
		}
		rulesByLang[lang] = r
	}
}

// NormalizeForSpeech rewrites dates, times, numbers, and decorative symbols
// in text into a canonical speakable form for the given language. It is
// best-effort by contract: any failure returns the input unchanged, because
// normalization must never block speech.
func NormalizeForSpeech(text string, lang Language) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()

	s := reorderTransposed(text, lang)
	s = localizeDates(s, lang)
	s = localizeTimes(s, lang)
	s = canonicalizeClock(s)
	s = ordinalizeDays(s)
	s = splitSpokenYears(s)
	return cleanupSymbols(s)
}

// reorderTransposed swaps "month day" and "timeword H:MM" token orders back
// to the canonical "day month" / "H:MM timeword" forms so that the main
// date/time rules apply.
func reorderTransposed(s string, lang Language) string {
	r := rulesByLang[lang]
	if r == nil {
		return s
	}
	if r.transposedDate != nil {
		s = r.transposedDate.ReplaceAllString(s, "$2 $1")
	}
	if r.transposedTime != nil {
		s = r.transposedTime.ReplaceAllString(s, "$2:$3 $1")
	}
	return s
}

func localizeDates(s string, lang Language) string {
	r := rulesByLang[lang]
	if r == nil || r.date == nil {
		return s
	}
	months := monthNames[lang]
	return r.date.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.date.FindStringSubmatch(m)
		english, ok := months[sub[2]]
		if !ok {
			return m
		}
		return sub[1] + " " + english + " " + sub[3]
	})
}

func localizeTimes(s string, lang Language) string {
	r := rulesByLang[lang]
	if r == nil || r.time == nil {
		return s
	}
	words := timeWords[lang]
	return r.time.ReplaceAllStringFunc(s, func(m string) string {
		sub := r.time.FindStringSubmatch(m)
		hour, err := strconv.Atoi(sub[1])
		if err != nil || hour > 23 {
			return m
		}
		period, ok := words[sub[3]]
		if !ok {
			return m
		}
		switch period {
		case periodMorning:
			return fmt.Sprintf("%d:%s AM", hour, sub[2])
		case periodAfternoon:
			return fmt.Sprintf("%d:%s PM", hour, sub[2])
		case periodEvening, periodNight:
			if hour > 12 {
				hour -= 12
			}
			return fmt.Sprintf("%d:%s PM", hour, sub[2])
		default:
			// Bare o'clock-equivalents carry no AM/PM information;
			// pass the numeric time through alone.
			return fmt.Sprintf("%d:%s", hour, sub[2])
		}
	})
}

// canonicalizeClock re-pads minutes and converts every time to 12-hour
// form. Hours 1-11 without a designator stay bare: inventing AM or PM for
// them would guess wrong half the time.
func canonicalizeClock(s string) string {
	return clockPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := clockPattern.FindStringSubmatch(m)
		hour, err1 := strconv.Atoi(sub[1])
		minute, err2 := strconv.Atoi(sub[2])
		if err1 != nil || err2 != nil || hour > 23 || minute > 59 {
			return m
		}
		designator := strings.ToUpper(strings.TrimSpace(sub[3]))
		switch {
		case hour == 0:
			hour, designator = 12, "AM"
		case hour == 12:
			if designator == "" {
				designator = "PM"
			}
		case hour > 12:
			hour -= 12
			designator = "PM"
		}
		if designator == "" {
			return fmt.Sprintf("%d:%02d", hour, minute)
		}
		return fmt.Sprintf("%d:%02d %s", hour, minute, designator)
	})
}

// ordinalizeDays appends the English ordinal suffix to day-of-month
// numerals that precede a month name.
func ordinalizeDays(s string) string {
	return dayMonthRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := dayMonthRe.FindStringSubmatch(m)
		day, err := strconv.Atoi(sub[1])
		if err != nil || day < 1 || day > 31 {
			return m
		}
		return sub[1] + ordinalSuffix(day) + " " + sub[3]
	})
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// splitSpokenYears breaks four-digit years 2000-2099 into two spoken pairs
// ("2025" reads as "20 25"), which TTS voices pronounce far more naturally
// than a four-digit number.
func splitSpokenYears(s string) string {
	return yearPattern.ReplaceAllString(s, "20 $1")
}

// cleanupSymbols strips decorative glyphs down to speakable text: bullets
// become "and", dashes become "to", the lamp glyph becomes the greeting
// word, and everything outside letters, digits, whitespace, and basic
// punctuation becomes a space. Whitespace collapses to single spaces.
func cleanupSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '•' || r == '·' || r == '●' || r == '▪':
			b.WriteString(" and ")
		case r == '–' || r == '—':
			b.WriteString(" to ")
		case r == '🪔':
			b.WriteString(" Namaste ")
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '.' || r == ',' || r == ':' || r == ';' || r == '(' || r == ')':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func alternation(keys []string) string {
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	// Longest first so "दोपहर" cannot lose to a shorter prefix entry.
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return strings.Join(quoted, "|")
}

func keysOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysOfPeriods(m map[string]dayPeriod) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
