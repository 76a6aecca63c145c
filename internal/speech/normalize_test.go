package speech

import (
	"fmt"
	"strings"
	"testing"
)

// Every native month name in every table must localize to its English
// equivalent inside a full date.
func TestLocalizeDatesAllMonths(t *testing.T) {
	for lang, months := range monthNames {
		for native, english := range months {
			in := fmt.Sprintf("21 %s 2025", native)
			want := fmt.Sprintf("21 %s 2025", english)
			got := localizeDates(in, lang)
			if got != want {
				t.Fatalf("localizeDates(%q, %s) = %q, want %q", in, lang, got, want)
			}
		}
	}
}

func TestNormalizeForSpeechHindiDate(t *testing.T) {
	got := NormalizeForSpeech("21 सितंबर 2025", LangHindi)
	if !strings.Contains(got, "21st September") {
		t.Fatalf("missing localized ordinal date in %q", got)
	}
	if !strings.Contains(got, "20 25") {
		t.Fatalf("year not split for speech in %q", got)
	}
}

func TestNormalizeForSpeechEnglishDatePassesThrough(t *testing.T) {
	got := NormalizeForSpeech("Amavasya is on 30 June. It marks the new moon.", LangEnglish)
	want := "Amavasya is on 30th June. It marks the new moon."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCanonicalizeClock(t *testing.T) {
	cases := []struct{ in, want string }{
		{"6:5 PM", "6:05 PM"},
		{"0:30", "12:30 AM"},
		{"12:00", "12:00 PM"},
		{"19:45", "7:45 PM"},
		{"7:30", "7:30"},
		{"11:59 am", "11:59 AM"},
	}
	for _, tc := range cases {
		if got := canonicalizeClock(tc.in); got != tc.want {
			t.Fatalf("canonicalizeClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLocalizeTimes(t *testing.T) {
	cases := []struct {
		lang Language
		in   string
		want string
	}{
		{LangHindi, "7:30 सुबह", "7:30 AM"},
		{LangHindi, "12:15 दोपहर", "12:15 PM"},
		{LangHindi, "19:30 रात", "7:30 PM"},
		{LangHindi, "5:00 बजे", "5:00"},
		{LangTamil, "6:45 மாலை", "6:45 PM"},
		{LangTelugu, "8:00 ఉదయం", "8:00 AM"},
	}
	for _, tc := range cases {
		if got := localizeTimes(tc.in, tc.lang); got != tc.want {
			t.Fatalf("localizeTimes(%q, %s) = %q, want %q", tc.in, tc.lang, got, tc.want)
		}
	}
}

func TestReorderTransposed(t *testing.T) {
	if got := reorderTransposed("सितंबर 21", LangHindi); got != "21 सितंबर" {
		t.Fatalf("transposed date: got %q", got)
	}
	if got := reorderTransposed("शाम 7:30", LangHindi); got != "7:30 शाम" {
		t.Fatalf("transposed time: got %q", got)
	}
}

// A transposed full date must swap, localize, and pick up the ordinal and
// year split through the whole pipeline.
func TestNormalizeForSpeechTransposedDate(t *testing.T) {
	got := NormalizeForSpeech("सितंबर 21 2025", LangHindi)
	if got != "21st September 20 25" {
		t.Fatalf("got %q, want %q", got, "21st September 20 25")
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st",
	}
	for n, want := range cases {
		if got := ordinalSuffix(n); got != want {
			t.Fatalf("ordinalSuffix(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestCleanupSymbols(t *testing.T) {
	cases := []struct{ in, want string }{
		{"sunrise • sunset", "sunrise and sunset"},
		{"6:00 – 7:30", "6:00 to 7:30"},
		{"🪔 blessings", "Namaste blessings"},
		{"good ✨ morning!!", "good morning"},
		{"keep . , : ; ( ) these", "keep . , : ; ( ) these"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tc := range cases {
		if got := cleanupSymbols(tc.in); got != tc.want {
			t.Fatalf("cleanupSymbols(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
