package classify

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     Verdict
	}{
		{"festival english", "When is Diwali this year?", VerdictSpiritual},
		{"panchang english", "What is today's tithi?", VerdictSpiritual},
		{"timing english", "Rahu kaal timings for tomorrow", VerdictSpiritual},
		{"ritual english", "How do I perform Lakshmi puja?", VerdictSpiritual},
		{"hindi festival", "दिवाली कब है", VerdictSpiritual},
		{"tamil panchang", "இன்று திதி என்ன", VerdictSpiritual},
		{"weather", "what's the weather like", VerdictSecular},
		{"smalltalk", "tell me a joke", VerdictSecular},
		{"empty", "", VerdictSecular},
		{"case insensitive", "WHEN IS DIWALI?", VerdictSpiritual},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.question); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.question, got, tc.want)
			}
		})
	}
}

func TestDetectQuestionType(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     QuestionType
	}{
		{"plain panchang", "what is the nakshatra today", TypePanchang},
		{"plain festival", "when is holi", TypeFestival},
		{"plain timing", "what is the abhijit muhurat tomorrow", TypeTiming},
		{"plain general", "why do we light lamps during puja", TypeGeneral},
		{"amavasya is panchang", "When is Amavasya in Mumbai?", TypePanchang},
		{"today puja leans panchang", "is today good for puja", TypePanchang},
		{"when-is ritual leans festival", "when is satyanarayan vrat", TypeFestival},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectQuestionType(tc.question); got != tc.want {
				t.Fatalf("DetectQuestionType(%q) = %q, want %q", tc.question, got, tc.want)
			}
		})
	}
}

// A question holding both panchang and festival vocabulary must resolve to
// panchang; festival tables are broad enough to shadow it otherwise.
func TestDetectQuestionTypePriority(t *testing.T) {
	got := DetectQuestionType("what tithi falls on diwali")
	if got != TypePanchang {
		t.Fatalf("DetectQuestionType = %q, want %q", got, TypePanchang)
	}
}
