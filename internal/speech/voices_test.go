package speech

import "testing"

var inventory = []Voice{
	{Label: "Google US English", ID: "v-en-us", LanguageTag: "en-US"},
	{Label: "Lekha", ID: "v-lekha", LanguageTag: "hi-IN"},
	{Label: "Google हिन्दी", ID: "v-goog-hi", LanguageTag: "hi-IN"},
	{Label: "Tamil Female", ID: "v-tamil", LanguageTag: "ta-IN"},
	{Label: "Generic", ID: "v-generic", LanguageTag: "te-IN"},
}

func TestSelectVoicePreferredWins(t *testing.T) {
	v, ok := SelectVoice(LangHindi, inventory, "v-tamil")
	if !ok || v.ID != "v-tamil" {
		t.Fatalf("got %+v ok=%v, want preferred v-tamil", v, ok)
	}
}

func TestSelectVoiceCuratedPattern(t *testing.T) {
	v, ok := SelectVoice(LangHindi, inventory, "")
	if !ok || v.ID != "v-goog-hi" {
		t.Fatalf("got %+v ok=%v, want curated Google Hindi voice", v, ok)
	}
}

func TestSelectVoiceLanguagePrefix(t *testing.T) {
	v, ok := SelectVoice(LangTelugu, inventory, "")
	if !ok || v.ID != "v-generic" {
		t.Fatalf("got %+v ok=%v, want te-IN prefix match", v, ok)
	}
}

func TestSelectVoiceLastResort(t *testing.T) {
	v, ok := SelectVoice(LangMalayalam, inventory, "")
	if !ok || v.ID != inventory[0].ID {
		t.Fatalf("got %+v ok=%v, want first voice fallback", v, ok)
	}
}

func TestSelectVoiceStalePreferredFallsThrough(t *testing.T) {
	v, ok := SelectVoice(LangTamil, inventory, "v-removed")
	if !ok || v.ID != "v-tamil" {
		t.Fatalf("got %+v ok=%v, want pattern match after stale preferred", v, ok)
	}
}

func TestSelectVoiceEmptyInventory(t *testing.T) {
	if _, ok := SelectVoice(LangEnglish, nil, "any"); ok {
		t.Fatal("expected ok=false for empty inventory")
	}
}
