package speech

import (
	"strings"
	"testing"
)

func TestChunkForSpeechShortTextSingleChunk(t *testing.T) {
	got := ChunkForSpeech("Amavasya is on 30 June")
	if len(got) != 1 || got[0] != "Amavasya is on 30 June" {
		t.Fatalf("got %#v", got)
	}
}

func TestChunkForSpeechSplitsSentences(t *testing.T) {
	got := ChunkForSpeech("Amavasya is on 30 June. It marks the new moon.")
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(got), got)
	}
}

func TestChunkForSpeechDevanagariDanda(t *testing.T) {
	got := ChunkForSpeech("आज अमावस्या है। कल पूर्णिमा नहीं है।")
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(got), got)
	}
}

// No chunk may exceed the limit, and the chunks must preserve the text
// content modulo whitespace.
func TestChunkForSpeechBoundAndContent(t *testing.T) {
	long := strings.Repeat("tithi nakshatra yoga karana, ", 40) // no sentence enders
	chunks := ChunkForSpeech(long)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > maxChunkLen {
			t.Fatalf("chunk %d has %d runes, limit %d", i, n, maxChunkLen)
		}
	}

	joined := strings.Join(strings.Fields(strings.Join(chunks, " ")), " ")
	want := strings.Join(strings.Fields(long), " ")
	if joined != want {
		t.Fatalf("concatenated chunks diverge from input\n got: %q\nwant: %q", joined, want)
	}
}

func TestChunkForSpeechCutsAtComma(t *testing.T) {
	unit := strings.Repeat("a", 150) + ", " + strings.Repeat("b", 150)
	chunks := ChunkForSpeech(unit)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %#v", len(chunks), chunks)
	}
	if !strings.HasSuffix(chunks[0], ",") {
		t.Fatalf("first chunk should end at the comma, got %q", chunks[0])
	}
}
