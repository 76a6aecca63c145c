package speech

import "strings"

// Chunk size bounds. Platform speech engines truncate or garble very long
// utterances, and very short ones break prosody, so oversized units are cut
// at the nearest comma or space inside the window.
const (
	maxChunkLen       = 220
	minChunkCutWindow = 120
)

// ChunkForSpeech splits text into an ordered sequence of utterance-sized
// chunks. Natural boundaries come first: existing line breaks, then
// sentence-final punctuation (including Devanagari danda marks). Units
// still longer than maxChunkLen are cut at the nearest comma, failing that
// the nearest space, inside the [minChunkCutWindow, maxChunkLen] window.
func ChunkForSpeech(text string) []string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		for _, unit := range splitSentenceUnits(line) {
			chunks = append(chunks, cutLongUnit(unit)...)
		}
	}
	return chunks
}

func splitSentenceUnits(line string) []string {
	var units []string
	var b strings.Builder
	for _, r := range line {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?', '।', '॥':
			if u := strings.TrimSpace(b.String()); u != "" {
				units = append(units, u)
			}
			b.Reset()
		}
	}
	if u := strings.TrimSpace(b.String()); u != "" {
		units = append(units, u)
	}
	return units
}

func cutLongUnit(unit string) []string {
	var out []string
	rest := unit
	for len([]rune(rest)) > maxChunkLen {
		runes := []rune(rest)
		cut := findCut(runes)
		out = append(out, strings.TrimSpace(string(runes[:cut])))
		rest = strings.TrimSpace(string(runes[cut:]))
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}

// findCut returns the rune index to cut at: the last comma in the window,
// else the last space, else a hard cut at maxChunkLen.
func findCut(runes []rune) int {
	lastComma, lastSpace := -1, -1
	for i := minChunkCutWindow; i < maxChunkLen && i < len(runes); i++ {
		switch runes[i] {
		case ',':
			lastComma = i
		case ' ':
			lastSpace = i
		}
	}
	if lastComma > 0 {
		return lastComma + 1
	}
	if lastSpace > 0 {
		return lastSpace
	}
	return maxChunkLen
}
