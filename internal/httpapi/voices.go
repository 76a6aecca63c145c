package httpapi

import (
	"net/http"
	"strings"

	"github.com/voicevedic/voicevedic/internal/speech"
)

type voiceSummary struct {
	VoiceID     string `json:"voice_id"`
	Label       string `json:"label"`
	LanguageTag string `json:"language_tag"`
	Language    string `json:"language"`
}

type listVoicesResponse struct {
	Language      string         `json:"language"`
	ResolvedVoice *voiceSummary  `json:"resolved_voice,omitempty"`
	ProviderVoice string         `json:"provider_voice"`
	Voices        []voiceSummary `json:"voices"`
}

// handleListVoices reports the fallback-path voice inventory plus the
// deterministic pick for the requested language. The primary synthesized
// path ignores the inventory and uses the provider voice directly.
func (s *Server) handleListVoices(w http.ResponseWriter, r *http.Request) {
	lang := speech.ParseLanguage(r.URL.Query().Get("lang"))
	preferred := strings.TrimSpace(r.URL.Query().Get("preferred_voice_id"))

	out := listVoicesResponse{
		Language:      string(lang),
		ProviderVoice: speech.VoiceIDFor(lang),
		Voices:        make([]voiceSummary, 0, len(s.inventory)),
	}
	for _, v := range s.inventory {
		out.Voices = append(out.Voices, summarize(v))
	}
	if resolved, ok := speech.SelectVoice(lang, s.inventory, preferred); ok {
		sum := summarize(resolved)
		out.ResolvedVoice = &sum
	}

	respondJSON(w, http.StatusOK, out)
}

func summarize(v speech.Voice) voiceSummary {
	return voiceSummary{
		VoiceID:     v.ID,
		Label:       v.Label,
		LanguageTag: v.LanguageTag,
		Language:    string(v.Language),
	}
}
