package httpapi

import "net/http"

// clientSettingsResponse carries the tuning values the client UI honors:
// how long to debounce suggestion fetches, how long a voice capture may run
// before forced transcription, and the audio settle delay the server
// enforces between playbacks.
type clientSettingsResponse struct {
	SuggestionDebounceMS   int64  `json:"suggestion_debounce_ms"`
	MaxRecordingDurationMS int64  `json:"max_recording_duration_ms"`
	PlaybackSettleDelayMS  int64  `json:"playback_settle_delay_ms"`
	DefaultLanguage        string `json:"default_language"`
}

func (s *Server) handleClientSettings(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, clientSettingsResponse{
		SuggestionDebounceMS:   s.cfg.SuggestionDebounce.Milliseconds(),
		MaxRecordingDurationMS: s.cfg.MaxRecordingDuration.Milliseconds(),
		PlaybackSettleDelayMS:  s.cfg.PlaybackSettleDelay.Milliseconds(),
		DefaultLanguage:        s.cfg.DefaultLanguage,
	})
}
