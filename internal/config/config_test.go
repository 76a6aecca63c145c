package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":9090" {
		t.Fatalf("BindAddr = %q", cfg.BindAddr)
	}
	if cfg.PlaybackSettleDelay != 300*time.Millisecond {
		t.Fatalf("PlaybackSettleDelay = %v, want 300ms", cfg.PlaybackSettleDelay)
	}
	if cfg.SuggestionDebounce != 500*time.Millisecond {
		t.Fatalf("SuggestionDebounce = %v, want 500ms", cfg.SuggestionDebounce)
	}
	if cfg.MaxRecordingDuration != 10*time.Second {
		t.Fatalf("MaxRecordingDuration = %v, want 10s", cfg.MaxRecordingDuration)
	}
	if cfg.AnswerBaseURL != "https://api.perplexity.ai" {
		t.Fatalf("AnswerBaseURL = %q", cfg.AnswerBaseURL)
	}
	if cfg.MetricsNamespace != "voicevedic" {
		t.Fatalf("MetricsNamespace = %q", cfg.MetricsNamespace)
	}
}

func TestLoadOverridesAndValidation(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_PLAYBACK_SETTLE_DELAY", "150ms")
	t.Setenv("SPEECH_PROVIDER", "mock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PlaybackSettleDelay != 150*time.Millisecond {
		t.Fatalf("PlaybackSettleDelay = %v, want 150ms", cfg.PlaybackSettleDelay)
	}
	if cfg.SpeechProvider != "mock" {
		t.Fatalf("SpeechProvider = %q", cfg.SpeechProvider)
	}

	t.Setenv("SPEECH_PROVIDER", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatal("invalid SPEECH_PROVIDER accepted")
	}
}

func TestLoadRejectsTinyInactivityTimeout(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_SESSION_INACTIVITY_TIMEOUT", "1s")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_SESSION_INACTIVITY_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"APP_DEFAULT_LANGUAGE",
		"APP_PLAYBACK_SETTLE_DELAY",
		"APP_SUGGESTION_DEBOUNCE",
		"APP_MAX_RECORDING_DURATION",
		"APP_HISTORY_NAMESPACE",
		"ANSWER_API_KEY",
		"ANSWER_BASE_URL",
		"ANSWER_MODEL",
		"ENHANCE_URL",
		"ENHANCE_API_KEY",
		"SPEECH_API_KEY",
		"SPEECH_BASE_URL",
		"SPEECH_MODEL",
		"SPEECH_PROVIDER",
		"DATABASE_URL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
