package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the VoiceVedic service.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	AllowAnyOrigin bool

	// Speech pipeline tuning.
	PlaybackSettleDelay  time.Duration
	SuggestionDebounce   time.Duration
	MaxRecordingDuration time.Duration
	DefaultLanguage      string

	// External answer service (chat-completions style).
	AnswerAPIKey  string
	AnswerBaseURL string
	AnswerModel   string

	// Optional best-effort answer refinement endpoint.
	EnhanceURL    string
	EnhanceAPIKey string

	// Speech synthesis / transcription provider.
	SpeechAPIKey  string
	SpeechBaseURL string
	SpeechModel   string

	SpeechProvider string

	DatabaseURL      string
	HistoryNamespace string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "voicevedic"),
		AllowAnyOrigin:           false,
		DefaultLanguage:          envOrDefault("APP_DEFAULT_LANGUAGE", "en"),
		AnswerAPIKey:             stringsTrimSpace("ANSWER_API_KEY"),
		AnswerBaseURL:            envOrDefault("ANSWER_BASE_URL", "https://api.perplexity.ai"),
		AnswerModel:              envOrDefault("ANSWER_MODEL", "sonar"),
		EnhanceURL:               stringsTrimSpace("ENHANCE_URL"),
		EnhanceAPIKey:            stringsTrimSpace("ENHANCE_API_KEY"),
		SpeechAPIKey:             stringsTrimSpace("SPEECH_API_KEY"),
		SpeechBaseURL:            envOrDefault("SPEECH_BASE_URL", "https://api.openai.com"),
		SpeechModel:              envOrDefault("SPEECH_MODEL", "tts-1"),
		SpeechProvider:           envOrDefault("SPEECH_PROVIDER", "auto"),
		DatabaseURL:              stringsTrimSpace("DATABASE_URL"),
		HistoryNamespace:         envOrDefault("APP_HISTORY_NAMESPACE", "voicevedic_conversation_log"),
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 30 * time.Minute,
		PlaybackSettleDelay:      300 * time.Millisecond,
		SuggestionDebounce:       500 * time.Millisecond,
		MaxRecordingDuration:     10 * time.Second,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.PlaybackSettleDelay, err = durationFromEnv("APP_PLAYBACK_SETTLE_DELAY", cfg.PlaybackSettleDelay)
	if err != nil {
		return Config{}, err
	}
	cfg.SuggestionDebounce, err = durationFromEnv("APP_SUGGESTION_DEBOUNCE", cfg.SuggestionDebounce)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxRecordingDuration, err = durationFromEnv("APP_MAX_RECORDING_DURATION", cfg.MaxRecordingDuration)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.PlaybackSettleDelay < 0 {
		return Config{}, fmt.Errorf("APP_PLAYBACK_SETTLE_DELAY must be >= 0")
	}
	if cfg.MaxRecordingDuration <= 0 {
		return Config{}, fmt.Errorf("APP_MAX_RECORDING_DURATION must be positive")
	}
	switch cfg.SpeechProvider {
	case "auto", "openai", "mock":
	default:
		return Config{}, fmt.Errorf("invalid SPEECH_PROVIDER: %q (expected auto|openai|mock)", cfg.SpeechProvider)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return trimSpace(os.Getenv(key))
}

func trimSpace(v string) string {
	for len(v) > 0 && (v[0] == ' ' || v[0] == '\n' || v[0] == '\t' || v[0] == '\r') {
		v = v[1:]
	}
	for len(v) > 0 {
		c := v[len(v)-1]
		if c == ' ' || c == '\n' || c == '\t' || c == '\r' {
			v = v[:len(v)-1]
			continue
		}
		break
	}
	return v
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
