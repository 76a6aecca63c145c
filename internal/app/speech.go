package app

import (
	"fmt"
	"strings"

	"github.com/voicevedic/voicevedic/internal/config"
	"github.com/voicevedic/voicevedic/internal/speech"
)

type speechSetup struct {
	synthesizer      speech.Synthesizer
	transcriber      speech.Transcriber
	resolvedProvider string
	detail           string
}

func resolveSpeechProvider(cfg config.Config) (speechSetup, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.SpeechProvider))
	if mode == "" {
		mode = "auto"
	}

	tryOpenAI := func() (speechSetup, bool) {
		if strings.TrimSpace(cfg.SpeechAPIKey) == "" {
			return speechSetup{}, false
		}
		p := speech.NewOpenAIProvider(speech.OpenAIConfig{
			APIKey:   cfg.SpeechAPIKey,
			BaseURL:  cfg.SpeechBaseURL,
			TTSModel: cfg.SpeechModel,
		})
		return speechSetup{
			synthesizer:      p,
			transcriber:      p,
			resolvedProvider: "openai",
			detail:           fmt.Sprintf("openai (%s)", cfg.SpeechModel),
		}, true
	}

	mock := func(detail string) speechSetup {
		return speechSetup{
			synthesizer:      speech.NewMockSynthesizer(),
			transcriber:      &speech.MockTranscriber{Text: ""},
			resolvedProvider: "mock",
			detail:           detail,
		}
	}

	switch mode {
	case "openai":
		if setup, ok := tryOpenAI(); ok {
			return setup, nil
		}
		return speechSetup{}, fmt.Errorf("SPEECH_PROVIDER=openai but SPEECH_API_KEY is not set")
	case "mock":
		return mock("mock"), nil
	case "auto":
		if setup, ok := tryOpenAI(); ok {
			return setup, nil
		}
		// No key: playback degrades silently, the rest of the pipeline
		// still runs.
		return mock("mock (no speech api key)"), nil
	default:
		return speechSetup{}, fmt.Errorf("invalid SPEECH_PROVIDER: %q (expected auto|openai|mock)", cfg.SpeechProvider)
	}
}
