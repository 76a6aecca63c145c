// Package app wires configuration, providers, and the HTTP surface into a
// runnable service.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/voicevedic/voicevedic/internal/answer"
	"github.com/voicevedic/voicevedic/internal/config"
	"github.com/voicevedic/voicevedic/internal/conversation"
	"github.com/voicevedic/voicevedic/internal/httpapi"
	"github.com/voicevedic/voicevedic/internal/observability"
	"github.com/voicevedic/voicevedic/internal/session"
)

type SpeechInfo struct {
	Provider string
	Detail   string
}

type BuildResult struct {
	Config   config.Config
	API      *httpapi.Server
	Sessions *session.Manager
	Metrics  *observability.Metrics
	History  *conversation.History
	Speech   SpeechInfo

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	store, err := conversation.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("conversation store init failed: %w", err)
	}
	history := conversation.NewHistory(ctx, store, cfg.HistoryNamespace)

	speechSetup, err := resolveSpeechProvider(cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	// Ensure API handlers report which backend is active.
	cfg.SpeechProvider = speechSetup.resolvedProvider

	var answers answer.Client = answer.NewHTTPClient(answer.HTTPConfig{
		APIKey:  cfg.AnswerAPIKey,
		BaseURL: cfg.AnswerBaseURL,
		Model:   cfg.AnswerModel,
	})
	var enhancer answer.Enhancer = answer.NoopEnhancer{}
	if strings.TrimSpace(cfg.EnhanceURL) != "" {
		enhancer = answer.NewHTTPEnhancer(cfg.EnhanceURL, cfg.EnhanceAPIKey)
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	api := httpapi.New(cfg, httpapi.Deps{
		Sessions:    sessions,
		Metrics:     metrics,
		Answers:     answers,
		Enhancer:    enhancer,
		Synthesizer: speechSetup.synthesizer,
		Transcriber: speechSetup.transcriber,
		History:     history,
	})

	cleanup := func() error {
		return store.Close()
	}

	return &BuildResult{
		Config:   cfg,
		API:      api,
		Sessions: sessions,
		Metrics:  metrics,
		History:  history,
		Speech: SpeechInfo{
			Provider: speechSetup.resolvedProvider,
			Detail:   speechSetup.detail,
		},
		Cleanup: cleanup,
	}, nil
}
