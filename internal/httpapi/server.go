// Package httpapi exposes the chat service over HTTP and WebSocket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/voicevedic/voicevedic/internal/answer"
	"github.com/voicevedic/voicevedic/internal/assistant"
	"github.com/voicevedic/voicevedic/internal/config"
	"github.com/voicevedic/voicevedic/internal/conversation"
	"github.com/voicevedic/voicevedic/internal/observability"
	"github.com/voicevedic/voicevedic/internal/session"
	"github.com/voicevedic/voicevedic/internal/speech"
)

type Server struct {
	cfg         config.Config
	sessions    *session.Manager
	metrics     *observability.Metrics
	answers     answer.Client
	enhancer    answer.Enhancer
	synth       speech.Synthesizer
	transcriber speech.Transcriber
	history     *conversation.History
	inventory   []speech.Voice
	upgrader    websocket.Upgrader
}

// Deps carries the collaborators the server routes requests to.
type Deps struct {
	Sessions    *session.Manager
	Metrics     *observability.Metrics
	Answers     answer.Client
	Enhancer    answer.Enhancer
	Synthesizer speech.Synthesizer
	Transcriber speech.Transcriber
	History     *conversation.History
	// Inventory overrides the default voice list (tests).
	Inventory []speech.Voice
}

func New(cfg config.Config, deps Deps) *Server {
	inventory := deps.Inventory
	if len(inventory) == 0 {
		inventory = speech.DefaultInventory()
	}
	return &Server{
		cfg:         cfg,
		sessions:    deps.Sessions,
		metrics:     deps.Metrics,
		answers:     deps.Answers,
		enhancer:    deps.Enhancer,
		synth:       deps.Synthesizer,
		transcriber: deps.Transcriber,
		history:     deps.History,
		inventory:   inventory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so other sites cannot drive a user's chat
				// session if the service is ever exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat/session", s.handleCreateSession)
	r.Post("/v1/chat/session/{id}/end", s.handleEndSession)
	r.Post("/v1/chat/session/{id}/settings", s.handleUpdateSettings)
	r.Get("/v1/chat/ws", s.handleChatWS)
	r.Post("/v1/ask", s.handleAsk)
	r.Get("/v1/voices", s.handleListVoices)
	r.Get("/v1/history", s.handleGetHistory)
	r.Delete("/v1/history", s.handleClearHistory)
	r.Get("/v1/client/settings", s.handleClientSettings)
	r.Get("/v1/perf/latency", s.handlePerfLatency)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"speech_provider": s.cfg.SpeechProvider,
		"answer_service":  s.answers != nil,
		"durable_history": s.cfg.DatabaseURL != "",
		"active_sessions": s.sessions.ActiveCount(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req session.CreateRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = "anonymous"
	}
	lang := speech.ParseLanguage(req.Language)
	if strings.TrimSpace(req.Language) == "" {
		lang = speech.ParseLanguage(s.cfg.DefaultLanguage)
	}

	sess := s.sessions.Create(req.UserID, lang, strings.TrimSpace(req.VoiceID), strings.TrimSpace(req.Location))
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))

	respondJSON(w, http.StatusCreated, session.CreateResponse{
		SessionID:       sess.ID,
		UserID:          sess.UserID,
		Status:          sess.Status,
		Language:        string(sess.Language),
		VoiceID:         sess.VoiceID,
		Location:        sess.Location,
		StartedAt:       sess.StartedAt,
		LastActivityAt:  sess.LastActivityAt,
		InactivityTTLMS: s.cfg.SessionInactivityTimeout.Milliseconds(),
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}

	sess, err := s.sessions.End(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req session.UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var lang speech.Language
	if strings.TrimSpace(req.Language) != "" {
		lang = speech.ParseLanguage(req.Language)
	}
	if err := s.sessions.UpdateSettings(id, lang, strings.TrimSpace(req.VoiceID), strings.TrimSpace(req.Location)); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	sess, _ := s.sessions.Get(id)
	respondJSON(w, http.StatusOK, sess)
}

type askRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
	Location string `json:"location"`
}

type askResponse struct {
	MessageID    string `json:"message_id"`
	Display      string `json:"display"`
	Speech       string `json:"speech"`
	QuestionType string `json:"question_type"`
	Redirected   bool   `json:"redirected"`
	AnswerFailed bool   `json:"answer_failed,omitempty"`
}

// handleAsk runs a one-shot stateless turn: no session, no persistence
// beyond the request, no audio.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusBadRequest, "missing_question", "question is required")
		return
	}

	orch := assistant.NewOrchestrator(assistant.Config{
		Answers:  s.answers,
		Enhancer: s.enhancer,
		Playback: noopSpeaker{},
		History:  conversation.NewHistory(r.Context(), conversation.NewInMemoryStore(), "one-shot"),
		OnStage:  s.metrics.ObserveStage,
	})
	turn := orch.HandleQuestion(r.Context(), assistant.TurnInput{
		Question: req.Question,
		Language: speech.ParseLanguage(req.Language),
		Location: strings.TrimSpace(req.Location),
		Mute:     true,
	})
	s.countTurn(turn)

	respondJSON(w, http.StatusOK, askResponse{
		MessageID:    turn.MessageID,
		Display:      turn.Display,
		Speech:       turn.Speech,
		QuestionType: string(turn.Type),
		Redirected:   turn.Redirected,
		AnswerFailed: turn.AnswerFailed,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"messages": s.history.Messages(),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "cleared"})
}

func (s *Server) countTurn(turn assistant.Turn) {
	outcome := observability.TurnAnswered
	switch {
	case turn.Redirected:
		outcome = observability.TurnRedirected
	case turn.AnswerFailed:
		outcome = observability.TurnFallback
	}
	s.metrics.Turns.WithLabelValues(outcome).Inc()
}

// noopSpeaker mutes playback for stateless turns.
type noopSpeaker struct{}

func (noopSpeaker) Start(context.Context, string, string, speech.Language)  {}
func (noopSpeaker) Stop()                                                   {}
func (noopSpeaker) Replay(context.Context, string, string, speech.Language) {}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
