package httpapi

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/voicevedic/voicevedic/internal/assistant"
	"github.com/voicevedic/voicevedic/internal/conversation"
	"github.com/voicevedic/voicevedic/internal/observability"
	"github.com/voicevedic/voicevedic/internal/playback"
	"github.com/voicevedic/voicevedic/internal/protocol"
	"github.com/voicevedic/voicevedic/internal/speech"
)

// audioChunkBytes is the payload size of one assistant_audio_chunk before
// base64 encoding.
const audioChunkBytes = 32 * 1024

func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}
	if _, err := s.sessions.Get(sessionID); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, 256)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
				if t, ok := messageTypeOf(msg); ok {
					s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
				}
			}
		}
	}()

	c := &wsSession{
		server:    s,
		sessionID: sessionID,
		outbound:  outbound,
	}
	player := &wsAudioPlayer{conn: c}
	synth := timedSynthesizer{inner: s.synth, metrics: s.metrics}
	ctl := playback.NewController(synth, player,
		playback.WithSettleDelay(s.cfg.PlaybackSettleDelay),
		playback.WithTransitionHook(func(from, to playback.State) {
			s.metrics.PlaybackTransitions.WithLabelValues(string(from), string(to)).Inc()
		}),
	)
	c.speaker = &wsSpeaker{ctl: ctl, player: player}
	c.orch = assistant.NewOrchestrator(assistant.Config{
		Answers:  s.answers,
		Enhancer: s.enhancer,
		Playback: c.speaker,
		History:  s.history,
		OnStage:  s.metrics.ObserveStage,
	})
	go c.watchSpeechState(ctx, ctl)

	conn.SetReadLimit(2 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			c.send(protocol.ErrorEvent{
				Type:      protocol.TypeErrorEvent,
				SessionID: sessionID,
				Code:      "invalid_client_message",
				Source:    "gateway",
				Retryable: false,
				Detail:    err.Error(),
			})
			continue
		}
		if t, ok := messageTypeOf(parsed); ok {
			s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
		}
		_ = s.sessions.Touch(sessionID)

		switch msg := parsed.(type) {
		case protocol.ClientAsk:
			c.handleAsk(ctx, msg)
		case protocol.ClientAudioChunk:
			c.handleAudioChunk(ctx, msg)
		case protocol.ClientControl:
			c.handleControl(ctx, msg)
		}
	}

	ctl.Stop()
	cancel()
	<-writerDone
}

// wsSession is the per-connection state: the orchestrator, the playback
// speaker, and the microphone capture buffer.
type wsSession struct {
	server    *Server
	sessionID string
	outbound  chan any
	orch      *assistant.Orchestrator
	speaker   *wsSpeaker

	mu         sync.Mutex
	captured   []byte
	sampleRate int
	turnBusy   bool
}

func (c *wsSession) send(msg any) {
	select {
	case c.outbound <- msg:
	default:
		// Keep websocket writes single-threaded; drop when saturated.
	}
}

func (c *wsSession) handleAsk(ctx context.Context, msg protocol.ClientAsk) {
	c.mu.Lock()
	if c.turnBusy {
		c.mu.Unlock()
		c.send(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: c.sessionID,
			Code:      "turn_in_flight",
			Source:    "orchestrator",
			Retryable: true,
			Detail:    "a turn is already being processed",
		})
		return
	}
	c.turnBusy = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.turnBusy = false
			c.mu.Unlock()
		}()
		c.runTurn(ctx, msg.Question, msg.Mute)
	}()
}

func (c *wsSession) runTurn(ctx context.Context, question string, mute bool) {
	started := time.Now()
	sess, err := c.server.sessions.Get(c.sessionID)
	if err != nil {
		return
	}
	_ = c.server.sessions.StartTurn(c.sessionID, uuid.NewString())
	c.speaker.SetVoice(sess.VoiceID)

	turn := c.orch.HandleQuestion(ctx, assistant.TurnInput{
		Question: question,
		Language: sess.Language,
		Location: sess.Location,
		Mute:     mute,
	})
	_ = c.server.sessions.FinishTurn(c.sessionID)
	c.server.countTurn(turn)
	c.server.metrics.ObserveSpeakLatency(time.Since(started))
	c.server.metrics.ObserveStage("turn_total", time.Since(started))

	c.send(protocol.AssistantMessage{
		Type:         protocol.TypeAssistantMessage,
		SessionID:    c.sessionID,
		MessageID:    turn.MessageID,
		Role:         string(conversation.RoleAssistant),
		Content:      turn.Display,
		QuestionType: string(turn.Type),
		Redirected:   turn.Redirected,
		CreatedAt:    time.Now().UTC(),
	})
}

func (c *wsSession) handleAudioChunk(ctx context.Context, msg protocol.ClientAudioChunk) {
	pcm, err := base64.StdEncoding.DecodeString(msg.PCM16Base64)
	if err != nil {
		c.send(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: c.sessionID,
			Code:      "invalid_audio",
			Source:    "gateway",
			Retryable: false,
			Detail:    "pcm16_base64 is not valid base64",
		})
		return
	}

	c.mu.Lock()
	c.sampleRate = msg.SampleRate
	maxBytes := int(c.server.cfg.MaxRecordingDuration.Seconds()) * msg.SampleRate * 2
	forced := false
	c.captured = append(c.captured, pcm...)
	if maxBytes > 0 && len(c.captured) > maxBytes {
		c.captured = c.captured[:maxBytes]
		forced = true
	}
	final := msg.Final || forced
	var capture []byte
	rate := c.sampleRate
	if final {
		capture = c.captured
		c.captured = nil
	}
	c.mu.Unlock()

	if !final {
		return
	}
	if forced {
		c.send(protocol.SystemEvent{
			Type:      protocol.TypeSystemEvent,
			SessionID: c.sessionID,
			Code:      "recording_limit_reached",
			Detail:    "capture truncated at the maximum recording duration",
		})
	}
	go c.transcribeAndRun(ctx, capture, rate)
}

func (c *wsSession) transcribeAndRun(ctx context.Context, pcm []byte, sampleRate int) {
	sess, err := c.server.sessions.Get(c.sessionID)
	if err != nil {
		return
	}
	text, err := c.server.transcriber.Transcribe(ctx, pcm, sampleRate, sess.Language)
	if err != nil || strings.TrimSpace(text) == "" {
		c.server.metrics.ProviderErrors.WithLabelValues("transcription", "failed").Inc()
		// The client owns the platform speech-recognition fallback; tell it
		// to take over.
		c.send(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: c.sessionID,
			Code:      "transcription_failed",
			Source:    "speech",
			Retryable: true,
			Detail:    "transcription unavailable, use platform recognition",
		})
		return
	}
	c.runTurn(ctx, text, false)
}

func (c *wsSession) handleControl(ctx context.Context, msg protocol.ClientControl) {
	switch msg.Action {
	case protocol.ActionStop:
		c.orch.StopSpeaking()
	case protocol.ActionReplay:
		sess, err := c.server.sessions.Get(c.sessionID)
		if err != nil {
			return
		}
		for _, m := range c.orch.History() {
			if m.ID == msg.MessageID && m.Role == conversation.RoleAssistant {
				c.speaker.SetVoice(sess.VoiceID)
				c.orch.ReplayMessage(ctx, m.ID, m.Content, sess.Language)
				return
			}
		}
		c.send(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: c.sessionID,
			Code:      "message_not_found",
			Source:    "orchestrator",
			Retryable: false,
			Detail:    "no assistant message with that id",
		})
	case protocol.ActionClear:
		c.orch.StopSpeaking()
		if err := c.orch.ClearHistory(ctx); err == nil {
			c.send(protocol.SystemEvent{
				Type:      protocol.TypeSystemEvent,
				SessionID: c.sessionID,
				Code:      "history_cleared",
			})
		}
	}
}

// watchSpeechState mirrors playback controller transitions to the client so
// its play/stop affordances stay truthful.
func (c *wsSession) watchSpeechState(ctx context.Context, ctl *playback.Controller) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	last := ctl.State()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := ctl.State()
			if state == last {
				continue
			}
			last = state
			c.send(protocol.SpeechState{
				Type:      protocol.TypeSpeechState,
				SessionID: c.sessionID,
				State:     string(state),
				MessageID: ctl.ActiveMessageID(),
			})
		}
	}
}

// wsSpeaker routes orchestrator playback through the controller while
// remembering which message the next stream belongs to.
type wsSpeaker struct {
	ctl    *playback.Controller
	player *wsAudioPlayer
}

func (sp *wsSpeaker) SetVoice(voiceID string) {
	sp.ctl.SetPreferredVoice(voiceID)
}

func (sp *wsSpeaker) Start(ctx context.Context, messageID, text string, lang speech.Language) {
	sp.player.setMessageID(messageID)
	sp.ctl.Start(ctx, messageID, text, lang)
}

func (sp *wsSpeaker) Stop() {
	sp.ctl.Stop()
}

func (sp *wsSpeaker) Replay(ctx context.Context, messageID, text string, lang speech.Language) {
	sp.player.setMessageID(messageID)
	sp.ctl.Replay(ctx, messageID, text, lang)
}

// wsAudioPlayer turns synthesized clips into assistant_audio_chunk streams
// toward the connected client. A handle is live while its chunks are being
// queued; natural end is reached once the whole clip has been written.
type wsAudioPlayer struct {
	conn *wsSession

	mu        sync.Mutex
	messageID string
}

func (p *wsAudioPlayer) setMessageID(id string) {
	p.mu.Lock()
	p.messageID = id
	p.mu.Unlock()
}

func (p *wsAudioPlayer) Start(clip speech.AudioClip) (playback.Handle, error) {
	p.mu.Lock()
	id := p.messageID
	p.mu.Unlock()
	return &wsAudioHandle{
		conn:      p.conn,
		clip:      clip,
		messageID: id,
		done:      make(chan struct{}),
	}, nil
}

type wsAudioHandle struct {
	conn      *wsSession
	clip      speech.AudioClip
	messageID string

	mu       sync.Mutex
	released bool
	done     chan struct{}
	once     sync.Once
}

func (h *wsAudioHandle) Play() error {
	go h.stream()
	return nil
}

func (h *wsAudioHandle) stream() {
	defer h.once.Do(func() { close(h.done) })
	data := h.clip.Data
	for seq := 0; len(data) > 0; seq++ {
		if h.isReleased() {
			return
		}
		n := audioChunkBytes
		if n > len(data) {
			n = len(data)
		}
		h.conn.send(protocol.AssistantAudioChunk{
			Type:        protocol.TypeAssistantAudio,
			SessionID:   h.conn.sessionID,
			MessageID:   h.messageID,
			Seq:         seq,
			Format:      h.clip.Format,
			AudioBase64: base64.StdEncoding.EncodeToString(data[:n]),
		})
		data = data[n:]
	}
}

func (h *wsAudioHandle) isReleased() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

func (h *wsAudioHandle) Release() {
	h.mu.Lock()
	h.released = true
	h.mu.Unlock()
	h.once.Do(func() { close(h.done) })
}

func (h *wsAudioHandle) Done() <-chan struct{} { return h.done }

// timedSynthesizer reports synthesis latency and failures without changing
// the synthesizer contract.
type timedSynthesizer struct {
	inner   speech.Synthesizer
	metrics *observability.Metrics
}

func (t timedSynthesizer) Synthesize(ctx context.Context, req speech.SynthesisRequest) (speech.AudioClip, error) {
	start := time.Now()
	clip, err := t.inner.Synthesize(ctx, req)
	t.metrics.ObserveStage("synthesize", time.Since(start))
	if err != nil {
		t.metrics.ProviderErrors.WithLabelValues("speech", "synthesize_failed").Inc()
	}
	return clip, err
}

func messageTypeOf(v any) (protocol.MessageType, bool) {
	switch m := v.(type) {
	case protocol.ClientAsk:
		return m.Type, true
	case protocol.ClientAudioChunk:
		return m.Type, true
	case protocol.ClientControl:
		return m.Type, true
	case protocol.AssistantMessage:
		return m.Type, true
	case protocol.AssistantAudioChunk:
		return m.Type, true
	case protocol.SpeechState:
		return m.Type, true
	case protocol.SystemEvent:
		return m.Type, true
	case protocol.ErrorEvent:
		return m.Type, true
	default:
		return "", false
	}
}
