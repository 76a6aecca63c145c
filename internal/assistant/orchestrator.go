// Package assistant runs one conversational turn end to end: classify the
// question, fetch and shape the answer, persist both sides of the exchange,
// and hand the final text to the playback controller. A turn always ends in
// the idle phase; failures along the way surface as assistant messages, not
// as errors to the caller.
package assistant

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/voicevedic/voicevedic/internal/answer"
	"github.com/voicevedic/voicevedic/internal/classify"
	"github.com/voicevedic/voicevedic/internal/conversation"
	"github.com/voicevedic/voicevedic/internal/format"
	"github.com/voicevedic/voicevedic/internal/speech"
)

// Phase is the orchestrator's per-turn stage, reported through OnPhase.
type Phase string

const (
	PhaseComposing     Phase = "composing"
	PhaseSubmitted     Phase = "submitted"
	PhaseClassifying   Phase = "classifying"
	PhaseRedirected    Phase = "redirected"
	PhaseAnswerPending Phase = "answer_pending"
	PhaseFormatting    Phase = "formatting"
	PhaseSpeaking      Phase = "speaking"
	PhaseIdle          Phase = "idle"
)

// redirectMessage answers questions outside the app's spiritual scope. The
// answer service is never consulted for these.
const redirectMessage = "🪔 Namaste! I can help with Hindu festivals, Panchangam details, " +
	"auspicious timings, and rituals. Please ask me a spiritual question."

// fallbackMessage replaces the answer when the upstream service fails.
const fallbackMessage = "🪔 Namaste! I am having trouble reaching my sources right now. " +
	"Please try your question again in a moment."

// Speaker is the playback contract the orchestrator drives.
// *playback.Controller satisfies it.
type Speaker interface {
	Start(ctx context.Context, messageID, text string, lang speech.Language)
	Stop()
	Replay(ctx context.Context, messageID, text string, lang speech.Language)
}

// Config wires an Orchestrator.
type Config struct {
	Answers  answer.Client
	Enhancer answer.Enhancer
	Playback Speaker
	History  *conversation.History
	// OnPhase observes phase changes (protocol events, metrics). Optional.
	OnPhase func(Phase)
	// OnStage observes per-stage pipeline latency. Optional.
	OnStage func(stage string, d time.Duration)
}

// TurnInput is one submitted question plus the session settings that apply
// to it.
type TurnInput struct {
	Question string
	Language speech.Language
	// Location is the ambient session location, used when the question text
	// itself names no place.
	Location string
	// Mute skips the speaking stage; the display text is still produced and
	// persisted.
	Mute bool
}

// Turn is the outcome of one completed turn.
type Turn struct {
	MessageID    string
	Display      string
	Speech       string
	Type         classify.QuestionType
	Redirected   bool
	AnswerFailed bool
}

type Orchestrator struct {
	answers  answer.Client
	enhancer answer.Enhancer
	playback Speaker
	history  *conversation.History
	onPhase  func(Phase)
	onStage  func(string, time.Duration)

	// One turn at a time; submissions queue behind the mutex.
	mu sync.Mutex
}

func NewOrchestrator(cfg Config) *Orchestrator {
	enhancer := cfg.Enhancer
	if enhancer == nil {
		enhancer = answer.NoopEnhancer{}
	}
	return &Orchestrator{
		answers:  cfg.Answers,
		enhancer: enhancer,
		playback: cfg.Playback,
		history:  cfg.History,
		onPhase:  cfg.OnPhase,
		onStage:  cfg.OnStage,
	}
}

// HandleQuestion runs the full turn pipeline for one question. It never
// returns an error: every failure mode resolves to an assistant message and
// the turn ends idle.
func (o *Orchestrator) HandleQuestion(ctx context.Context, in TurnInput) Turn {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.phase(PhaseIdle)

	question := strings.TrimSpace(in.Question)
	o.phase(PhaseSubmitted)
	o.append(ctx, conversation.RoleUser, question)

	o.phase(PhaseClassifying)
	stageStart := time.Now()
	verdict := classify.Classify(question)
	qt := classify.DetectQuestionType(question)
	o.stage("classify", time.Since(stageStart))
	if verdict == classify.VerdictSecular {
		o.phase(PhaseRedirected)
		return o.deliver(ctx, Turn{Display: redirectMessage, Redirected: true}, in)
	}

	o.phase(PhaseAnswerPending)
	location := answer.ExtractLocation(question)
	if location == "" {
		location = in.Location
	}
	stageStart = time.Now()
	raw, err := o.answers.Ask(ctx, answer.Query{
		Question: question,
		Location: location,
		Language: in.Language,
	})
	o.stage("answer_fetch", time.Since(stageStart))
	if err != nil {
		log.Printf("assistant: answer service failed: %v", err)
		return o.deliver(ctx, Turn{Display: fallbackMessage, Type: qt, AnswerFailed: true}, in)
	}

	o.phase(PhaseFormatting)
	stageStart = time.Now()
	raw = o.enhancer.Enhance(ctx, raw, question, in.Language)
	o.stage("enhance", time.Since(stageStart))
	stageStart = time.Now()
	display := format.Format(raw, qt)
	o.stage("format", time.Since(stageStart))

	return o.deliver(ctx, Turn{Display: display, Type: qt}, in)
}

// StopSpeaking halts any audible playback; idempotent.
func (o *Orchestrator) StopSpeaking() {
	o.playback.Stop()
}

// ReplayMessage speaks a previously delivered assistant message again.
func (o *Orchestrator) ReplayMessage(ctx context.Context, messageID, display string, lang speech.Language) {
	o.playback.Replay(ctx, messageID, speech.NormalizeForSpeech(display, lang), lang)
}

// ClearHistory drops the persisted conversation.
func (o *Orchestrator) ClearHistory(ctx context.Context) error {
	return o.history.Clear(ctx)
}

// History exposes the current message list for the history endpoints.
func (o *Orchestrator) History() []conversation.Message {
	return o.history.Messages()
}

// deliver persists the assistant message and speaks it. The spoken text is
// derived from the exact display text; the two must never diverge.
func (o *Orchestrator) deliver(ctx context.Context, t Turn, in TurnInput) Turn {
	msg := o.append(ctx, conversation.RoleAssistant, t.Display)
	t.MessageID = msg.ID
	stageStart := time.Now()
	t.Speech = speech.NormalizeForSpeech(t.Display, in.Language)
	o.stage("normalize", time.Since(stageStart))

	if !in.Mute {
		o.phase(PhaseSpeaking)
		o.playback.Start(ctx, t.MessageID, t.Speech, in.Language)
	}
	return t
}

// append persists one message; store failures are logged and the in-memory
// turn continues.
func (o *Orchestrator) append(ctx context.Context, role conversation.Role, content string) conversation.Message {
	msg, err := o.history.Append(ctx, conversation.Message{Role: role, Content: content})
	if err != nil {
		log.Printf("assistant: persist %s message: %v", role, err)
	}
	return msg
}

func (o *Orchestrator) phase(p Phase) {
	if o.onPhase != nil {
		o.onPhase(p)
	}
}

func (o *Orchestrator) stage(name string, d time.Duration) {
	if o.onStage != nil {
		o.onStage(name, d)
	}
}
