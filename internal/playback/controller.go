// Package playback owns the one live audio session. It serializes every
// start/stop transition through a small state machine so that at most one
// audio handle can produce sound at any instant, queueing requests that
// arrive while a transition is in flight.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/voicevedic/voicevedic/internal/speech"
)

// State is the controller's externally visible phase.
type State string

const (
	StateIdle           State = "idle"
	StateLockedStarting State = "locked_starting"
	StatePlaying        State = "playing"
	StateLockedStopping State = "locked_stopping"
)

// DefaultSettleDelay separates teardown of the previous handle from
// acquisition of the next one, avoiding overlap artifacts on the audio
// device.
const DefaultSettleDelay = 300 * time.Millisecond

// Handle is one live audio resource. Release must be idempotent; Done is
// closed on natural end or playback error.
type Handle interface {
	Play() error
	Release()
	Done() <-chan struct{}
}

// Player turns a rendered clip into a live handle (for the service, a
// stream toward the connected client).
type Player interface {
	Start(clip speech.AudioClip) (Handle, error)
}

type request struct {
	id   string
	text string
	lang speech.Language
	// acquire overrides the primary synthesized path; the engine fallback
	// path supplies its own handle builder here.
	acquire func(ctx context.Context) (Handle, error)
}

// Controller is the process-wide serialized audio session manager.
//
// Ownership discipline: whichever transition moved the state into
// Locked-Starting or Locked-Stopping is the only code path allowed to move
// it out again. Everyone else either queues (Start), raises stopRequested
// (Stop), or walks away (a stale watcher). This keeps the lock held across
// the whole teardown+setup window without ever stranding the machine in a
// locked state.
type Controller struct {
	synth  speech.Synthesizer
	player Player
	engine speech.Engine
	settle time.Duration

	mu             sync.Mutex
	state          State
	activeID       string
	handle         Handle
	pending        []request
	stopRequested  bool
	preferredVoice string
	onTransition   func(from, to State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithSettleDelay overrides the teardown settle delay (tests use zero).
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settle = d }
}

// WithEngine installs the platform speech engine used by the fallback path.
func WithEngine(e speech.Engine) Option {
	return func(c *Controller) { c.engine = e }
}

// WithTransitionHook registers an observer for state changes (metrics).
func WithTransitionHook(hook func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = hook }
}

func NewController(synth speech.Synthesizer, player Player, opts ...Option) *Controller {
	c := &Controller{
		synth:  synth,
		player: player,
		settle: DefaultSettleDelay,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveMessageID reports the message currently audible, or "".
func (c *Controller) ActiveMessageID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// SetPreferredVoice pins the provider voice for subsequent activations.
// An empty id falls back to the per-language default. In-flight audio is
// unaffected.
func (c *Controller) SetPreferredVoice(id string) {
	c.mu.Lock()
	c.preferredVoice = id
	c.mu.Unlock()
}

// Start activates playback for a message. The text must already be
// speech-normalized. Requests arriving during a locked transition are
// queued FIFO; starting the message that is already playing toggles it off
// instead.
func (c *Controller) Start(ctx context.Context, messageID, text string, lang speech.Language) {
	c.mu.Lock()
	switch c.state {
	case StateLockedStarting, StateLockedStopping:
		c.pending = append(c.pending, request{id: messageID, text: text, lang: lang})
		c.mu.Unlock()
		return
	case StatePlaying:
		if c.activeID == messageID {
			c.mu.Unlock()
			c.Stop()
			return
		}
	}
	c.activate(ctx, request{id: messageID, text: text, lang: lang})
}

// Replay re-activates a message unconditionally, with no toggle semantics.
func (c *Controller) Replay(ctx context.Context, messageID, text string, lang speech.Language) {
	c.mu.Lock()
	switch c.state {
	case StateLockedStarting, StateLockedStopping:
		c.pending = append(c.pending, request{id: messageID, text: text, lang: lang})
		c.mu.Unlock()
		return
	}
	c.activate(ctx, request{id: messageID, text: text, lang: lang})
}

// Stop halts any audible or in-flight playback. It is idempotent: stopping
// an idle controller is a no-op. An explicit stop also discards queued
// requests, since the user asked for silence.
func (c *Controller) Stop() {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return
	case StateLockedStarting, StateLockedStopping:
		c.stopRequested = true
		c.pending = nil
		c.mu.Unlock()
		return
	}

	h := c.handle
	c.handle = nil
	c.activeID = ""
	c.pending = nil
	c.setStateLocked(StateLockedStopping)
	c.mu.Unlock()

	c.teardown(h)
	c.finishTransition(nil)
}

// activate runs the Locked-Starting transition. The caller must hold the
// mutex; activate releases it around teardown, the settle delay, and
// synthesis.
func (c *Controller) activate(ctx context.Context, req request) {
	old := c.handle
	c.handle = nil
	c.activeID = ""
	c.setStateLocked(StateLockedStarting)
	c.mu.Unlock()

	c.teardown(old)
	if c.settle > 0 {
		time.Sleep(c.settle)
	}

	handle, err := c.acquire(ctx, req)

	c.mu.Lock()
	if c.stopRequested {
		c.stopRequested = false
		c.setStateLocked(StateIdle)
		c.mu.Unlock()
		if handle != nil {
			handle.Release()
		}
		return
	}

	if err != nil || handle == nil {
		// Silent degradation: the message stays visible without audio.
		c.finishTransitionLocked(handle)
		return
	}
	if playErr := handle.Play(); playErr != nil {
		c.finishTransitionLocked(handle)
		return
	}

	c.handle = handle
	c.activeID = req.id
	c.setStateLocked(StatePlaying)
	c.mu.Unlock()

	go c.watch(handle)
}

// acquire renders the request into a playable handle via the primary
// synthesized path, unless the request carries its own builder.
func (c *Controller) acquire(ctx context.Context, req request) (Handle, error) {
	if req.acquire != nil {
		return req.acquire(ctx)
	}
	c.mu.Lock()
	voiceID := c.preferredVoice
	c.mu.Unlock()
	if voiceID == "" {
		voiceID = speech.VoiceIDFor(req.lang)
	}
	clip, err := c.synth.Synthesize(ctx, speech.SynthesisRequest{
		Text:     req.text,
		Language: req.lang,
		VoiceID:  voiceID,
	})
	if err != nil {
		return nil, err
	}
	return c.player.Start(clip)
}

// watch waits for natural end or error, then runs the stopping transition.
func (c *Controller) watch(h Handle) {
	<-h.Done()

	c.mu.Lock()
	if c.state != StatePlaying || c.handle != h {
		// A newer transition already took the handle over.
		c.mu.Unlock()
		return
	}
	c.handle = nil
	c.activeID = ""
	c.setStateLocked(StateLockedStopping)
	c.mu.Unlock()

	c.teardown(h)
	c.finishTransition(nil)
}

// finishTransition completes a locked transition: honor a stop request,
// settle to Idle, then service the oldest queued request if any.
func (c *Controller) finishTransition(failed Handle) {
	c.mu.Lock()
	c.finishTransitionLocked(failed)
}

// finishTransitionLocked is finishTransition with the mutex already held.
// It releases the mutex before returning.
func (c *Controller) finishTransitionLocked(failed Handle) {
	if c.stopRequested {
		c.stopRequested = false
		c.pending = nil
	}
	c.setStateLocked(StateIdle)
	if len(c.pending) == 0 {
		c.mu.Unlock()
		if failed != nil {
			failed.Release()
		}
		return
	}
	next := c.pending[0]
	c.pending = c.pending[1:]
	if failed != nil {
		failed.Release()
	}
	c.activate(context.Background(), next)
}

// teardown releases a prior handle and cancels the platform engine. It is
// the single cleanup path for every transition.
func (c *Controller) teardown(h Handle) {
	if c.engine != nil {
		c.engine.Cancel()
	}
	if h != nil {
		h.Release()
	}
}

func (c *Controller) setStateLocked(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
