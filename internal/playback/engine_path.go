package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/voicevedic/voicevedic/internal/speech"
)

// SpeakWithEngine drives the platform's built-in speech engine instead of
// the synthesis provider. It exists for legacy/offline behavior and is not
// part of the primary flow; it still runs through the same state machine,
// so the one-live-handle guarantee holds across both paths. Chunks are
// spoken sequentially, each completion triggering the next, to stay under
// engine utterance limits and keep prosody natural.
func (c *Controller) SpeakWithEngine(messageID, text string, lang speech.Language, available []speech.Voice, preferredVoiceID string) error {
	if c.engine == nil {
		return fmt.Errorf("no platform speech engine configured")
	}
	voice, ok := speech.SelectVoice(lang, available, preferredVoiceID)
	if !ok {
		return fmt.Errorf("no voices available for %s", lang)
	}

	chunks := speech.ChunkForSpeech(text)
	req := request{
		id:   messageID,
		text: text,
		lang: lang,
		acquire: func(context.Context) (Handle, error) {
			return newEngineHandle(c.engine, chunks, voice), nil
		},
	}

	c.mu.Lock()
	switch c.state {
	case StateLockedStarting, StateLockedStopping:
		c.pending = append(c.pending, req)
		c.mu.Unlock()
		return nil
	case StatePlaying:
		if c.activeID == messageID {
			c.mu.Unlock()
			c.Stop()
			return nil
		}
	}
	c.activate(context.Background(), req)
	return nil
}

// engineHandle adapts a sequence of engine utterances to the Handle
// contract: Done closes when the last chunk finishes or any chunk fails.
type engineHandle struct {
	engine speech.Engine
	chunks []string
	voice  speech.Voice

	mu       sync.Mutex
	idx      int
	released bool
	done     chan struct{}
	closed   sync.Once
}

func newEngineHandle(engine speech.Engine, chunks []string, voice speech.Voice) *engineHandle {
	return &engineHandle{
		engine: engine,
		chunks: chunks,
		voice:  voice,
		done:   make(chan struct{}),
	}
}

func (h *engineHandle) Play() error {
	if len(h.chunks) == 0 {
		h.finish()
		return nil
	}
	return h.speakNext()
}

func (h *engineHandle) speakNext() error {
	h.mu.Lock()
	if h.released || h.idx >= len(h.chunks) {
		h.mu.Unlock()
		h.finish()
		return nil
	}
	chunk := h.chunks[h.idx]
	h.idx++
	h.mu.Unlock()

	err := h.engine.Speak(speech.Utterance{Text: chunk, Voice: h.voice}, func(err error) {
		if err != nil {
			h.finish()
			return
		}
		_ = h.speakNext()
	})
	if err != nil {
		h.finish()
	}
	return err
}

func (h *engineHandle) Release() {
	h.mu.Lock()
	already := h.released
	h.released = true
	h.mu.Unlock()
	if !already {
		h.engine.Cancel()
	}
	h.finish()
}

func (h *engineHandle) Done() <-chan struct{} { return h.done }

func (h *engineHandle) finish() {
	h.closed.Do(func() { close(h.done) })
}
