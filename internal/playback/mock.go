package playback

import (
	"sync"

	"github.com/voicevedic/voicevedic/internal/speech"
)

// MockPlayer creates in-memory handles and tracks how many are live at
// once, which is the property the controller exists to bound.
type MockPlayer struct {
	mu         sync.Mutex
	live       int
	maxLive    int
	started    int
	lastHandle *MockHandle
	startErr   error
}

func NewMockPlayer() *MockPlayer { return &MockPlayer{} }

func (p *MockPlayer) SetStartError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startErr = err
}

func (p *MockPlayer) Start(clip speech.AudioClip) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startErr != nil {
		return nil, p.startErr
	}
	p.live++
	p.started++
	if p.live > p.maxLive {
		p.maxLive = p.live
	}
	h := &MockHandle{player: p, clip: clip, done: make(chan struct{})}
	p.lastHandle = h
	return h, nil
}

// MaxLive reports the highest number of simultaneously live handles.
func (p *MockPlayer) MaxLive() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxLive
}

func (p *MockPlayer) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

func (p *MockPlayer) Started() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Last returns the most recently created handle.
func (p *MockPlayer) Last() *MockHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastHandle
}

func (p *MockPlayer) release() {
	p.mu.Lock()
	p.live--
	p.mu.Unlock()
}

// MockHandle is an in-memory audio handle.
type MockHandle struct {
	player *MockPlayer
	clip   speech.AudioClip

	mu       sync.Mutex
	playErr  error
	released bool
	done     chan struct{}
	closed   sync.Once
}

func (h *MockHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playErr
}

func (h *MockHandle) Release() {
	h.mu.Lock()
	already := h.released
	h.released = true
	h.mu.Unlock()
	if already {
		return
	}
	h.player.release()
	h.closed.Do(func() { close(h.done) })
}

func (h *MockHandle) Done() <-chan struct{} { return h.done }

// Finish simulates natural playback end.
func (h *MockHandle) Finish() {
	h.closed.Do(func() { close(h.done) })
}

// Clip returns the audio this handle was started with.
func (h *MockHandle) Clip() speech.AudioClip { return h.clip }
