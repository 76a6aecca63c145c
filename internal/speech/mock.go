package speech

import (
	"context"
	"fmt"
	"sync"
)

// MockSynthesizer returns deterministic fake clips, optionally failing, for
// tests and the offline probe.
type MockSynthesizer struct {
	mu       sync.Mutex
	fail     bool
	requests []SynthesisRequest
}

func NewMockSynthesizer() *MockSynthesizer { return &MockSynthesizer{} }

func (m *MockSynthesizer) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *MockSynthesizer) Requests() []SynthesisRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SynthesisRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, req SynthesisRequest) (AudioClip, error) {
	if err := ctx.Err(); err != nil {
		return AudioClip{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return AudioClip{}, fmt.Errorf("mock synthesis failure")
	}
	m.requests = append(m.requests, req)
	return AudioClip{Data: []byte("audio:" + req.Text), Format: "mp3"}, nil
}

// MockTranscriber returns a fixed transcript.
type MockTranscriber struct {
	Text string
	Err  error
}

func (m *MockTranscriber) Transcribe(_ context.Context, _ []byte, _ int, _ Language) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockEngine records spoken utterances and completes them synchronously
// unless manual completion is enabled.
type MockEngine struct {
	mu       sync.Mutex
	spoken   []Utterance
	canceled int
	manual   bool
	pending  []func(error)
}

func NewMockEngine() *MockEngine { return &MockEngine{} }

// SetManual defers utterance completion until FinishNext is called.
func (m *MockEngine) SetManual(manual bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manual = manual
}

func (m *MockEngine) Speak(u Utterance, done func(error)) error {
	m.mu.Lock()
	m.spoken = append(m.spoken, u)
	if m.manual {
		m.pending = append(m.pending, done)
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()
	done(nil)
	return nil
}

// FinishNext completes the oldest pending utterance.
func (m *MockEngine) FinishNext(err error) bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	done := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	done(err)
	return true
}

func (m *MockEngine) Cancel() {
	m.mu.Lock()
	m.canceled++
	m.pending = nil
	m.mu.Unlock()
}

func (m *MockEngine) Spoken() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Utterance, len(m.spoken))
	copy(out, m.spoken)
	return out
}

func (m *MockEngine) CancelCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canceled
}
