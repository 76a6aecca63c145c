package answer

import (
	"context"
	"sync"

	"github.com/voicevedic/voicevedic/internal/speech"
)

// MockClient returns a fixed answer and records queries; used by tests and
// the offline probe.
type MockClient struct {
	mu      sync.Mutex
	Answer  string
	Err     error
	queries []Query
}

func (m *MockClient) Ask(_ context.Context, q Query) (string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

// Queries returns every query seen so far.
func (m *MockClient) Queries() []Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Query, len(m.queries))
	copy(out, m.queries)
	return out
}

// CallCount reports how many times Ask ran.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// MockEnhancer applies a fixed transform or fails closed to the input.
type MockEnhancer struct {
	Transform func(string) string
}

func (m *MockEnhancer) Enhance(_ context.Context, text, _ string, _ speech.Language) string {
	if m.Transform == nil {
		return text
	}
	return m.Transform(text)
}
