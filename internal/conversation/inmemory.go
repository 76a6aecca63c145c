package conversation

import (
	"context"
	"encoding/json"
	"sync"
)

// InMemoryStore keeps serialized transcripts in process memory for
// local/dev use. It round-trips through JSON so timestamp revival behaves
// the same as the durable store.
type InMemoryStore struct {
	mu      sync.RWMutex
	payload map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{payload: make(map[string][]byte)}
}

func (s *InMemoryStore) Load(_ context.Context, namespace string) ([]Message, error) {
	s.mu.RLock()
	raw, ok := s.payload[namespace]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var out []Message
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *InMemoryStore) Save(_ context.Context, namespace string, messages []Message) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload[namespace] = raw
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, namespace string) error {
	s.mu.Lock()
	delete(s.payload, namespace)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
