package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// History owns the in-memory message list for one namespace and mirrors
// every change into the durable store, so the transcript survives
// navigation and process restarts.
type History struct {
	store     Store
	namespace string

	mu       sync.RWMutex
	messages []Message
}

// NewHistory revives the transcript for namespace from the store. A load
// failure starts an empty transcript rather than blocking the session.
func NewHistory(ctx context.Context, store Store, namespace string) *History {
	h := &History{store: store, namespace: namespace}
	if revived, err := store.Load(ctx, namespace); err == nil {
		h.messages = revived
	}
	return h
}

// Append records a message and persists the full list. The message gets an
// ID and timestamp if it carries none.
func (h *History) Append(ctx context.Context, msg Message) (Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	h.mu.Lock()
	h.messages = append(h.messages, msg)
	snapshot := make([]Message, len(h.messages))
	copy(snapshot, h.messages)
	h.mu.Unlock()

	return msg, h.store.Save(ctx, h.namespace, snapshot)
}

// Messages returns a copy of the transcript in order.
func (h *History) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Clear drops the transcript from memory and the durable store.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.messages = nil
	h.mu.Unlock()
	return h.store.Clear(ctx, h.namespace)
}
