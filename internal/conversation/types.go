// Package conversation persists the chat transcript. The full message list
// is written as one JSON document per namespace on every change, read back
// once at session start, and cleared in full on explicit user action.
package conversation

import (
	"context"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversational exchange entry. Messages are append-only
// and never mutated after creation; Content holds the final display text.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is key-value persistence for message lists, keyed by namespace.
type Store interface {
	Load(ctx context.Context, namespace string) ([]Message, error)
	Save(ctx context.Context, namespace string, messages []Message) error
	Clear(ctx context.Context, namespace string) error
	Close() error
}
