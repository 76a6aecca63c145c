package conversation

import (
	"context"
	"testing"
	"time"
)

func TestHistoryAppendAssignsIDAndTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	h := NewHistory(context.Background(), store, "vv-test")

	msg, err := h.Append(context.Background(), Message{Role: RoleUser, Content: "When is Diwali?"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if msg.ID == "" || msg.CreatedAt.IsZero() {
		t.Fatalf("message missing identity: %+v", msg)
	}
}

func TestHistorySurvivesRestart(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	h := NewHistory(ctx, store, "vv-test")
	created := time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)
	if _, err := h.Append(ctx, Message{Role: RoleUser, Content: "q", CreatedAt: created}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := h.Append(ctx, Message{Role: RoleAssistant, Content: "a"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	revived := NewHistory(ctx, store, "vv-test")
	msgs := revived.Messages()
	if len(msgs) != 2 {
		t.Fatalf("revived %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "q" || msgs[1].Content != "a" {
		t.Fatalf("revived out of order: %+v", msgs)
	}
	if !msgs[0].CreatedAt.Equal(created) {
		t.Fatalf("timestamp not revived: %v", msgs[0].CreatedAt)
	}
}

func TestHistoryClearDropsStoreAndMemory(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	h := NewHistory(ctx, store, "vv-test")
	if _, err := h.Append(ctx, Message{Role: RoleUser, Content: "q"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := len(h.Messages()); got != 0 {
		t.Fatalf("%d messages after clear", got)
	}
	if revived := NewHistory(ctx, store, "vv-test"); len(revived.Messages()) != 0 {
		t.Fatal("store still holds messages after clear")
	}
}

func TestHistoryNamespaceIsolation(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	a := NewHistory(ctx, store, "user-a")
	b := NewHistory(ctx, store, "user-b")
	if _, err := a.Append(ctx, Message{Role: RoleUser, Content: "q"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := len(b.Messages()); got != 0 {
		t.Fatalf("namespace leak: %d messages in b", got)
	}
}
