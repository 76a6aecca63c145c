package session

import (
	"context"
	"testing"
	"time"

	"github.com/voicevedic/voicevedic/internal/speech"
)

func TestManagerCreateGetEnd(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", speech.LangHindi, "", "Mumbai")
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != "u1" || got.Language != speech.LangHindi || got.Location != "Mumbai" || got.Status != StatusActive {
		t.Fatalf("unexpected session state: %+v", got)
	}

	ended, err := m.End(s.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ended.Status != StatusEnded {
		t.Fatalf("ended status = %q, want %q", ended.Status, StatusEnded)
	}
}

func TestManagerFinishTurnClearsMarker(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", speech.LangEnglish, "", "")
	if err := m.StartTurn(s.ID, "turn-1"); err != nil {
		t.Fatalf("StartTurn() error = %v", err)
	}
	if err := m.FinishTurn(s.ID); err != nil {
		t.Fatalf("FinishTurn() error = %v", err)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ActiveTurnID != "" {
		t.Fatalf("ActiveTurnID = %q, want empty", got.ActiveTurnID)
	}
	if got.TurnCount != 1 {
		t.Fatalf("TurnCount = %d, want 1", got.TurnCount)
	}
}

func TestManagerUpdateSettings(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", speech.LangEnglish, "", "")

	if err := m.UpdateSettings(s.ID, speech.LangTamil, "voice-ta", "Chennai"); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Language != speech.LangTamil || got.VoiceID != "voice-ta" || got.Location != "Chennai" {
		t.Fatalf("settings not applied: %+v", got)
	}

	// Empty fields leave current values alone.
	if err := m.UpdateSettings(s.ID, "", "", ""); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	got, _ = m.Get(s.ID)
	if got.Language != speech.LangTamil {
		t.Fatalf("language reset by empty update: %+v", got)
	}
}

func TestManagerJanitorExpiresInactive(t *testing.T) {
	m := NewManager(30 * time.Millisecond)
	s := m.Create("u1", speech.LangEnglish, "", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartJanitor(ctx, 10*time.Millisecond)

	time.Sleep(90 * time.Millisecond)
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusEnded {
		t.Fatalf("Status = %q, want %q", got.Status, StatusEnded)
	}
}
