package answer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicevedic/voicevedic/internal/speech"
)

func TestHTTPClientAsk(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Amavasya falls on June 25.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPConfig{APIKey: "test-key", BaseURL: srv.URL})
	got, err := c.Ask(context.Background(), Query{
		Question: "When is Amavasya?",
		Location: "Mumbai",
		Language: speech.LangHindi,
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "Amavasya falls on June 25." {
		t.Fatalf("Ask = %q", got)
	}

	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	user := gotReq.Messages[1].Content
	if !containsAll(user, "When is Amavasya?", "Mumbai", "hi") {
		t.Fatalf("user prompt missing context: %q", user)
	}
}

func TestHTTPClientAskServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Ask(context.Background(), Query{Question: "q"})

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("want ServiceError, got %v", err)
	}
	if svcErr.Status != http.StatusTooManyRequests || !svcErr.Retryable {
		t.Fatalf("unexpected error: %+v", svcErr)
	}
}

func TestHTTPClientAskEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := c.Ask(context.Background(), Query{Question: "q"}); err == nil {
		t.Fatal("want error on empty choices")
	}
}

func TestHTTPEnhancerFallsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewHTTPEnhancer(srv.URL, "k")
	got := e.Enhance(context.Background(), "original text", "q", speech.LangEnglish)
	if got != "original text" {
		t.Fatalf("Enhance = %q, want original", got)
	}

	unreachable := NewHTTPEnhancer("http://127.0.0.1:1", "k")
	if got := unreachable.Enhance(context.Background(), "original text", "q", speech.LangEnglish); got != "original text" {
		t.Fatalf("Enhance = %q, want original", got)
	}
}

func TestHTTPEnhancerUsesRefinedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "refined"})
	}))
	defer srv.Close()

	e := NewHTTPEnhancer(srv.URL, "k")
	if got := e.Enhance(context.Background(), "original", "q", speech.LangEnglish); got != "refined" {
		t.Fatalf("Enhance = %q", got)
	}
}

func TestExtractLocation(t *testing.T) {
	cases := []struct {
		question string
		want     string
	}{
		{"When is Amavasya in Mumbai?", "Mumbai"},
		{"Panchang for New Delhi today", "New Delhi"},
		{"Muhurat timings at Tirupati Balaji Temple", "Tirupati Balaji Temple"},
		{"When is Diwali this year?", ""},
		{"Is there a festival in the morning?", ""},
		{"What is rahu kalam in chennai?", ""},
	}
	for _, tc := range cases {
		if got := ExtractLocation(tc.question); got != tc.want {
			t.Errorf("ExtractLocation(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
