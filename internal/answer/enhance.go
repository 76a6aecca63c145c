package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/voicevedic/voicevedic/internal/speech"
)

// Enhancer runs the best-effort answer refinement pass. Failure of any
// kind returns the input unchanged; enhancement is never allowed to break
// a turn.
type Enhancer interface {
	Enhance(ctx context.Context, text, originalQuestion string, lang speech.Language) string
}

// HTTPEnhancer posts to a refinement endpoint that returns improved text.
type HTTPEnhancer struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPEnhancer(url, apiKey string) *HTTPEnhancer {
	return &HTTPEnhancer{
		url:    strings.TrimSpace(url),
		apiKey: apiKey,
		client: &http.Client{Timeout: 8 * time.Second},
	}
}

func (e *HTTPEnhancer) Enhance(ctx context.Context, text, originalQuestion string, lang speech.Language) string {
	if e.url == "" {
		return text
	}

	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"question": originalQuestion,
		"language": string(lang),
	})
	if err != nil {
		return text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return text
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return text
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return text
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return text
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return text
	}
	return parsed.Text
}

// NoopEnhancer returns its input; used when no refinement endpoint is
// configured.
type NoopEnhancer struct{}

func (NoopEnhancer) Enhance(_ context.Context, text, _ string, _ speech.Language) string {
	return text
}
