// Package answer talks to the upstream question-answering service and the
// optional answer-enhancement service. Both are external collaborators:
// latency and correctness are out of our hands, so every non-2xx or
// malformed payload is a recoverable error for the caller.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voicevedic/voicevedic/internal/policy"
	"github.com/voicevedic/voicevedic/internal/reliability"
	"github.com/voicevedic/voicevedic/internal/speech"
)

// Query is one question for the answer service.
type Query struct {
	Question string
	Location string
	Language speech.Language
}

// Client produces a raw answer for a spiritual question.
type Client interface {
	Ask(ctx context.Context, q Query) (string, error)
}

// HTTPConfig configures the hosted answer service client.
type HTTPConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// HTTPClient calls a chat-completions style answer endpoint.
type HTTPClient struct {
	cfg    HTTPConfig
	client *http.Client
}

func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "sonar"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}
	return &HTTPClient{cfg: cfg, client: client}
}

const systemPrompt = "You are a Hindu Panchangam and festival guide. " +
	"Answer with short factual lines: dates, timings, significance, and rituals. " +
	"Do not add disclaimers."

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) Ask(ctx context.Context, q Query) (string, error) {
	// Questions leave our control here; strip contact and payment data
	// that users occasionally dictate by accident.
	prompt, _ := policy.RedactPII(q.Question)
	if strings.TrimSpace(q.Location) != "" {
		prompt += "\nLocation: " + q.Location
	}
	if q.Language != "" && q.Language != speech.LangEnglish {
		prompt += "\nRespond in language code: " + string(q.Language)
	}

	payload, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []completionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal answer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("answer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &ServiceError{
			Status:    resp.StatusCode,
			Retryable: reliability.IsRetryableHTTPStatus(resp.StatusCode),
			Detail:    strings.TrimSpace(string(msg)),
		}
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode answer: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("answer service returned no content")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ServiceError carries the upstream status and whether a retry could help.
type ServiceError struct {
	Status    int
	Retryable bool
	Detail    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("answer service HTTP %d: %s", e.Status, e.Detail)
}
