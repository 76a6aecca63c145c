package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/voicevedic/voicevedic/internal/audio"
)

// OpenAIConfig configures the hosted synthesis/transcription provider.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	TTSModel   string
	STTModel   string
	HTTPClient *http.Client
}

// OpenAIProvider implements Synthesizer and Transcriber against the OpenAI
// audio endpoints.
type OpenAIProvider struct {
	cfg    OpenAIConfig
	client *http.Client
}

// openaiVoices maps each guidance language to the provider voice used for
// it. The primary playback path always supplies an explicit voice ID
// derived from this table.
var openaiVoices = map[Language]string{
	LangEnglish:   "alloy",
	LangHindi:     "shimmer",
	LangKannada:   "shimmer",
	LangTamil:     "shimmer",
	LangTelugu:    "shimmer",
	LangMalayalam: "shimmer",
}

func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if strings.TrimSpace(cfg.TTSModel) == "" {
		cfg.TTSModel = "tts-1"
	}
	if strings.TrimSpace(cfg.STTModel) == "" {
		cfg.STTModel = "whisper-1"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OpenAIProvider{cfg: cfg, client: client}
}

// VoiceIDFor returns the provider voice identifier for a language.
func VoiceIDFor(lang Language) string {
	if v, ok := openaiVoices[lang]; ok {
		return v
	}
	return openaiVoices[LangEnglish]
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, req SynthesisRequest) (AudioClip, error) {
	voice := strings.TrimSpace(req.VoiceID)
	if voice == "" {
		voice = VoiceIDFor(req.Language)
	}

	payload, err := json.Marshal(map[string]any{
		"model":           p.cfg.TTSModel,
		"input":           req.Text,
		"voice":           voice,
		"response_format": "mp3",
	})
	if err != nil {
		return AudioClip{}, fmt.Errorf("marshal tts request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return AudioClip{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return AudioClip{}, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return AudioClip{}, fmt.Errorf("tts HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return AudioClip{}, fmt.Errorf("read tts audio: %w", err)
	}
	if len(data) == 0 {
		return AudioClip{}, fmt.Errorf("tts returned empty audio")
	}
	return AudioClip{Data: data, Format: "mp3"}, nil
}

func (p *OpenAIProvider) Transcribe(ctx context.Context, pcm16le []byte, sampleRate int, lang Language) (string, error) {
	wav, err := audio.EncodeWAVPCM16LE(pcm16le, sampleRate)
	if err != nil {
		return "", fmt.Errorf("encode wav: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "capture.wav")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(wav); err != nil {
		return "", err
	}
	if err := mw.WriteField("model", p.cfg.STTModel); err != nil {
		return "", err
	}
	if lang != "" {
		if err := mw.WriteField("language", string(lang)); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("transcription HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode transcription: %w", err)
	}
	return strings.TrimSpace(parsed.Text), nil
}
