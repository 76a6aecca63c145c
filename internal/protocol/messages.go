// Package protocol defines the typed JSON envelopes exchanged over the chat
// WebSocket. Every payload carries a discriminating "type" field; unknown
// types are rejected rather than ignored so client bugs surface early.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeClientAsk        MessageType = "client_ask"
	TypeClientAudioChunk MessageType = "client_audio_chunk"
	TypeClientControl    MessageType = "client_control"
	TypeAssistantMessage MessageType = "assistant_message"
	TypeAssistantAudio   MessageType = "assistant_audio_chunk"
	TypeSpeechState      MessageType = "speech_state"
	TypeSystemEvent      MessageType = "system_event"
	TypeErrorEvent       MessageType = "error_event"
)

// Control actions accepted in a client_control message.
const (
	ActionStop   = "stop"
	ActionReplay = "replay"
	ActionClear  = "clear"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// ClientAsk submits one typed question for a full turn.
type ClientAsk struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Question  string      `json:"question"`
	Mute      bool        `json:"mute,omitempty"`
}

// ClientAudioChunk carries recorded microphone audio for transcription.
// Final marks the last chunk of a capture; the server transcribes the
// accumulated audio and runs the turn as if the text had been typed.
type ClientAudioChunk struct {
	Type        MessageType `json:"type"`
	SessionID   string      `json:"session_id"`
	Seq         int         `json:"seq"`
	PCM16Base64 string      `json:"pcm16_base64"`
	SampleRate  int         `json:"sample_rate"`
	Final       bool        `json:"final,omitempty"`
}

// ClientControl requests stop, replay, or history clear. Replay names the
// assistant message to speak again.
type ClientControl struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Action    string      `json:"action"`
	MessageID string      `json:"message_id,omitempty"`
}

// AssistantMessage delivers one finished assistant (or echoed user) message.
type AssistantMessage struct {
	Type         MessageType `json:"type"`
	SessionID    string      `json:"session_id"`
	MessageID    string      `json:"message_id"`
	Role         string      `json:"role"`
	Content      string      `json:"content"`
	QuestionType string      `json:"question_type,omitempty"`
	Redirected   bool        `json:"redirected,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AssistantAudioChunk streams synthesized speech toward the client.
type AssistantAudioChunk struct {
	Type        MessageType `json:"type"`
	SessionID   string      `json:"session_id"`
	MessageID   string      `json:"message_id"`
	Seq         int         `json:"seq"`
	Format      string      `json:"format"`
	AudioBase64 string      `json:"audio_base64"`
}

// SpeechState reports playback controller transitions so the client can
// render play/stop affordances truthfully.
type SpeechState struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	State     string      `json:"state"`
	MessageID string      `json:"message_id,omitempty"`
}

type SystemEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail,omitempty"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Source    string      `json:"source"`
	Retryable bool        `json:"retryable"`
	Detail    string      `json:"detail"`
}

// ParseClientMessage decodes and validates one client-originated payload.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeClientAsk:
		var msg ClientAsk
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Question == "" {
			return nil, errors.New("invalid client_ask")
		}
		return msg, nil
	case TypeClientAudioChunk:
		var msg ClientAudioChunk
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.PCM16Base64 == "" || msg.SampleRate <= 0 {
			return nil, errors.New("invalid client_audio_chunk")
		}
		return msg, nil
	case TypeClientControl:
		var msg ClientControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" {
			return nil, errors.New("invalid client_control")
		}
		switch msg.Action {
		case ActionStop, ActionClear:
		case ActionReplay:
			if msg.MessageID == "" {
				return nil, errors.New("client_control replay requires message_id")
			}
		default:
			return nil, fmt.Errorf("unknown control action %q", msg.Action)
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
