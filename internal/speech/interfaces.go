package speech

import "context"

// SynthesisRequest asks a provider to render text as audio.
type SynthesisRequest struct {
	Text     string
	Language Language
	VoiceID  string
}

// AudioClip is a fully rendered audio resource.
type AudioClip struct {
	Data   []byte
	Format string
}

// Synthesizer renders speech through an external provider. Callers treat
// every error as recoverable: playback degrades silently when synthesis
// fails.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (AudioClip, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm16le []byte, sampleRate int, lang Language) (string, error)
}

// Utterance is one chunk handed to the platform speech engine.
type Utterance struct {
	Text  string
	Voice Voice
	Rate  float64
}

// Engine is the platform's built-in speech synthesis engine, used only by
// the fallback playback path. Speak is asynchronous; done fires exactly
// once when the utterance finishes or fails. Cancel discards anything
// queued or speaking and is safe to call at any time.
type Engine interface {
	Speak(u Utterance, done func(error)) error
	Cancel()
}
