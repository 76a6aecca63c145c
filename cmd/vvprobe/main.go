// vvprobe runs the full answer pipeline offline against mock providers and
// prints per-stage latency plus the formatted and speech-normalized output.
// It exists to sanity-check pipeline behavior without any API keys.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/voicevedic/voicevedic/internal/answer"
	"github.com/voicevedic/voicevedic/internal/assistant"
	"github.com/voicevedic/voicevedic/internal/classify"
	"github.com/voicevedic/voicevedic/internal/conversation"
	"github.com/voicevedic/voicevedic/internal/format"
	"github.com/voicevedic/voicevedic/internal/playback"
	"github.com/voicevedic/voicevedic/internal/speech"
)

type options struct {
	question string
	language string
	location string
	answer   string
	settle   time.Duration
	verbose  bool
}

const defaultAnswer = "Amavasya falls on 21 September 2025.\n" +
	"The tithi begins at 18:30 and ends at 6:05 the next morning.\n" +
	"It is considered auspicious for ancestor rituals and tarpanam.\n" +
	"Fasting and temple visits are common observances."

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "vvprobe: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var cfg options
	var settleMS int

	flag.StringVar(&cfg.question, "question", "When is Amavasya in Mumbai?", "question to run through the pipeline")
	flag.StringVar(&cfg.language, "language", "en", "speech language code (en|hi|kn|ta|te|ml)")
	flag.StringVar(&cfg.location, "location", "", "ambient location fallback")
	flag.StringVar(&cfg.answer, "answer", defaultAnswer, "canned answer returned by the mock answer service")
	flag.IntVar(&settleMS, "settle-ms", 0, "playback settle delay in milliseconds")
	flag.BoolVar(&cfg.verbose, "verbose", true, "print stage output in full")
	flag.Parse()

	cfg.settle = time.Duration(settleMS) * time.Millisecond
	return cfg
}

func run(cfg options) error {
	lang := speech.ParseLanguage(cfg.language)
	ctx := context.Background()

	answers := &answer.MockClient{Answer: cfg.answer}
	player := playback.NewMockPlayer()
	synth := speech.NewMockSynthesizer()
	ctl := playback.NewController(synth, player, playback.WithSettleDelay(cfg.settle))
	orch := assistant.NewOrchestrator(assistant.Config{
		Answers:  answers,
		Playback: ctl,
		History:  conversation.NewHistory(ctx, conversation.NewInMemoryStore(), "vvprobe"),
	})

	// Individual stages first, so their cost is visible in isolation.
	start := time.Now()
	verdict := classify.Classify(cfg.question)
	qt := classify.DetectQuestionType(cfg.question)
	classifyDur := time.Since(start)

	start = time.Now()
	display := format.Format(cfg.answer, qt)
	formatDur := time.Since(start)

	start = time.Now()
	spoken := speech.NormalizeForSpeech(display, lang)
	normalizeDur := time.Since(start)

	start = time.Now()
	chunks := speech.ChunkForSpeech(spoken)
	chunkDur := time.Since(start)

	start = time.Now()
	turn := orch.HandleQuestion(ctx, assistant.TurnInput{
		Question: cfg.question,
		Language: lang,
		Location: cfg.location,
	})
	turnDur := time.Since(start)

	fmt.Printf("question:       %s\n", cfg.question)
	fmt.Printf("verdict:        %s\n", verdict)
	fmt.Printf("question type:  %s\n", qt)
	fmt.Printf("classify:       %s\n", classifyDur)
	fmt.Printf("format:         %s\n", formatDur)
	fmt.Printf("normalize:      %s\n", normalizeDur)
	fmt.Printf("chunk (%d):      %s\n", len(chunks), chunkDur)
	fmt.Printf("full turn:      %s\n", turnDur)
	fmt.Printf("playback state: %s (message %s)\n", ctl.State(), ctl.ActiveMessageID())
	fmt.Printf("redirected:     %v\n", turn.Redirected)

	if cfg.verbose {
		fmt.Println("\n--- display ---")
		fmt.Println(turn.Display)
		fmt.Println("\n--- speech ---")
		fmt.Println(turn.Speech)
		if len(chunks) > 1 {
			fmt.Println("\n--- chunks ---")
			for i, c := range chunks {
				fmt.Printf("%2d: %s\n", i+1, c)
			}
		}
	}

	if !turn.Redirected && turn.Speech == "" {
		return fmt.Errorf("pipeline produced empty speech text")
	}
	if strings.TrimSpace(turn.Display) == "" {
		return fmt.Errorf("pipeline produced empty display text")
	}
	return nil
}
