package playback

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/voicevedic/voicevedic/internal/speech"
)

func waitState(t *testing.T, c *Controller, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("controller never reached %q (stuck at %q)", want, c.State())
}

func newTestController(opts ...Option) (*Controller, *MockPlayer) {
	player := NewMockPlayer()
	synth := speech.NewMockSynthesizer()
	opts = append([]Option{WithSettleDelay(0)}, opts...)
	return NewController(synth, player, opts...), player
}

func TestStopWhenIdleIsNoOp(t *testing.T) {
	c, _ := newTestController()
	c.Stop()
	c.Stop()
	if got := c.State(); got != StateIdle {
		t.Fatalf("state = %q, want idle", got)
	}
}

func TestStartPlaysAndNaturalEndReturnsToIdle(t *testing.T) {
	c, player := newTestController()
	c.Start(context.Background(), "m1", "Namaste", speech.LangEnglish)

	if got := c.State(); got != StatePlaying {
		t.Fatalf("state = %q, want playing", got)
	}
	if got := c.ActiveMessageID(); got != "m1" {
		t.Fatalf("active id = %q, want m1", got)
	}

	player.Last().Finish()
	waitState(t, c, StateIdle)
	if got := c.ActiveMessageID(); got != "" {
		t.Fatalf("active id = %q after end, want empty", got)
	}
	if live := player.Live(); live != 0 {
		t.Fatalf("%d handles still live after natural end", live)
	}
}

func TestStartSameMessageToggles(t *testing.T) {
	c, player := newTestController()
	c.Start(context.Background(), "m1", "text", speech.LangEnglish)
	c.Start(context.Background(), "m1", "text", speech.LangEnglish)

	waitState(t, c, StateIdle)
	if live := player.Live(); live != 0 {
		t.Fatalf("%d handles live after toggle stop", live)
	}
}

func TestStartDifferentMessageSupersedes(t *testing.T) {
	c, player := newTestController()
	c.Start(context.Background(), "m1", "first", speech.LangEnglish)
	first := player.Last()
	c.Start(context.Background(), "m2", "second", speech.LangEnglish)

	if got := c.ActiveMessageID(); got != "m2" {
		t.Fatalf("active id = %q, want m2", got)
	}
	select {
	case <-first.Done():
	default:
		t.Fatal("superseded handle was not released")
	}
	if max := player.MaxLive(); max > 1 {
		t.Fatalf("max live handles = %d, want <= 1", max)
	}
}

func TestSynthesisFailureDegradesSilently(t *testing.T) {
	player := NewMockPlayer()
	synth := speech.NewMockSynthesizer()
	synth.SetFail(true)
	c := NewController(synth, player, WithSettleDelay(0))

	c.Start(context.Background(), "m1", "text", speech.LangEnglish)
	if got := c.State(); got != StateIdle {
		t.Fatalf("state = %q, want idle after failed synthesis", got)
	}
	if player.Started() != 0 {
		t.Fatal("no handle should be created when synthesis fails")
	}
}

// blockingSynth parks Synthesize until released, letting tests observe the
// locked-starting window.
type blockingSynth struct {
	entered chan struct{}
	release chan struct{}
	inner   *speech.MockSynthesizer
	once    sync.Once
}

func newBlockingSynth() *blockingSynth {
	return &blockingSynth{
		entered: make(chan struct{}, 8),
		release: make(chan struct{}),
		inner:   speech.NewMockSynthesizer(),
	}
}

func (b *blockingSynth) Synthesize(ctx context.Context, req speech.SynthesisRequest) (speech.AudioClip, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.inner.Synthesize(ctx, req)
}

func (b *blockingSynth) unblock() { b.once.Do(func() { close(b.release) }) }

func TestStartWhileLockedQueuesFIFO(t *testing.T) {
	player := NewMockPlayer()
	synth := newBlockingSynth()
	c := NewController(synth, player, WithSettleDelay(0))

	go c.Start(context.Background(), "m1", "first", speech.LangEnglish)
	<-synth.entered

	// Arrives mid-transition; must queue, not reject.
	c.Start(context.Background(), "m2", "second", speech.LangEnglish)
	if got := c.State(); got != StateLockedStarting {
		t.Fatalf("state = %q, want locked_starting", got)
	}

	synth.unblock()
	waitState(t, c, StatePlaying)
	if got := c.ActiveMessageID(); got != "m1" {
		t.Fatalf("active id = %q, want m1 (queued request must wait)", got)
	}

	// Natural end of m1 must drain the queue into m2.
	player.Last().Finish()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.ActiveMessageID() == "m2" {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if got := c.ActiveMessageID(); got != "m2" {
		t.Fatalf("active id = %q, want dequeued m2", got)
	}
	if max := player.MaxLive(); max > 1 {
		t.Fatalf("max live handles = %d, want <= 1", max)
	}
}

func TestStopDuringLockedStartSuppressesPlayback(t *testing.T) {
	player := NewMockPlayer()
	synth := newBlockingSynth()
	c := NewController(synth, player, WithSettleDelay(0))

	go c.Start(context.Background(), "m1", "first", speech.LangEnglish)
	<-synth.entered
	c.Stop()
	c.Stop() // stop must stay idempotent mid-transition
	synth.unblock()

	waitState(t, c, StateIdle)
	if live := player.Live(); live != 0 {
		t.Fatalf("%d handles live after suppressed start", live)
	}
}

// Property: over random interleavings of start/stop/replay/finish, at no
// point do two live audio handles coexist.
func TestMutualExclusionUnderRandomOps(t *testing.T) {
	c, player := newTestController()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 400; i++ {
		id := fmt.Sprintf("m%d", rng.Intn(4))
		switch rng.Intn(4) {
		case 0:
			c.Start(context.Background(), id, "text for "+id, speech.LangEnglish)
		case 1:
			c.Stop()
		case 2:
			c.Replay(context.Background(), id, "text for "+id, speech.LangEnglish)
		case 3:
			if h := player.Last(); h != nil {
				h.Finish()
			}
		}
		if max := player.MaxLive(); max > 1 {
			t.Fatalf("op %d: max live handles = %d, want <= 1", i, max)
		}
	}

	c.Stop()
	waitState(t, c, StateIdle)
	if max := player.MaxLive(); max > 1 {
		t.Fatalf("max live handles = %d, want <= 1", max)
	}
}

func TestSpeakWithEngineSpeaksChunksSequentially(t *testing.T) {
	engine := speech.NewMockEngine()
	c, _ := newTestController(WithEngine(engine))

	voices := []speech.Voice{{Label: "Lekha", ID: "v1", LanguageTag: "hi-IN"}}
	text := "पहला वाक्य। दूसरा वाक्य। तीसरा वाक्य।"
	if err := c.SpeakWithEngine("m1", text, speech.LangHindi, voices, ""); err != nil {
		t.Fatalf("SpeakWithEngine: %v", err)
	}

	waitState(t, c, StateIdle)
	spoken := engine.Spoken()
	if len(spoken) != 3 {
		t.Fatalf("spoke %d chunks, want 3: %#v", len(spoken), spoken)
	}
	for _, u := range spoken {
		if u.Voice.ID != "v1" {
			t.Fatalf("chunk used voice %q, want v1", u.Voice.ID)
		}
	}
}

func TestSpeakWithEngineWithoutEngineErrors(t *testing.T) {
	c, _ := newTestController()
	err := c.SpeakWithEngine("m1", "text", speech.LangEnglish, []speech.Voice{{ID: "v"}}, "")
	if err == nil {
		t.Fatal("expected error when no engine is configured")
	}
}
