package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions      prometheus.Gauge
	Turns               *prometheus.CounterVec
	WSMessages          *prometheus.CounterVec
	ProviderErrors      *prometheus.CounterVec
	PlaybackTransitions *prometheus.CounterVec
	SpeakLatency        prometheus.Histogram

	stageWindow *pipelineStageWindow
}

// Turn outcome label values.
const (
	TurnAnswered   = "answered"
	TurnRedirected = "redirected"
	TurnFallback   = "fallback"
)

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of active chat sessions.",
		}),
		Turns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Completed conversational turns by outcome.",
		}, []string{"outcome"}),
		WSMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_messages_total",
			Help:      "WebSocket messages by direction and type.",
		}, []string{"direction", "type"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "External provider errors by provider and code.",
		}, []string{"provider", "code"}),
		PlaybackTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_transitions_total",
			Help:      "Playback controller state transitions.",
		}, []string{"from", "to"}),
		SpeakLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "speak_latency_ms",
			Help:      "Latency from question submission to audible speech in milliseconds.",
			Buckets:   []float64{200, 400, 700, 1000, 1500, 2500, 4000, 7000},
		}),
		stageWindow: newPipelineStageWindow(256),
	}
}

func (m *Metrics) ObserveSpeakLatency(d time.Duration) {
	m.SpeakLatency.Observe(float64(d.Milliseconds()))
}

// ObserveStage records one pipeline stage duration into the rolling window
// served by the perf endpoint.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageWindow.Observe(stage, float64(d.Microseconds())/1000)
}

// ObserveIndicator counts a named pipeline event in the rolling window.
func (m *Metrics) ObserveIndicator(name string) {
	if m == nil {
		return
	}
	m.stageWindow.ObserveIndicator(name)
}

// SnapshotStages reports rolling-window stage percentiles.
func (m *Metrics) SnapshotStages() StageSnapshot {
	return m.stageWindow.Snapshot()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
