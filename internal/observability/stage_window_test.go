package observability

import "testing"

func TestPipelineStageWindowSnapshot(t *testing.T) {
	w := newPipelineStageWindow(8)
	w.Observe("answer_fetch", 500)
	w.Observe("answer_fetch", 700)
	w.Observe("answer_fetch", 900)
	w.ObserveIndicator("answer_fallback")
	w.ObserveIndicator("answer_fallback")

	snap := w.Snapshot()
	if snap.WindowSize != 8 {
		t.Fatalf("WindowSize = %d, want 8", snap.WindowSize)
	}
	if len(snap.Stages) != 1 {
		t.Fatalf("len(Stages) = %d, want 1", len(snap.Stages))
	}
	s := snap.Stages[0]
	if s.Stage != "answer_fetch" {
		t.Fatalf("Stage = %q, want %q", s.Stage, "answer_fetch")
	}
	if s.Samples != 3 {
		t.Fatalf("Samples = %d, want 3", s.Samples)
	}
	if s.LastMS != 900 {
		t.Fatalf("LastMS = %.2f, want 900", s.LastMS)
	}
	if s.P50MS != 700 {
		t.Fatalf("P50MS = %.2f, want 700", s.P50MS)
	}
	if s.P95MS <= 700 || s.P95MS > 900 {
		t.Fatalf("P95MS = %.2f, want (700,900]", s.P95MS)
	}
	if s.TargetP95MS != 2500 {
		t.Fatalf("TargetP95MS = %.2f, want 2500", s.TargetP95MS)
	}
	if len(snap.Indicators) != 1 || snap.Indicators[0].Count != 2 {
		t.Fatalf("Indicators = %+v", snap.Indicators)
	}
}

func TestPipelineStageWindowWraps(t *testing.T) {
	w := newPipelineStageWindow(4)
	for i := 1; i <= 6; i++ {
		w.Observe("format", float64(i))
	}
	snap := w.Snapshot()
	if snap.Stages[0].Samples != 4 {
		t.Fatalf("Samples = %d, want 4 after wrap", snap.Stages[0].Samples)
	}
	if snap.Stages[0].LastMS != 6 {
		t.Fatalf("LastMS = %.2f, want 6", snap.Stages[0].LastMS)
	}
}
