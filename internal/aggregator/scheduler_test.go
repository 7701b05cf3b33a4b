package aggregator

import (
	"context"
	"testing"
	"time"
)

func TestScheduler_TriggerNow(t *testing.T) {
	store := newFakeStore()
	src := &stubSource{id: "remotive", result: ScrapeResult{Jobs: []NormalizedListing{testJob("1", "Dev")}}}
	e := NewEngine(store, []Source{src}, 48*time.Hour, discardLogger())

	s := NewScheduler(e, 6, discardLogger())

	sums := s.TriggerNow(context.Background())
	if len(sums) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(sums))
	}
	if sums[0].JobsCreated != 1 {
		t.Fatalf("expected created=1, got %+v", sums[0])
	}
}

func TestScheduler_StartStop(t *testing.T) {
	e := NewEngine(newFakeStore(), nil, 48*time.Hour, discardLogger())
	s := NewScheduler(e, 6, discardLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Start again replaces the registration instead of stacking entries.
	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}

	s.Stop()
	s.Stop()
}
