package engine

import (
	"context"
	"testing"
)

func runSession(t *testing.T, w *Workshop, subject, category string, seconds int) {
	t.Helper()
	if err := w.Timer.Start(subject, category); err != nil {
		t.Fatalf("Start(%q): %v", subject, err)
	}
	for i := 0; i < seconds; i++ {
		w.Timer.Tick()
	}
	w.Timer.Pause()
	if s := w.Stop(context.Background()); s == nil {
		t.Fatalf("Stop(%q) returned nil", subject)
	}
}

func TestWorkshopMirrorsSessionsToDrafts(t *testing.T) {
	store := newFakeGateway()
	w := NewWorkshop(NewService(store), "local")

	runSession(t, w, "algorithms", "study", 30*60)
	runSession(t, w, "evening run", "exercise", 20*60)

	if w.Count() != 2 || w.TotalMinutes() != 50 {
		t.Fatalf("count=%d total=%d, want 2/50", w.Count(), w.TotalMinutes())
	}
	if len(store.drafts) != 2 {
		t.Fatalf("drafts=%d, want 2", len(store.drafts))
	}
	if store.drafts[0].Subject != "algorithms" {
		t.Fatalf("draft order broken: %q", store.drafts[0].Subject)
	}
}

func TestWorkshopRestore(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	svc := NewService(store)

	first := NewWorkshop(svc, "local")
	runSession(t, first, "algorithms", "study", 30*60)

	// A new process picks the work period back up from the drafts.
	second := NewWorkshop(svc, "local")
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if second.Count() != 1 || second.TotalMinutes() != 30 {
		t.Fatalf("restored count=%d total=%d, want 1/30", second.Count(), second.TotalMinutes())
	}
}

func TestWorkshopPublishClearsPeriod(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	w := NewWorkshop(NewService(store), "local")

	runSession(t, w, "algorithms", "study", 30*60)

	res, err := w.Publish(ctx)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.Receipt.TotalMinutes != 30 {
		t.Fatalf("receipt total=%d, want 30", res.Receipt.TotalMinutes)
	}
	if w.Count() != 0 {
		t.Fatalf("accumulator not cleared after publish")
	}
	if len(store.drafts) != 0 {
		t.Fatalf("drafts not cleared after publish")
	}
}

func TestWorkshopPublishKeepsSessionsFinalizedMeanwhile(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	w := NewWorkshop(NewService(store), "local")

	runSession(t, w, "first", "study", 30*60)

	// A second session lands while the receipt write is still settling.
	store.onCreateReceipt = func() {
		store.onCreateReceipt = nil
		runSession(t, w, "second", "exercise", 20*60)
	}

	res, err := w.Publish(ctx)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(res.Receipt.Sessions) != 1 || res.Receipt.Sessions[0].Subject != "first" {
		t.Fatalf("receipt sessions=%+v, want only the snapshotted first", res.Receipt.Sessions)
	}
	if w.Count() != 1 {
		t.Fatalf("accumulator=%d after publish, want the in-flight session kept", w.Count())
	}
	if w.Sessions()[0].Subject != "second" {
		t.Fatalf("kept session=%q, want second", w.Sessions()[0].Subject)
	}
	if len(store.drafts) != 1 || store.drafts[0].Subject != "second" {
		t.Fatalf("drafts=%+v, want only the in-flight session's mirror", store.drafts)
	}

	// The next publish picks it up.
	res, err = w.Publish(ctx)
	if err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	if len(res.Receipt.Sessions) != 1 || res.Receipt.Sessions[0].Subject != "second" {
		t.Fatalf("second receipt=%+v", res.Receipt.Sessions)
	}
	if w.Count() != 0 || len(store.drafts) != 0 {
		t.Fatalf("period not empty after both publishes: acc=%d drafts=%d", w.Count(), len(store.drafts))
	}
}

func TestWorkshopPublishFailureKeepsPeriod(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	store.failCreateReceipt = true
	w := NewWorkshop(NewService(store), "local")

	runSession(t, w, "algorithms", "study", 30*60)

	if _, err := w.Publish(ctx); err == nil {
		t.Fatalf("expected publish failure")
	}
	if w.Count() != 1 {
		t.Fatalf("failed publish drained the accumulator")
	}
	if len(store.drafts) != 1 {
		t.Fatalf("failed publish cleared the drafts")
	}

	// Retry succeeds once the store recovers.
	store.failCreateReceipt = false
	if _, err := w.Publish(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if w.Count() != 0 || len(store.drafts) != 0 {
		t.Fatalf("retry did not clear the period")
	}
}

func TestWorkshopReset(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	w := NewWorkshop(NewService(store), "local")

	runSession(t, w, "algorithms", "study", 30*60)
	if err := w.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if w.Count() != 0 || len(store.drafts) != 0 {
		t.Fatalf("reset left sessions behind")
	}
	if len(store.receipts) != 0 {
		t.Fatalf("reset published something")
	}
}
