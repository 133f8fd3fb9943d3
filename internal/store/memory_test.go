package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCreateAndGetRoundTrips(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	run := SolveRun{ID: "run-1", Fingerprint: "fp-1", StartedAt: time.Now()}

	if err := m.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	got, err := m.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Fingerprint != "fp-1" {
		t.Fatalf("expected fp-1, got %q", got.Fingerprint)
	}
}

func TestMemoryGetRunMissingIDReturnsErrNotFound(t *testing.T) {
	m := NewMemory()
	if _, err := m.GetRun(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryListRunsOrdersNewestFirstAndHonorsLimit(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		_ = m.CreateRun(ctx, SolveRun{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	out, err := m.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected limit=2 to cap results, got %d", len(out))
	}
	if out[0].ID != "c" || out[1].ID != "b" {
		t.Fatalf("expected newest-first order, got %v, %v", out[0].ID, out[1].ID)
	}
}
