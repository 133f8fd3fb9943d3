//go:build postgres_integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fleetroute/vrpsolver/internal/model"
)

func TestPostgresRoundTripsARun(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
	p, err := NewPostgres(dsn)
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	ctx := context.Background()
	run := SolveRun{
		ID:          "it-run-1",
		Fingerprint: "fp-it",
		Params:      model.HeuristicParameters{Heuristic: model.HeuristicBasic, RegretCoeff: 1},
		Summary:     Summary{TotalCost: 100, UnassignedTasks: 0, TotalDuration: 3600},
		StartedAt:   time.Now().UTC(),
		FinishedAt:  time.Now().UTC(),
	}
	if err := p.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	got, err := p.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Summary.TotalCost != run.Summary.TotalCost {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if _, err := p.ListRuns(ctx, 10); err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
}
