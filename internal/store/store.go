package store

import (
    "context"
    "errors"
    "time"

    "github.com/fleetroute/vrpsolver/internal/model"
)

// SolveRun is one persisted search-driver invocation: the input it
// solved (identified by Fingerprint, not stored in full), the
// parameters the winning worker used, and the Summary it produced.
type SolveRun struct {
    ID          string
    Fingerprint string
    Params      model.HeuristicParameters
    Summary     Summary
    StartedAt   time.Time
    FinishedAt  time.Time
}

// Summary is the persisted shape of a finished run's outcome, mirroring
// the result object cmd/solve writes to its output file.
type Summary struct {
    TotalCost       model.Cost
    UnassignedTasks int
    TotalDuration   model.Duration
    Timeout         bool
}

// Store is the persistence interface for solver run history.
type Store interface {
    CreateRun(ctx context.Context, run SolveRun) error
    GetRun(ctx context.Context, id string) (SolveRun, error)
    ListRuns(ctx context.Context, limit int) ([]SolveRun, error)
}

var ErrNotFound = errors.New("not found")

// Open selects Postgres when dsn is non-empty, matching
// api.NewServer's "use DATABASE_URL if set, else in-memory" rule, and
// falls back to Memory otherwise.
func Open(dsn string) (Store, error) {
    if dsn == "" {
        return NewMemory(), nil
    }
    return NewPostgres(dsn)
}
