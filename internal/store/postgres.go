package store

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"

    _ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres persists solve runs via database/sql over the pgx stdlib
// driver, the same driver registration the teacher uses for its own
// order/route bookkeeping.
type Postgres struct {
    db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
    db, err := sql.Open("pgx", dsn)
    if err != nil {
        return nil, err
    }
    if err := db.Ping(); err != nil {
        return nil, err
    }
    return &Postgres{db: db}, nil
}

func (p *Postgres) CreateRun(ctx context.Context, run SolveRun) error {
    params, err := json.Marshal(run.Params)
    if err != nil {
        return fmt.Errorf("store: marshal params: %w", err)
    }
    summary, err := json.Marshal(run.Summary)
    if err != nil {
        return fmt.Errorf("store: marshal summary: %w", err)
    }
    _, err = p.db.ExecContext(ctx,
        `INSERT INTO solve_runs (id, fingerprint, params, summary, started_at, finished_at) VALUES ($1,$2,$3,$4,$5,$6)`,
        run.ID, run.Fingerprint, params, summary, run.StartedAt, run.FinishedAt)
    return err
}

func (p *Postgres) GetRun(ctx context.Context, id string) (SolveRun, error) {
    row := p.db.QueryRowContext(ctx,
        `SELECT id, fingerprint, params, summary, started_at, finished_at FROM solve_runs WHERE id=$1`, id)
    run, err := scanRun(row)
    if errors.Is(err, sql.ErrNoRows) {
        return SolveRun{}, ErrNotFound
    }
    return run, err
}

func (p *Postgres) ListRuns(ctx context.Context, limit int) ([]SolveRun, error) {
    if limit <= 0 {
        limit = 100
    }
    rows, err := p.db.QueryContext(ctx,
        `SELECT id, fingerprint, params, summary, started_at, finished_at FROM solve_runs ORDER BY started_at DESC LIMIT $1`, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []SolveRun{}
    for rows.Next() {
        run, err := scanRun(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, run)
    }
    return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so scanRun
// works for GetRun's single-row lookup and ListRuns' iteration alike.
type rowScanner interface {
    Scan(dest ...any) error
}

func scanRun(s rowScanner) (SolveRun, error) {
    var run SolveRun
    var params, summary []byte
    if err := s.Scan(&run.ID, &run.Fingerprint, &params, &summary, &run.StartedAt, &run.FinishedAt); err != nil {
        return SolveRun{}, err
    }
    if err := json.Unmarshal(params, &run.Params); err != nil {
        return SolveRun{}, fmt.Errorf("store: unmarshal params: %w", err)
    }
    if err := json.Unmarshal(summary, &run.Summary); err != nil {
        return SolveRun{}, fmt.Errorf("store: unmarshal summary: %w", err)
    }
    return run, nil
}
