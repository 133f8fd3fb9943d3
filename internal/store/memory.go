package store

import (
    "context"
    "sort"
    "sync"
)

// Memory is the in-memory Store used when no DATABASE_URL is set.
type Memory struct {
    mu   sync.Mutex
    runs map[string]SolveRun
}

func NewMemory() *Memory {
    return &Memory{runs: map[string]SolveRun{}}
}

func (m *Memory) CreateRun(ctx context.Context, run SolveRun) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.runs[run.ID] = run
    return nil
}

func (m *Memory) GetRun(ctx context.Context, id string) (SolveRun, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    run, ok := m.runs[id]
    if !ok {
        return SolveRun{}, ErrNotFound
    }
    return run, nil
}

func (m *Memory) ListRuns(ctx context.Context, limit int) ([]SolveRun, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]SolveRun, 0, len(m.runs))
    for _, r := range m.runs {
        out = append(out, r)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
    if limit > 0 && len(out) > limit {
        out = out[:limit]
    }
    return out, nil
}
