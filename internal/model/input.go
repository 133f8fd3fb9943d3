package model

// Matrices bundles the three optional matrices for one routing profile.
type Matrices struct {
	Durations [][]UserDuration
	Distances [][]UserDistance
	Costs     [][]UserCost
}

// Input is the fully-ingested, immutable problem: tasks, vehicles and
// per-profile matrices. Nothing in the solver ever mutates it after
// ingestion; workers share it read-only.
type Input struct {
	Tasks      []Task
	Vehicles   []Vehicle
	AmountSize int
	Matrices   map[string]Matrices
	Geometry   bool
}

// TaskByID builds a lookup map; callers that need repeated lookups
// should cache this rather than scanning Tasks.
func (in *Input) TaskByID() map[uint64]*Task {
	out := make(map[uint64]*Task, len(in.Tasks))
	for i := range in.Tasks {
		out[in.Tasks[i].ID] = &in.Tasks[i]
	}
	return out
}
