package routestate

import "github.com/fleetroute/vrpsolver/internal/model"

// Solution is the set of all Routes plus the set of unassigned task
// ids (§3 Solution State). The invariant it must always uphold: the
// multiset of task ids across every Route plus Unassigned equals the
// input task multiset exactly once (§8).
type Solution struct {
	ctx        *Context
	Routes     []*Route
	Unassigned map[uint64]struct{}
}

// NewSolution builds an all-unassigned Solution: one empty Route per
// vehicle, every task unassigned.
func NewSolution(ctx *Context, in *model.Input) *Solution {
	s := &Solution{ctx: ctx, Unassigned: make(map[uint64]struct{}, len(in.Tasks))}
	s.Routes = make([]*Route, len(in.Vehicles))
	for i := range in.Vehicles {
		s.Routes[i] = NewRoute(ctx, &in.Vehicles[i])
	}
	for _, t := range in.Tasks {
		s.Unassigned[t.ID] = struct{}{}
	}
	return s
}

// Clone deep-copies every Route and the unassigned set so a worker can
// mutate its own copy independently (§5 Concurrency).
func (s *Solution) Clone() *Solution {
	c := &Solution{ctx: s.ctx, Routes: make([]*Route, len(s.Routes)), Unassigned: make(map[uint64]struct{}, len(s.Unassigned))}
	for i, r := range s.Routes {
		c.Routes[i] = r.Clone()
	}
	for id := range s.Unassigned {
		c.Unassigned[id] = struct{}{}
	}
	return c
}

// Assign moves a task out of Unassigned; callers are responsible for
// having already spliced its Step(s) into a Route.
func (s *Solution) Assign(taskID uint64) {
	delete(s.Unassigned, taskID)
}

// Unassign moves a task's id back into the unassigned set; callers are
// responsible for having already removed its Step(s) from a Route.
func (s *Solution) Unassign(taskID uint64) {
	s.Unassigned[taskID] = struct{}{}
}

// TotalCost sums every Route's cost plus unassignedPenalty per
// unassigned task; a zero penalty gives the routing cost alone.
func (s *Solution) TotalCost(unassignedPenalty model.Cost) model.Cost {
	var total model.Cost
	for _, r := range s.Routes {
		total += r.TotalCost()
	}
	total += model.Cost(len(s.Unassigned)) * unassignedPenalty
	return total
}

func (s *Solution) TotalDuration() model.Duration {
	var total model.Duration
	for _, r := range s.Routes {
		total += r.TotalTravel()
	}
	return total
}

// UnassignedCount reports the size of the unassigned set, used in the
// driver's tie-break order (cost, unassigned, duration, tuple index).
func (s *Solution) UnassignedCount() int {
	return len(s.Unassigned)
}

// CheckInvariant verifies the task-multiset invariant (§8) holds,
// returning the offending detail on failure. Intended for tests and
// for a SolveInternal assertion at the end of a search run.
func (s *Solution) CheckInvariant(in *model.Input) error {
	seen := make(map[uint64]int, len(in.Tasks))
	for _, r := range s.Routes {
		for _, step := range r.Steps {
			if step.Type == model.StepJob {
				seen[step.TaskID]++
			}
		}
	}
	for id := range s.Unassigned {
		seen[id]++
	}
	for _, t := range in.Tasks {
		switch seen[t.ID] {
		case 1:
			continue
		case 0:
			return model.NewSolveInternalError("task missing from every route and the unassigned set")
		default:
			return model.NewSolveInternalError("task appears more than once across routes/unassigned")
		}
	}
	return nil
}
