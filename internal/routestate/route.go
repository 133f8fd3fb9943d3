package routestate

import "github.com/fleetroute/vrpsolver/internal/model"

// Route is the ordered Step sequence for one Vehicle, plus the
// prefix-sum caches spec §4.2 names: FwdLoad, Earliest, Latest, FwdCost,
// FwdDistance, FwdTravel, PDRank. Caches are dense slices indexed by
// step position — no linked structures, per §9 Route caches.
//
// Replace always recomputes every cache with one forward pass and one
// backward pass over the route's own step count (not the whole
// problem); see DESIGN.md for why this trades the literal
// "rebuild-the-affected-suffix-only" wording for a single straight-line
// pass that is easier to get right, while still never touching other
// routes or re-querying already-settled prefixes of unrelated routes.
type Route struct {
	ctx     *Context
	Vehicle *model.Vehicle
	Steps   []Step

	FwdLoad     []model.Amount
	Earliest    []model.Duration
	Latest      []model.Duration
	FwdCost     []model.Cost
	FwdDistance []model.Distance
	FwdTravel   []model.Duration
	PDRank      map[uint64]int

	Feasible  bool
	Violation model.Violation
}

// NewRoute builds an empty Route for v: just its Start/End markers, if
// the vehicle declares them.
func NewRoute(ctx *Context, v *model.Vehicle) *Route {
	r := &Route{ctx: ctx, Vehicle: v}
	if v.Start != nil {
		r.Steps = append(r.Steps, Step{Type: model.StepStart})
	}
	if v.End != nil {
		r.Steps = append(r.Steps, Step{Type: model.StepEnd})
	}
	r.recompute()
	return r
}

// NewRouteFromSteps builds a Route directly from a caller-supplied step
// sequence, used by InitRoutes to project a vehicle's forced skeleton
// (§4.5 InitRoutes) without going through incremental insertion.
func NewRouteFromSteps(ctx *Context, v *model.Vehicle, steps []Step) *Route {
	r := &Route{ctx: ctx, Vehicle: v, Steps: steps}
	r.recompute()
	return r
}

// endIndex returns the index to insert before when appending at the
// tail: before the End marker if present, else len(Steps).
func (r *Route) endIndex() int {
	if n := len(r.Steps); n > 0 && r.Steps[n-1].Type == model.StepEnd {
		return n - 1
	}
	return len(r.Steps)
}

// EndIndex exposes endIndex to other packages (construct, ops, eval)
// that need to append after every already-placed job but before the
// End marker.
func (r *Route) EndIndex() int {
	return r.endIndex()
}

// InsertablePositions lists every index a segment could be spliced at
// without landing before a Start marker or after an End marker: from
// just after Start (if present) through just before End (if present).
func (r *Route) InsertablePositions() []int {
	lo := 0
	if len(r.Steps) > 0 && r.Steps[0].Type == model.StepStart {
		lo = 1
	}
	hi := r.endIndex()
	positions := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		positions = append(positions, p)
	}
	return positions
}

// TaskCount returns the number of job steps currently on the route.
func (r *Route) TaskCount() int {
	n := 0
	for _, s := range r.Steps {
		if s.Type == model.StepJob {
			n++
		}
	}
	return n
}

// TotalCost is the accumulated travel cost plus the vehicle's fixed
// overhead, charged only when the route serves at least one job.
func (r *Route) TotalCost() model.Cost {
	if len(r.FwdCost) == 0 {
		return 0
	}
	cost := r.FwdCost[len(r.FwdCost)-1]
	if r.TaskCount() > 0 {
		cost += model.ScaleFromUserCost(r.Vehicle.Costs.Fixed)
	}
	return cost
}

func (r *Route) TotalDistance() model.Distance {
	if len(r.FwdDistance) == 0 {
		return 0
	}
	return r.FwdDistance[len(r.FwdDistance)-1]
}

func (r *Route) TotalTravel() model.Duration {
	if len(r.FwdTravel) == 0 {
		return 0
	}
	return r.FwdTravel[len(r.FwdTravel)-1]
}

// IsValidAddition reports whether splicing segment at position at
// (without removing anything) yields a feasible route, per §4.2.
func (r *Route) IsValidAddition(segment []Step, at int) bool {
	trial := spliceSteps(r.Steps, at, at, segment)
	eval := evaluate(r.ctx, r.Vehicle, trial)
	return eval.feasible
}

// AdditionCost returns the exact cost delta of splicing segment at
// position at. Callers must have already checked IsValidAddition;
// AdditionCost on an infeasible splice returns model.InfiniteCost.
func (r *Route) AdditionCost(segment []Step, at int) model.Cost {
	trial := spliceSteps(r.Steps, at, at, segment)
	eval := evaluate(r.ctx, r.Vehicle, trial)
	if !eval.feasible {
		return model.InfiniteCost
	}
	return totalCostOf(r.Vehicle, eval) - r.TotalCost()
}

// RemovalCost returns the exact cost delta of removing steps [from,to).
func (r *Route) RemovalCost(from, to int) model.Cost {
	trial := spliceSteps(r.Steps, from, to, nil)
	eval := evaluate(r.ctx, r.Vehicle, trial)
	if !eval.feasible {
		return model.InfiniteCost
	}
	return totalCostOf(r.Vehicle, eval) - r.TotalCost()
}

// TrialMove evaluates, without mutating the Route, removing
// Steps[removeFrom:removeTo) and inserting segment at insertAt — both
// positions given in the Route's current (pre-edit) coordinate frame.
// insertAt may fall before, inside, or after the removed range; this is
// what lets a single Evaluator call judge an intra-route move (e.g.
// IntraRelocate, IntraOrOpt) as one combined edit against one consistent
// base route, rather than two independent splices that would each be
// judged against a base that doesn't reflect the other (§4.3 Evaluator).
func (r *Route) TrialMove(removeFrom, removeTo, insertAt int, segment []Step) (feasible bool, delta model.Cost) {
	withoutRange := make([]Step, 0, len(r.Steps)-(removeTo-removeFrom))
	withoutRange = append(withoutRange, r.Steps[:removeFrom]...)
	withoutRange = append(withoutRange, r.Steps[removeTo:]...)

	at := insertAt
	switch {
	case insertAt >= removeTo:
		at = insertAt - (removeTo - removeFrom)
	case insertAt > removeFrom:
		at = removeFrom
	}

	trial := spliceSteps(withoutRange, at, at, segment)
	eval := evaluate(r.ctx, r.Vehicle, trial)
	if !eval.feasible {
		return false, model.InfiniteCost
	}
	return true, totalCostOf(r.Vehicle, eval) - r.TotalCost()
}

// TrialFull evaluates, without mutating the Route, replacing the
// entire step sequence with steps — the primitive arbitrary
// within-route rearrangements (IntraExchange, IntraCrossExchange,
// IntraMixedExchange) need when the edit doesn't reduce to a single
// contiguous remove-and-insert that TrialMove already covers.
func (r *Route) TrialFull(steps []Step) (feasible bool, delta model.Cost) {
	eval := evaluate(r.ctx, r.Vehicle, steps)
	if !eval.feasible {
		return false, model.InfiniteCost
	}
	return true, totalCostOf(r.Vehicle, eval) - r.TotalCost()
}

// Replace removes Steps[removeFrom:removeTo) and splices insertion in
// their place, then recomputes every cache (§4.2 replace).
func (r *Route) Replace(removeFrom, removeTo int, insertion []Step) {
	r.Steps = spliceSteps(r.Steps, removeFrom, removeTo, insertion)
	r.recompute()
}

func spliceSteps(steps []Step, from, to int, insertion []Step) []Step {
	out := make([]Step, 0, len(steps)-(to-from)+len(insertion))
	out = append(out, steps[:from]...)
	out = append(out, insertion...)
	out = append(out, steps[to:]...)
	return out
}

func (r *Route) recompute() {
	eval := evaluate(r.ctx, r.Vehicle, r.Steps)
	r.FwdLoad = eval.fwdLoad
	r.Earliest = eval.earliest
	r.Latest = eval.latest
	r.FwdCost = eval.fwdCost
	r.FwdDistance = eval.fwdDistance
	r.FwdTravel = eval.fwdTravel
	r.PDRank = eval.pdRank
	r.Feasible = eval.feasible
	r.Violation = eval.violation
}

func totalCostOf(v *model.Vehicle, eval *evaluation) model.Cost {
	if len(eval.fwdCost) == 0 {
		return 0
	}
	cost := eval.fwdCost[len(eval.fwdCost)-1]
	jobs := 0
	for _, s := range eval.steps {
		if s.Type == model.StepJob {
			jobs++
		}
	}
	if jobs > 0 {
		cost += model.ScaleFromUserCost(v.Costs.Fixed)
	}
	return cost
}

// Clone deep-copies the Route so a worker can mutate its own Solution
// State without aliasing another worker's copy (§5 Concurrency).
func (r *Route) Clone() *Route {
	steps := make([]Step, len(r.Steps))
	copy(steps, r.Steps)
	c := &Route{ctx: r.ctx, Vehicle: r.Vehicle, Steps: steps}
	c.recompute()
	return c
}
