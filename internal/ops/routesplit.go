package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// routeSplit breaks one route into two at a job boundary, handing the
// tail to an otherwise-idle vehicle (§4.6 RouteSplit). It rarely pays
// for itself in isolation — the point is to let a route that is
// merely feasible-by-a-hair shed load onto spare fleet capacity.
type routeSplit struct{}

func (routeSplit) Name() model.OperatorName { return model.RouteSplit }

func (routeSplit) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		if hasPinnedStep(r) || r.TaskCount() < 2 {
			continue
		}
		for k, spare := range sol.Routes {
			if k == i || spare.TaskCount() != 0 || hasPinnedStep(spare) {
				continue
			}
			for _, p := range tailCutPoints(ctx, r) {
				if p == r.EndIndex() {
					continue // nothing to hand off
				}
				head := buildSkeleton(r.Vehicle, jobStepsOf(r.Steps[:p]))
				tail := buildSkeleton(spare.Vehicle, jobStepsOf(r.Steps[p:]))

				feasHead, deltaHead := r.TrialFull(head)
				if !feasHead {
					continue
				}
				feasTail, deltaTail := spare.TrialFull(tail)
				if !feasTail {
					continue
				}
				delta := deltaHead + deltaTail
				if delta >= 0 {
					continue
				}
				headCopy, tailCopy := head, tail
				cand := Move{
					Operator: model.RouteSplit, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
					run: func(sol *routestate.Solution) {
						sol.Routes[i].Replace(0, len(sol.Routes[i].Steps), headCopy)
						sol.Routes[k].Replace(0, len(sol.Routes[k].Steps), tailCopy)
					},
				}
				if better(cand, best, have) {
					best, have = cand, true
				}
			}
		}
	}
	return best, have
}

func jobStepsOf(steps []routestate.Step) []routestate.Step {
	out := make([]routestate.Step, 0, len(steps))
	for _, s := range steps {
		if s.Type == model.StepJob {
			out = append(out, s)
		}
	}
	return out
}
