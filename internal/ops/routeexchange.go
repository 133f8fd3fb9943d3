package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

func hasPinnedStep(r *routestate.Route) bool {
	for _, s := range r.Steps {
		if s.Pinned {
			return true
		}
	}
	return false
}

// routeExchange swaps two vehicles' entire job sequences, rebuilding
// each under the other's own Start/End skeleton (§4.6 RouteExchange).
// Routes carrying a forced step skeleton are left alone: those jobs
// are pinned to the vehicle they were forced onto.
type routeExchange struct{}

func (routeExchange) Name() model.OperatorName { return model.RouteExchange }

func (routeExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		if hasPinnedStep(a) {
			continue
		}
		for j, b := range sol.Routes {
			if i >= j || hasPinnedStep(b) {
				continue
			}
			jobsA := jobSteps(a)
			jobsB := jobSteps(b)
			newASteps := buildSkeleton(a.Vehicle, jobsB)
			newBSteps := buildSkeleton(b.Vehicle, jobsA)

			feasA, deltaA := a.TrialFull(newASteps)
			if !feasA {
				continue
			}
			feasB, deltaB := b.TrialFull(newBSteps)
			if !feasB {
				continue
			}
			delta := deltaA + deltaB
			if delta >= 0 {
				continue
			}
			newACopy, newBCopy := newASteps, newBSteps
			cand := Move{
				Operator: model.RouteExchange, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: 0,
				run: func(sol *routestate.Solution) {
					sol.Routes[i].Replace(0, len(sol.Routes[i].Steps), newACopy)
					sol.Routes[j].Replace(0, len(sol.Routes[j].Steps), newBCopy)
				},
			}
			if better(cand, best, have) {
				best, have = cand, true
			}
		}
	}
	return best, have
}
