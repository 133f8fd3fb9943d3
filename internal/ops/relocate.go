package ops

import (
	"github.com/fleetroute/vrpsolver/internal/eval"
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// relocate moves one Single job step to a different position on a
// different vehicle's route (§4.6 Relocate).
type relocate struct{}

func (relocate) Name() model.OperatorName { return model.Relocate }

func (relocate) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, from := range sol.Routes {
		for _, p := range singleJobPositions(from) {
			segment := []routestate.Step{from.Steps[p]}
			for j, to := range sol.Routes {
				if i == j {
					continue
				}
				for _, q := range to.InsertablePositions() {
					res := eval.Evaluate(eval.Proposal{From: from, RemoveFrom: p, RemoveTo: p + 1, To: to, InsertAt: q, Segment: segment})
					if !res.Feasible || res.Delta >= 0 {
						continue
					}
					cand := Move{
						Operator: model.Relocate, Delta: res.Delta, RouteID: from.Vehicle.ID, StepIdx: p,
						run: func(sol *routestate.Solution) {
							sol.Routes[i].Replace(p, p+1, nil)
							sol.Routes[j].Replace(q, q, segment)
						},
					}
					if better(cand, best, have) {
						best, have = cand, true
					}
				}
			}
		}
	}
	return best, have
}

// intraRelocate is Relocate restricted to moving a step within its own
// route (§4.6 IntraRelocate).
type intraRelocate struct{}

func (intraRelocate) Name() model.OperatorName { return model.IntraRelocate }

func (intraRelocate) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, p := range singleJobPositions(r) {
			segment := []routestate.Step{r.Steps[p]}
			for _, q := range r.InsertablePositions() {
				if q == p || q == p+1 {
					continue // no-op move
				}
				feasible, delta := r.TrialMove(p, p+1, q, segment)
				if !feasible || delta >= 0 {
					continue
				}
				cand := Move{
					Operator: model.IntraRelocate, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
					run: func(sol *routestate.Solution) {
						applyTrialMove(sol.Routes[i], p, p+1, q, segment)
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
