package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// bestReinsertion scans every candidate splice point of the edit
// "remove [removeFrom,removeTo), insert segment at q" on r and returns
// the cheapest feasible q, used by SwapStar to search every position
// rather than just the vacated slot.
func bestReinsertion(r *routestate.Route, removeFrom, removeTo int, segment []routestate.Step) (pos int, delta model.Cost, ok bool) {
	best := model.InfiniteCost
	bestPos := -1
	for _, q := range r.InsertablePositions() {
		feasible, d := r.TrialMove(removeFrom, removeTo, q, segment)
		if !feasible || d >= best {
			continue
		}
		best, bestPos = d, q
	}
	if bestPos < 0 {
		return 0, model.InfiniteCost, false
	}
	return bestPos, best, true
}

// swapStar swaps two Single tasks across routes, each reinserted at
// whichever position on its new route is cheapest rather than at the
// slot the other task vacated (§4.6 SwapStar).
type swapStar struct{}

func (swapStar) Name() model.OperatorName { return model.SwapStar }

func (swapStar) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		for _, p := range singleJobPositions(a) {
			uSeg := []routestate.Step{a.Steps[p]}
			for j, b := range sol.Routes {
				if i == j {
					continue
				}
				for _, q := range singleJobPositions(b) {
					vSeg := []routestate.Step{b.Steps[q]}

					posV, deltaA, okA := bestReinsertion(a, p, p+1, vSeg)
					if !okA {
						continue
					}
					posU, deltaB, okB := bestReinsertion(b, q, q+1, uSeg)
					if !okB {
						continue
					}
					delta := deltaA + deltaB
					if delta >= 0 {
						continue
					}
					cand := Move{
						Operator: model.SwapStar, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: p,
						run: func(sol *routestate.Solution) {
							applyTrialMove(sol.Routes[i], p, p+1, posV, vSeg)
							applyTrialMove(sol.Routes[j], q, q+1, posU, uSeg)
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
