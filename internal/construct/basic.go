package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// RunBasic builds a seed Solution State processing vehicles one at a
// time in SORT order. Each vehicle is seeded by the INIT rule, then
// filled by repeatedly inserting the unassigned unit with the highest
// regret score until no feasible insertion remains on that route (§4.5
// Basic).
func RunBasic(ctx *routestate.Context, in *model.Input, params model.HeuristicParameters) *routestate.Solution {
	sol := routestate.NewSolution(ctx, in)
	remaining := BuildUnits(in)

	for _, vIdx := range vehicleOrder(in, params.Sort) {
		route := sol.Routes[vIdx]
		v := &in.Vehicles[vIdx]

		if route.TaskCount() == 0 && len(remaining) > 0 {
			seed, ok := selectInitial(ctx, v, params.Init, remaining)
			if ok {
				rank := rankOnRoute(ctx, route, seed)
				if rank.feasible() {
					route.Replace(rank.bestPos, rank.bestPos, buildSegment(ctx, seed))
					assignUnit(sol, seed)
					remaining = removeUnit(remaining, seed.PrimaryID())
				}
			}
		}

		for {
			chosen, rank, found := bestByRegret(ctx, route, remaining, params.RegretCoeff)
			if !found {
				break
			}
			route.Replace(rank.bestPos, rank.bestPos, buildSegment(ctx, chosen))
			assignUnit(sol, chosen)
			remaining = removeUnit(remaining, chosen.PrimaryID())
		}
	}

	return sol
}

// bestByRegret finds, among remaining units, the one this route can
// feasibly insert with the highest regret score, per §4.5's formula.
// Ties are broken by the construction tie-break order (§4.5).
func bestByRegret(ctx *routestate.Context, route *routestate.Route, remaining []Unit, regretCoeff float64) (Unit, insertionRank, bool) {
	var (
		chosen    Unit
		chosenOK  bool
		chosenRnk insertionRank
		bestScore float64
	)
	for _, u := range remaining {
		rank := rankOnRoute(ctx, route, u)
		if !rank.feasible() {
			continue
		}
		score := rank.regret(regretCoeff)
		switch {
		case !chosenOK:
			chosen, chosenRnk, chosenOK, bestScore = u, rank, true, score
		case score > bestScore:
			chosen, chosenRnk, bestScore = u, rank, score
		case score == bestScore && betterTieBreak(ctx.Tasks, u, chosen):
			chosen, chosenRnk = u, rank
		}
	}
	return chosen, chosenRnk, chosenOK
}

func assignUnit(sol *routestate.Solution, u Unit) {
	for _, id := range u.TaskIDs {
		sol.Assign(id)
	}
}
