package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// dynamicCandidate is one (unit, vehicle, position) option considered
// during a Dynamic iteration.
type dynamicCandidate struct {
	unit      Unit
	vehicle   int
	pos       int
	cost      model.Cost
	opened    bool
	orderRank int
}

// RunDynamic builds a seed Solution State by repeatedly picking the
// single globally cheapest (unit, vehicle, position) across every
// vehicle at once, rather than filling one vehicle to exhaustion first
// (§4.5 Dynamic). A vehicle is "opened on demand": every route exists
// from the start (routestate.NewSolution already allocates one per
// vehicle), but a vehicle with no job yet is only preferred over an
// already-busy one when it is strictly cheaper — SORT still governs the
// order in which otherwise-tied vehicles get their first job.
func RunDynamic(ctx *routestate.Context, in *model.Input, params model.HeuristicParameters) *routestate.Solution {
	sol := routestate.NewSolution(ctx, in)
	remaining := BuildUnits(in)
	order := vehicleOrder(in, params.Sort)
	rankInOrder := make(map[int]int, len(order))
	for rank, vIdx := range order {
		rankInOrder[vIdx] = rank
	}

	for len(remaining) > 0 {
		chosen, ok := bestGlobalCandidate(ctx, sol, order, rankInOrder, remaining)
		if !ok {
			break
		}
		route := sol.Routes[chosen.vehicle]
		route.Replace(chosen.pos, chosen.pos, buildSegment(ctx, chosen.unit))
		assignUnit(sol, chosen.unit)
		remaining = removeUnit(remaining, chosen.unit.PrimaryID())
	}

	return sol
}

func bestGlobalCandidate(ctx *routestate.Context, sol *routestate.Solution, order []int, rankInOrder map[int]int, remaining []Unit) (dynamicCandidate, bool) {
	var (
		chosen dynamicCandidate
		found  bool
	)
	for _, vIdx := range order {
		route := sol.Routes[vIdx]
		opened := route.TaskCount() > 0
		for _, u := range remaining {
			rank := rankOnRoute(ctx, route, u)
			if !rank.feasible() {
				continue
			}
			cand := dynamicCandidate{unit: u, vehicle: vIdx, pos: rank.bestPos, cost: rank.bestCost, opened: opened, orderRank: rankInOrder[vIdx]}
			if !found || candidateBetter(ctx.Tasks, cand, chosen) {
				chosen, found = cand, true
			}
		}
	}
	return chosen, found
}

func candidateBetter(byID map[uint64]*model.Task, a, b dynamicCandidate) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.opened != b.opened {
		return a.opened
	}
	if a.orderRank != b.orderRank {
		return a.orderRank < b.orderRank
	}
	return betterTieBreak(byID, a.unit, b.unit)
}
