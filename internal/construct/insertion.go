package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// candidatePositions lists every index a segment could be spliced at
// without landing before a Start marker or after an End marker.
func candidatePositions(r *routestate.Route) []int {
	return r.InsertablePositions()
}

// buildSegment turns a Unit into the contiguous Step sequence construction
// always inserts as a whole, so a shipment's Pickup precedes its Delivery
// by construction.
func buildSegment(ctx *routestate.Context, u Unit) []routestate.Step {
	steps := make([]routestate.Step, len(u.TaskIDs))
	for i, id := range u.TaskIDs {
		t := ctx.Tasks[id]
		steps[i] = routestate.Step{Type: model.StepJob, JobKind: t.Kind, TaskID: id}
	}
	return steps
}

// insertionRank is one unit's best and second-best feasible insertion
// cost on a single route, used directly by Dynamic's greedy pick and by
// Basic's regret ranking.
type insertionRank struct {
	unit       Unit
	bestPos    int
	bestCost   model.Cost
	secondCost model.Cost // InfiniteCost if no second feasible slot exists
}

func (r insertionRank) feasible() bool { return r.bestCost < model.InfiniteCost }

// regret scores r for Basic's selection rule (§4.5): higher is better.
// A unit with no second-best slot is treated as maximally regretful —
// it may have no other chance once this route closes.
func (r insertionRank) regret(coeff float64) float64 {
	second := r.secondCost
	return coeff*float64(second-r.bestCost) - float64(r.bestCost)
}

// rankOnRoute evaluates every candidate position of unit's segment on
// route and keeps the best two feasible costs.
func rankOnRoute(ctx *routestate.Context, route *routestate.Route, u Unit) insertionRank {
	segment := buildSegment(ctx, u)
	rank := insertionRank{unit: u, bestPos: -1, bestCost: model.InfiniteCost, secondCost: model.InfiniteCost}
	for _, p := range candidatePositions(route) {
		c := route.AdditionCost(segment, p)
		if c >= model.InfiniteCost {
			continue
		}
		switch {
		case c < rank.bestCost:
			rank.secondCost = rank.bestCost
			rank.bestCost = c
			rank.bestPos = p
		case c < rank.secondCost:
			rank.secondCost = c
		}
	}
	return rank
}

// betterTieBreak reports whether candidate a should be preferred over
// the current best b under the construction tie-break order: lower task
// priority loses (so higher priority wins), then higher amount, then
// lower id (§4.5).
func betterTieBreak(byID map[uint64]*model.Task, a, b Unit) bool {
	pa, pb := priority(byID, a), priority(byID, b)
	if pa != pb {
		return pa > pb
	}
	aa, ab := amountSum(byID, a), amountSum(byID, b)
	if aa != ab {
		return aa > ab
	}
	return a.PrimaryID() < b.PrimaryID()
}
