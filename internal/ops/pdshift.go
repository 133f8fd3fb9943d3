package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// shipmentRange locates a pickup at position p and its delivery
// sibling elsewhere on the same route, returning the smallest
// contiguous range [lo,hi) spanning both. Construction always inserts
// a shipment as an adjacent pair and only PDShift ever relocates one,
// so in practice lo,hi is always p,p+2 — but the sibling scan doesn't
// assume it.
func shipmentRange(ctx *routestate.Context, r *routestate.Route, p int) (lo, hi int, ok bool) {
	pickup := r.Steps[p]
	sib := ctx.Tasks[pickup.TaskID].Shipment.SiblingID
	for k, s := range r.Steps {
		if s.Type == model.StepJob && s.TaskID == sib {
			if k < p {
				return k, p + 1, true
			}
			return p, k + 1, true
		}
	}
	return 0, 0, false
}

// pdShift relocates a pickup-delivery pair, as one contiguous segment
// preserving pickup-before-delivery order, onto a different route
// (§4.6 PDShift).
type pdShift struct{}

func (pdShift) Name() model.OperatorName { return model.PDShift }

func (pdShift) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, from := range sol.Routes {
		for _, p := range pickupPositions(from) {
			lo, hi, ok := shipmentRange(ctx, from, p)
			if !ok {
				continue
			}
			segment := cloneSteps(from.Steps[lo:hi])
			for j, to := range sol.Routes {
				if i == j {
					continue
				}
				for _, q := range to.InsertablePositions() {
					feasible, delta := singleRouteShift(from, lo, hi, to, q, segment)
					if !feasible || delta >= model.InfiniteCost || delta >= 0 {
						continue
					}
					cand := Move{
						Operator: model.PDShift, Delta: delta, RouteID: from.Vehicle.ID, StepIdx: p,
						run: func(sol *routestate.Solution) {
							sol.Routes[i].Replace(lo, hi, nil)
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

func singleRouteShift(from *routestate.Route, lo, hi int, to *routestate.Route, q int, segment []routestate.Step) (bool, model.Cost) {
	removeDelta := from.RemovalCost(lo, hi)
	if removeDelta >= model.InfiniteCost {
		return false, model.InfiniteCost
	}
	addDelta := to.AdditionCost(segment, q)
	if addDelta >= model.InfiniteCost {
		return false, model.InfiniteCost
	}
	return true, removeDelta + addDelta
}
