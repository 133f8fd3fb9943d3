package ops

import (
	"github.com/fleetroute/vrpsolver/internal/eval"
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// orOptSegmentLengths are the segment sizes OrOpt and IntraOrOpt try,
// per §4.6's "short chain of consecutive tasks" wording.
var orOptSegmentLengths = []int{2, 3}

// orOpt relocates a short contiguous chain of Single job steps onto a
// different route, trying both orientations (§4.6 OrOpt).
type orOpt struct{}

func (orOpt) Name() model.OperatorName { return model.OrOpt }

func (orOpt) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, from := range sol.Routes {
		for _, length := range orOptSegmentLengths {
			for _, rng := range contiguousSingleSegments(from, length) {
				p, p2 := rng[0], rng[1]
				fwd := cloneSteps(from.Steps[p:p2])
				for j, to := range sol.Routes {
					if i == j {
						continue
					}
					for _, q := range to.InsertablePositions() {
						for _, reversed := range []bool{false, true} {
							res := eval.Evaluate(eval.Proposal{
								From: from, RemoveFrom: p, RemoveTo: p2,
								To: to, InsertAt: q, Segment: fwd, Reversed: reversed,
							})
							if !res.Feasible || res.Delta >= 0 {
								continue
							}
							segment := fwd
							if reversed {
								segment = reverseSteps(fwd)
							}
							cand := Move{
								Operator: model.OrOpt, Delta: res.Delta, RouteID: from.Vehicle.ID, StepIdx: p,
								run: func(sol *routestate.Solution) {
									sol.Routes[i].Replace(p, p2, nil)
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
		}
	}
	return best, have
}

// intraOrOpt is OrOpt restricted to relocating the chain within its own
// route (§4.6 IntraOrOpt).
type intraOrOpt struct{}

func (intraOrOpt) Name() model.OperatorName { return model.IntraOrOpt }

func (intraOrOpt) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, length := range orOptSegmentLengths {
			for _, rng := range contiguousSingleSegments(r, length) {
				p, p2 := rng[0], rng[1]
				fwd := cloneSteps(r.Steps[p:p2])
				for _, q := range r.InsertablePositions() {
					if q >= p && q <= p2 {
						continue // overlaps the removed range: no-op
					}
					for _, reversed := range []bool{false, true} {
						segment := fwd
						if reversed {
							segment = reverseSteps(fwd)
						}
						feasible, delta := r.TrialMove(p, p2, q, segment)
						if !feasible || delta >= 0 {
							continue
						}
						cand := Move{
							Operator: model.IntraOrOpt, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
							run: func(sol *routestate.Solution) {
								applyTrialMove(sol.Routes[i], p, p2, q, segment)
							},
						}
						if better(cand, best, have) {
							best, have = cand, true
						}
					}
				}
			}
		}
	}
	return best, have
}
