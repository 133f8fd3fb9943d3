package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// tailCutPoints lists the positions a 2-opt cut may land at: strictly
// after any Start marker, and only where every step from there on is
// an unpinned job or break (never mid-shipment — a cut separating a
// pickup from its delivery would desync precedence).
func tailCutPoints(ctx *routestate.Context, r *routestate.Route) []int {
	var out []int
	for _, p := range r.InsertablePositions() {
		if p == 0 {
			continue
		}
		if cutSplitsShipment(ctx, r, p) {
			continue
		}
		pinnedTail := false
		for _, s := range r.Steps[p:] {
			if s.Pinned && (s.Type == model.StepJob || s.Type == model.StepBreak) {
				pinnedTail = true
				break
			}
		}
		if pinnedTail {
			continue
		}
		out = append(out, p)
	}
	return out
}

func cutSplitsShipment(ctx *routestate.Context, r *routestate.Route, p int) bool {
	if p == 0 || p >= len(r.Steps) {
		return false
	}
	for i := 0; i < p; i++ {
		before := r.Steps[i]
		if before.Type != model.StepJob || before.JobKind != model.Pickup {
			continue
		}
		t := ctx.Tasks[before.TaskID]
		if !t.Shipment.HasSibling {
			continue
		}
		for k := p; k < len(r.Steps); k++ {
			if r.Steps[k].Type == model.StepJob && r.Steps[k].TaskID == t.Shipment.SiblingID {
				return true
			}
		}
	}
	return false
}

// twoOpt swaps the tails of two routes at a chosen cut point each
// (§4.6 TwoOpt).
type twoOpt struct{}

func (twoOpt) Name() model.OperatorName { return model.TwoOpt }

func (twoOpt) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		for j, b := range sol.Routes {
			if i >= j {
				continue
			}
			for _, p := range tailCutPoints(ctx, a) {
				for _, q := range tailCutPoints(ctx, b) {
					newA := append(cloneSteps(a.Steps[:p]), b.Steps[q:]...)
					newB := append(cloneSteps(b.Steps[:q]), a.Steps[p:]...)

					feasA, deltaA := a.TrialFull(newA)
					if !feasA {
						continue
					}
					feasB, deltaB := b.TrialFull(newB)
					if !feasB {
						continue
					}
					delta := deltaA + deltaB
					if delta >= 0 {
						continue
					}
					newACopy, newBCopy := newA, newB
					cand := Move{
						Operator: model.TwoOpt, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: p,
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
		}
	}
	return best, have
}

// intraTwoOpt reverses one internal segment of a single route, the
// classic within-route 2-opt move (§4.6 IntraTwoOpt).
type intraTwoOpt struct{}

func (intraTwoOpt) Name() model.OperatorName { return model.IntraTwoOpt }

func (intraTwoOpt) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		cuts := tailCutPoints(ctx, r)
		for ai := 0; ai < len(cuts); ai++ {
			for bi := ai + 1; bi < len(cuts); bi++ {
				p, q := cuts[ai], cuts[bi]
				if !allSingleOrBreak(r, p, q) {
					continue
				}
				merged := append(cloneSteps(r.Steps[:p]), reverseSteps(r.Steps[p:q])...)
				merged = append(merged, r.Steps[q:]...)

				feasible, delta := r.TrialFull(merged)
				if !feasible || delta >= 0 {
					continue
				}
				mergedCopy := merged
				cand := Move{
					Operator: model.IntraTwoOpt, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
					run: func(sol *routestate.Solution) {
						sol.Routes[i].Replace(0, len(sol.Routes[i].Steps), mergedCopy)
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

// reverseTwoOpt is TwoOpt with one of the two swapped tails reversed
// before reconnection (§4.6 ReverseTwoOpt).
type reverseTwoOpt struct{}

func (reverseTwoOpt) Name() model.OperatorName { return model.ReverseTwoOpt }

func (reverseTwoOpt) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		for j, b := range sol.Routes {
			if i >= j {
				continue
			}
			for _, p := range tailCutPoints(ctx, a) {
				for _, q := range tailCutPoints(ctx, b) {
					if !stepsReversible(b.Steps[q:]) || !stepsReversible(a.Steps[p:]) {
						continue
					}
					newA := append(cloneSteps(a.Steps[:p]), reverseTailKeepEnd(b.Steps[q:])...)
					newB := append(cloneSteps(b.Steps[:q]), reverseTailKeepEnd(a.Steps[p:])...)

					feasA, deltaA := a.TrialFull(newA)
					if !feasA {
						continue
					}
					feasB, deltaB := b.TrialFull(newB)
					if !feasB {
						continue
					}
					delta := deltaA + deltaB
					if delta >= 0 {
						continue
					}
					newACopy, newBCopy := newA, newB
					cand := Move{
						Operator: model.ReverseTwoOpt, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: p,
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
		}
	}
	return best, have
}
