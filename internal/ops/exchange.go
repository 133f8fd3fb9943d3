package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// unassignedExchange swaps one assigned Single step for an unassigned
// task, when the swap is both feasible and cheaper (§4.6
// UnassignedExchange).
type unassignedExchange struct{}

func (unassignedExchange) Name() model.OperatorName { return model.UnassignedExchange }

func (unassignedExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, p := range singleJobPositions(r) {
			for unassignedID := range sol.Unassigned {
				t := ctx.Tasks[unassignedID]
				if !t.IsSingle() {
					continue
				}
				segment := []routestate.Step{{Type: model.StepJob, JobKind: model.Single, TaskID: unassignedID}}
				removedID := r.Steps[p].TaskID
				feasible, delta := r.TrialMove(p, p+1, p, segment)
				if !feasible || delta >= 0 {
					continue
				}
				cand := Move{
					Operator: model.UnassignedExchange, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
					run: func(sol *routestate.Solution) {
						sol.Routes[i].Replace(p, p+1, segment)
						sol.Unassign(removedID)
						sol.Assign(unassignedID)
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

// crossExchange swaps two contiguous Single segments between different
// routes (§4.6 CrossExchange).
type crossExchange struct{}

func (crossExchange) Name() model.OperatorName { return model.CrossExchange }

func (crossExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		for j, b := range sol.Routes {
			if i >= j {
				continue
			}
			for _, lenA := range orOptSegmentLengths {
				for _, rngA := range contiguousSingleSegments(a, lenA) {
					pa, pa2 := rngA[0], rngA[1]
					segA := cloneSteps(a.Steps[pa:pa2])
					for _, lenB := range orOptSegmentLengths {
						for _, rngB := range contiguousSingleSegments(b, lenB) {
							pb, pb2 := rngB[0], rngB[1]
							segB := cloneSteps(b.Steps[pb:pb2])

							feasA, deltaA := a.TrialMove(pa, pa2, pa, segB)
							if !feasA {
								continue
							}
							feasB, deltaB := b.TrialMove(pb, pb2, pb, segA)
							if !feasB {
								continue
							}
							delta := deltaA + deltaB
							if delta >= 0 {
								continue
							}
							cand := Move{
								Operator: model.CrossExchange, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: pa,
								run: func(sol *routestate.Solution) {
									sol.Routes[i].Replace(pa, pa2, segB)
									sol.Routes[j].Replace(pb, pb2, segA)
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

// intraCrossExchange swaps two non-overlapping Single segments within
// the same route (§4.6 IntraCrossExchange).
type intraCrossExchange struct{}

func (intraCrossExchange) Name() model.OperatorName { return model.IntraCrossExchange }

func (intraCrossExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, lenA := range orOptSegmentLengths {
			for _, rngA := range contiguousSingleSegments(r, lenA) {
				pa, pa2 := rngA[0], rngA[1]
				for _, lenB := range orOptSegmentLengths {
					for _, rngB := range contiguousSingleSegments(r, lenB) {
						pb, pb2 := rngB[0], rngB[1]
						if pb < pa2 {
							continue // only consider each unordered pair once, non-overlapping
						}
						segA := cloneSteps(r.Steps[pa:pa2])
						segB := cloneSteps(r.Steps[pb:pb2])

						withoutA := append(append([]routestate.Step{}, r.Steps[:pa]...), r.Steps[pa2:]...)
						shiftedPb := pb - (pa2 - pa)
						shiftedPb2 := pb2 - (pa2 - pa)
						withoutBoth := append(append([]routestate.Step{}, withoutA[:shiftedPb]...), withoutA[shiftedPb2:]...)

						merged := append(append([]routestate.Step{}, withoutBoth[:pa]...), segB...)
						merged = append(merged, withoutBoth[pa:shiftedPb]...)
						merged = append(merged, segA...)
						merged = append(merged, withoutBoth[shiftedPb:]...)

						feasible, delta := r.TrialFull(merged)
						if !feasible || delta >= 0 {
							continue
						}
						mergedCopy := merged
						cand := Move{
							Operator: model.IntraCrossExchange, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: pa,
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
		}
	}
	return best, have
}

// mixedExchange swaps one Single step on one route with a short
// contiguous segment on another (§4.6 MixedExchange).
type mixedExchange struct{}

func (mixedExchange) Name() model.OperatorName { return model.MixedExchange }

func (mixedExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, a := range sol.Routes {
		for _, p := range singleJobPositions(a) {
			single := cloneSteps(a.Steps[p : p+1])
			for j, b := range sol.Routes {
				if i == j {
					continue
				}
				for _, length := range orOptSegmentLengths {
					for _, rng := range contiguousSingleSegments(b, length) {
						q, q2 := rng[0], rng[1]
						seg := cloneSteps(b.Steps[q:q2])

						feasA, deltaA := a.TrialMove(p, p+1, p, seg)
						if !feasA {
							continue
						}
						feasB, deltaB := b.TrialMove(q, q2, q, single)
						if !feasB {
							continue
						}
						delta := deltaA + deltaB
						if delta >= 0 {
							continue
						}
						cand := Move{
							Operator: model.MixedExchange, Delta: delta, RouteID: a.Vehicle.ID, StepIdx: p,
							run: func(sol *routestate.Solution) {
								sol.Routes[i].Replace(p, p+1, seg)
								sol.Routes[j].Replace(q, q2, single)
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

// intraMixedExchange swaps a single step with a disjoint short segment
// on the same route (§4.6 IntraMixedExchange).
type intraMixedExchange struct{}

func (intraMixedExchange) Name() model.OperatorName { return model.IntraMixedExchange }

func (intraMixedExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, p := range singleJobPositions(r) {
			for _, length := range orOptSegmentLengths {
				for _, rng := range contiguousSingleSegments(r, length) {
					q, q2 := rng[0], rng[1]
					if p >= q && p < q2 {
						continue
					}
					single := cloneSteps(r.Steps[p : p+1])
					seg := cloneSteps(r.Steps[q:q2])

					var merged []routestate.Step
					if p < q {
						merged = append(merged, r.Steps[:p]...)
						merged = append(merged, seg...)
						merged = append(merged, r.Steps[p+1:q]...)
						merged = append(merged, single...)
						merged = append(merged, r.Steps[q2:]...)
					} else {
						merged = append(merged, r.Steps[:q]...)
						merged = append(merged, single...)
						merged = append(merged, r.Steps[q2:p]...)
						merged = append(merged, seg...)
						merged = append(merged, r.Steps[p+1:]...)
					}

					feasible, delta := r.TrialFull(merged)
					if !feasible || delta >= 0 {
						continue
					}
					mergedCopy := merged
					lo := p
					if q < p {
						lo = q
					}
					cand := Move{
						Operator: model.IntraMixedExchange, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: lo,
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
	}
	return best, have
}

// intraExchange swaps two Single steps within one route (§4.6
// IntraExchange).
type intraExchange struct{}

func (intraExchange) Name() model.OperatorName { return model.IntraExchange }

func (intraExchange) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		positions := singleJobPositions(r)
		for ai := 0; ai < len(positions); ai++ {
			for bi := ai + 1; bi < len(positions); bi++ {
				p, q := positions[ai], positions[bi]
				merged := cloneSteps(r.Steps)
				merged[p], merged[q] = merged[q], merged[p]

				feasible, delta := r.TrialFull(merged)
				if !feasible || delta >= 0 {
					continue
				}
				mergedCopy := merged
				cand := Move{
					Operator: model.IntraExchange, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
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

// priorityReplace evicts a low-priority assigned Single task in favor
// of a higher-priority unassigned one occupying the same slot (§4.6
// PriorityReplace).
type priorityReplace struct{}

func (priorityReplace) Name() model.OperatorName { return model.PriorityReplace }

func (priorityReplace) BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool) {
	var best Move
	have := false
	for i, r := range sol.Routes {
		for _, p := range singleJobPositions(r) {
			assignedID := r.Steps[p].TaskID
			assignedPriority := ctx.Tasks[assignedID].Priority
			for unassignedID := range sol.Unassigned {
				t := ctx.Tasks[unassignedID]
				if !t.IsSingle() || t.Priority <= assignedPriority {
					continue
				}
				segment := []routestate.Step{{Type: model.StepJob, JobKind: model.Single, TaskID: unassignedID}}
				feasible, delta := r.TrialMove(p, p+1, p, segment)
				if !feasible {
					continue
				}
				cand := Move{
					Operator: model.PriorityReplace, Delta: delta, RouteID: r.Vehicle.ID, StepIdx: p,
					run: func(sol *routestate.Solution) {
						sol.Routes[i].Replace(p, p+1, segment)
						sol.Unassign(assignedID)
						sol.Assign(unassignedID)
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
