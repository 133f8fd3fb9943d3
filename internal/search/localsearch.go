package search

import (
	"context"

	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/ops"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// localSearchStats counts what a localOptimum run did, for a caller
// (internal/metrics, via cmd/solve) to fold into counters after the
// fact without internal/search itself depending on the metrics package.
type localSearchStats struct {
	passes       int
	applications map[model.OperatorName]int
}

// ProgressSnapshot is one worker's state at a local-search pass
// boundary, for a caller to relay to internal/progress without this
// package importing it directly.
type ProgressSnapshot struct {
	TupleIndex int
	Pass       int
	BestCost   model.Cost
	Unassigned int
}

// Reporter receives a ProgressSnapshot after every applied move. nil is
// a valid Reporter — callers that don't care about live progress pass
// nil and pay no cost beyond the nil check.
type Reporter func(ProgressSnapshot)

// localOptimum runs the best-improvement loop of §4.7 against sol
// in place: each pass asks every operator in ops.Priority for its best
// move, applies the single cheapest one found across all of them, and
// repeats until no operator reports an improving move or ctx is past
// its deadline. The deadline is polled once per pass, at the top of the
// loop, never inside an operator's own search — §5's "apply() must be
// atomic" requirement is satisfied by every ops.Move.run closure already.
func localOptimum(ctx context.Context, rctx *routestate.Context, sol *routestate.Solution, operators []ops.Operator, tupleIndex int, report Reporter) localSearchStats {
	stats := localSearchStats{applications: make(map[model.OperatorName]int)}
	for {
		if err := ctx.Err(); err != nil {
			return stats
		}
		stats.passes++
		var best ops.Move
		have := false
		for _, op := range operators {
			move, ok := op.BestMove(rctx, sol)
			if !ok {
				continue
			}
			if !have || moveBetter(move, best) {
				best, have = move, true
			}
		}
		if !have {
			return stats
		}
		ops.Apply(sol, best)
		stats.applications[best.Operator]++
		if report != nil {
			report(ProgressSnapshot{
				TupleIndex: tupleIndex, Pass: stats.passes,
				BestCost: sol.TotalCost(0), Unassigned: sol.UnassignedCount(),
			})
		}
	}
}

// moveBetter orders two moves from different operators the same way
// ops.better orders two moves from the same operator: delta first, then
// the operator's own declared priority (its position in ops.Priority),
// then (RouteID, StepIdx). ops.Priority's ordering already reflects
// table order, so ties are broken by scanning operators in that order
// and keeping the first equally-good move found — moveBetter only
// needs to decide strict improvement across operators of differing
// delta, which a plain delta comparison covers; equal-delta ties across
// operators keep whichever was found first, i.e. earlier in Priority.
func moveBetter(candidate, current ops.Move) bool {
	return candidate.Delta < current.Delta
}
