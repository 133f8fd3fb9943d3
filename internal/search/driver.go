// Package search implements the Search Driver of §4.7: it assigns a
// pool of heuristic parameter tuples to worker goroutines, each of
// which constructs a seed Solution State and drives it to a local
// optimum under internal/ops's operator priority loop, then returns
// the best result across every worker by the tie-break order of §5:
// (total cost, unassigned count, total duration, tuple index).
package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fleetroute/vrpsolver/internal/config"
	"github.com/fleetroute/vrpsolver/internal/construct"
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/ops"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// Result is one worker's finished run: the tuple it was seeded with,
// the local optimum it converged to (or its deadline-truncated state),
// and the raw counts a caller can fold into internal/metrics without
// this package importing it directly.
type Result struct {
	TupleIndex   int
	Params       model.HeuristicParameters
	Solution     *routestate.Solution
	Passes       int
	Applications map[model.OperatorName]int
	Elapsed      time.Duration
}

// Report is the outcome of a full Run: every worker's Result plus the
// one selected as Best.
type Report struct {
	Results []Result
	Best    *Result
}

// Run builds K = min(exploration_level_map[level], threads) heuristic
// parameter tuples (§4.7), runs one worker goroutine per tuple bounded
// by threads concurrently in flight, and returns every result plus the
// best. ctx's deadline, if any, is polled at each worker's operator-pass
// boundary; a worker whose deadline has already passed before it starts
// still returns its unoptimized construction seed, never nothing.
//
// Vehicles carrying a user-pinned forced step skeleton always get an
// additional InitRoutes-seeded worker, outside of and never counted
// against K — InitRoutes exists to honor those pins, not to compete for
// exploration budget (§4.4).
func Run(ctx context.Context, in *model.Input, rctx *routestate.Context, level, threads int) *Report {
	if threads < 1 {
		threads = model.DefaultThreads
	}
	return run(ctx, in, rctx, Tuples(level, threads), threads, ops.Priority(), nil)
}

// RunWithConfig is Run, but drawing its tuple-count table, default
// thread count, and operator priority order from cfg (§3's
// internal/config wiring) instead of internal/search's own built-in
// defaults. threads, if > 0, still overrides cfg.Threads — the caller's
// explicit flag wins over the file.
func RunWithConfig(ctx context.Context, in *model.Input, rctx *routestate.Context, level, threads int, cfg config.SolverConfig) (*Report, error) {
	return RunWithReporter(ctx, in, rctx, level, threads, cfg, nil)
}

// RunWithReporter is RunWithConfig, additionally calling report after
// every move a worker applies, so a caller can relay live progress
// (internal/progress) while the search is still running. report may be
// nil.
func RunWithReporter(ctx context.Context, in *model.Input, rctx *routestate.Context, level, threads int, cfg config.SolverConfig, report Reporter) (*Report, error) {
	if threads < 1 {
		threads = cfg.Threads
	}
	if threads < 1 {
		threads = model.DefaultThreads
	}
	priority, err := operatorPriorityFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return run(ctx, in, rctx, TuplesFromConfig(cfg, level, threads), threads, priority, report), nil
}

func operatorPriorityFromConfig(cfg config.SolverConfig) ([]ops.Operator, error) {
	if len(cfg.OperatorPriority) == 0 {
		return ops.Priority(), nil
	}
	out := make([]ops.Operator, 0, len(cfg.OperatorPriority))
	for _, name := range cfg.OperatorPriority {
		opName, ok := model.ParseOperatorName(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown operator %q in operator_priority", name)
		}
		op, ok := ops.ByName(opName)
		if !ok {
			return nil, fmt.Errorf("config: operator %q has no implementation", name)
		}
		out = append(out, op)
	}
	return out, nil
}

func run(ctx context.Context, in *model.Input, rctx *routestate.Context, tuples []model.HeuristicParameters, threads int, priority []ops.Operator, report Reporter) *Report {
	if hasForcedVehicle(in) {
		tuples = append(tuples, model.NewInitRoutesParameters())
	}

	type job struct {
		index  int
		params model.HeuristicParameters
	}

	jobChan := make(chan job, len(tuples))
	resultChan := make(chan Result, len(tuples))

	workers := threads
	if workers > len(tuples) {
		workers = len(tuples)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				resultChan <- runOne(ctx, in, rctx, j.index, j.params, priority, report)
			}
		}()
	}

	for i, params := range tuples {
		jobChan <- job{index: i, params: params}
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(tuples))
	for r := range resultChan {
		results = append(results, r)
	}

	rpt := &Report{Results: results}
	for i := range results {
		if rpt.Best == nil || better(&results[i], rpt.Best) {
			rpt.Best = &results[i]
		}
	}
	return rpt
}

func runOne(ctx context.Context, in *model.Input, rctx *routestate.Context, index int, params model.HeuristicParameters, priority []ops.Operator, report Reporter) Result {
	start := time.Now()
	sol := construct.Run(rctx, in, params)
	stats := localOptimum(ctx, rctx, sol, priority, index, report)
	return Result{
		TupleIndex: index, Params: params, Solution: sol,
		Passes: stats.passes, Applications: stats.applications, Elapsed: time.Since(start),
	}
}

func hasForcedVehicle(in *model.Input) bool {
	for _, v := range in.Vehicles {
		if v.HasForcedSteps() {
			return true
		}
	}
	return false
}

// better reports whether a should be preferred to b under §5's total
// order: lower total routing cost first (unassigned tasks excluded from
// the cost sum itself since they're compared as their own key next),
// then fewer unassigned tasks, then lower total duration, then the
// lower tuple index.
func better(a, b *Result) bool {
	costA, costB := a.Solution.TotalCost(0), b.Solution.TotalCost(0)
	if costA != costB {
		return costA < costB
	}
	unassignedA, unassignedB := a.Solution.UnassignedCount(), b.Solution.UnassignedCount()
	if unassignedA != unassignedB {
		return unassignedA < unassignedB
	}
	durationA, durationB := a.Solution.TotalDuration(), b.Solution.TotalDuration()
	if durationA != durationB {
		return durationA < durationB
	}
	return a.TupleIndex < b.TupleIndex
}
