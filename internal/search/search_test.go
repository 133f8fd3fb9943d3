package search

import (
	"context"
	"sync"
	"testing"

	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/ops"
	"github.com/fleetroute/vrpsolver/internal/oracle"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

func buildInput() (*model.Input, *routestate.Context) {
	start := model.NewLocationFromIndex(0)
	in := &model.Input{
		Tasks: []model.Task{
			{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
			{ID: 2, Kind: model.Single, Location: model.NewLocationFromIndex(2), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
			{ID: 3, Kind: model.Single, Location: model.NewLocationFromIndex(3), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		},
		Vehicles: []model.Vehicle{
			{ID: 1, Start: &start, End: &start, Profile: "car", Capacity: model.Amount{10}, SpeedFactor: 1, TimeWindow: model.DefaultTimeWindow(), Costs: model.VehicleCosts{PerHour: 1}},
			{ID: 2, Start: &start, End: &start, Profile: "car", Capacity: model.Amount{10}, SpeedFactor: 1, TimeWindow: model.DefaultTimeWindow(), Costs: model.VehicleCosts{PerHour: 1}},
		},
		AmountSize: 1,
		Matrices:   map[string]model.Matrices{"car": {Durations: flatDurations(4, 1)}},
	}
	o := oracle.New(in.Matrices, nil)
	return in, routestate.NewContext(in, o)
}

func flatDurations(n int, leg model.UserDuration) [][]model.UserDuration {
	m := make([][]model.UserDuration, n)
	for i := range m {
		m[i] = make([]model.UserDuration, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = leg
			}
		}
	}
	return m
}

func TestRunAssignsEveryTaskAndPicksAFeasibleBest(t *testing.T) {
	in, rctx := buildInput()
	report := Run(context.Background(), in, rctx, model.DefaultExplorationLevel, 2)

	if len(report.Results) == 0 {
		t.Fatalf("expected at least one worker result")
	}
	if report.Best == nil {
		t.Fatalf("expected a best result to be selected")
	}
	if err := report.Best.Solution.CheckInvariant(in); err != nil {
		t.Fatalf("invariant broken on best solution: %v", err)
	}
	if got := report.Best.Solution.UnassignedCount(); got != 0 {
		t.Fatalf("expected every task assignable under a flat metric, got %d unassigned", got)
	}
}

func TestRunHonorsExplorationLevelTupleCount(t *testing.T) {
	tuples := Tuples(0, 8)
	if len(tuples) != 1 {
		t.Fatalf("level 0 should seed exactly one tuple, got %d", len(tuples))
	}
	tuples = Tuples(model.MaxExplorationLevel, 2)
	if len(tuples) != 2 {
		t.Fatalf("thread count should clamp K even at max exploration level, got %d", len(tuples))
	}
	tuples = Tuples(model.MaxExplorationLevel, 100)
	if len(tuples) != len(candidateTuples) {
		t.Fatalf("K should never exceed the candidate pool size, got %d", len(tuples))
	}
}

func TestRunAddsInitRoutesWorkerForForcedVehicles(t *testing.T) {
	start := model.NewLocationFromIndex(0)
	in := &model.Input{
		Tasks: []model.Task{
			{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		},
		Vehicles: []model.Vehicle{
			{
				ID: 1, Start: &start, End: &start, Profile: "car", Capacity: model.Amount{10}, SpeedFactor: 1,
				TimeWindow: model.DefaultTimeWindow(), Costs: model.VehicleCosts{PerHour: 1},
				Steps: []model.VehicleStep{{Type: model.StepJob, JobKind: model.Single, TaskID: 1}},
			},
		},
		AmountSize: 1,
		Matrices:   map[string]model.Matrices{"car": {Durations: flatDurations(2, 1)}},
	}
	o := oracle.New(in.Matrices, nil)
	rctx := routestate.NewContext(in, o)

	report := Run(context.Background(), in, rctx, 1, 4)
	sawInitRoutes := false
	for _, r := range report.Results {
		if r.Params.Heuristic == model.HeuristicInitRoutes {
			sawInitRoutes = true
		}
	}
	if !sawInitRoutes {
		t.Fatalf("expected an InitRoutes worker to run for a vehicle with forced steps")
	}
}

// Job 1 sits at an asymmetric-cost location (cheap to reach, expensive
// to leave), so starting from the expensive visit order gives
// localOptimum at least one guaranteed improving move to find and
// report, unlike buildInput's flat symmetric matrix where construction
// already lands on an optimum with nothing left to improve.
func asymmetricInput() (*model.Input, *routestate.Context, *model.Vehicle) {
	start := model.NewLocationFromIndex(0)
	in := &model.Input{
		Tasks: []model.Task{
			{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
			{ID: 2, Kind: model.Single, Location: model.NewLocationFromIndex(2), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		},
		AmountSize: 1,
		Matrices: map[string]model.Matrices{"car": {Durations: [][]model.UserDuration{
			{0, 1, 1},
			{5, 0, 1},
			{1, 1, 0},
		}}},
	}
	o := oracle.New(in.Matrices, nil)
	rctx := routestate.NewContext(in, o)
	v := &model.Vehicle{
		ID: 1, Start: &start, End: &start, Profile: "car",
		Capacity: model.Amount{10}, SpeedFactor: 1, TimeWindow: model.DefaultTimeWindow(),
		Costs: model.VehicleCosts{PerHour: 1},
	}
	return in, rctx, v
}

func TestLocalOptimumReportsASnapshotForEveryAppliedMove(t *testing.T) {
	_, rctx, v := asymmetricInput()
	route := routestate.NewRoute(rctx, v)
	at := route.EndIndex()
	route.Replace(at, at, []routestate.Step{{Type: model.StepJob, JobKind: model.Single, TaskID: 2}})
	at = route.EndIndex()
	route.Replace(at, at, []routestate.Step{{Type: model.StepJob, JobKind: model.Single, TaskID: 1}})
	sol := &routestate.Solution{Routes: []*routestate.Route{route}, Unassigned: map[uint64]struct{}{}}

	var mu sync.Mutex
	var snapshots []ProgressSnapshot
	stats := localOptimum(context.Background(), rctx, sol, ops.Priority(), 7, func(s ProgressSnapshot) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	})

	if stats.passes == 0 {
		t.Fatalf("expected at least one pass")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(snapshots) == 0 {
		t.Fatalf("expected a snapshot for the guaranteed improving move")
	}
	for _, s := range snapshots {
		if s.TupleIndex != 7 {
			t.Fatalf("expected every snapshot to carry the worker's tuple index, got %d", s.TupleIndex)
		}
		if s.Pass <= 0 {
			t.Fatalf("snapshot pass must be positive, got %d", s.Pass)
		}
	}
}
