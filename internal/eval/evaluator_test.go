package eval

import (
	"testing"

	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/oracle"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

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

func buildContext(t *testing.T, tasks []model.Task, n int) *routestate.Context {
	t.Helper()
	in := &model.Input{
		Tasks:      tasks,
		AmountSize: 1,
		Matrices:   map[string]model.Matrices{"car": {Durations: flatDurations(n, 5)}},
	}
	o := oracle.New(in.Matrices, nil)
	return routestate.NewContext(in, o)
}

func newVehicle(id uint64, capacity model.Amount) *model.Vehicle {
	start := model.NewLocationFromIndex(0)
	return &model.Vehicle{
		ID: id, Start: &start, End: &start, Profile: "car",
		Capacity: capacity, SpeedFactor: 1,
		TimeWindow: model.DefaultTimeWindow(),
	}
}

// An IntraRelocate-shaped proposal: move the job at position p earlier
// in the same route. The combined trial must be judged as one edit, not
// two stacked ones, or the position bookkeeping would drift.
func TestEvaluateIntraRouteRelocate(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		{ID: 2, Kind: model.Single, Location: model.NewLocationFromIndex(2), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		{ID: 3, Kind: model.Single, Location: model.NewLocationFromIndex(3), TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
	}
	ctx := buildContext(t, tasks, 4)
	v := newVehicle(1, model.Amount{5})

	route := routestate.NewRoute(ctx, v)
	at := route.EndIndex()
	route.Replace(at, at, []routestate.Step{{Type: model.StepJob, TaskID: 1}})
	at = route.EndIndex()
	route.Replace(at, at, []routestate.Step{{Type: model.StepJob, TaskID: 2}})
	at = route.EndIndex()
	route.Replace(at, at, []routestate.Step{{Type: model.StepJob, TaskID: 3}})

	// Route is [Start, job1, job2, job3, End]; move job3 (index 3) to
	// right after Start (index 1).
	removeFrom, removeTo := 3, 4
	insertAt := 1
	segment := []routestate.Step{{Type: model.StepJob, TaskID: 3}}

	result := Evaluate(Proposal{From: route, RemoveFrom: removeFrom, RemoveTo: removeTo, To: route, InsertAt: insertAt, Segment: segment})
	if !result.Feasible {
		t.Fatalf("expected the relocate to be feasible")
	}

	before := route.TotalCost()
	route.Replace(removeFrom, removeTo, nil)
	route.Replace(insertAt, insertAt, segment)
	after := route.TotalCost()
	if got, want := result.Delta, after-before; got != want {
		t.Fatalf("predicted delta %d, actual delta after applying %d", got, want)
	}
}

// Capacity breach across two vehicles: moving a heavy job onto a
// vehicle with too little remaining capacity must be reported
// infeasible, never silently accepted with some cost.
func TestEvaluateInterRouteCapacityBreach(t *testing.T) {
	heavy := model.Task{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), Delivery: model.Amount{9}, TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}}
	ctx := buildContext(t, []model.Task{heavy}, 2)

	from := routestate.NewRoute(ctx, newVehicle(1, model.Amount{10}))
	at := from.EndIndex()
	from.Replace(at, at, []routestate.Step{{Type: model.StepJob, TaskID: 1}})

	to := routestate.NewRoute(ctx, newVehicle(2, model.Amount{5}))
	toAt := to.EndIndex()

	result := Evaluate(Proposal{
		From: from, RemoveFrom: at, RemoveTo: at + 1,
		To: to, InsertAt: toAt, Segment: []routestate.Step{{Type: model.StepJob, TaskID: 1}},
	})
	if result.Feasible {
		t.Fatalf("expected capacity breach to make the move infeasible")
	}
}

// A feasible inter-route move: moving a light job to a second,
// otherwise-empty vehicle should be feasible and should report the
// exact delta the two independent splices produce.
func TestEvaluateInterRouteFeasibleMove(t *testing.T) {
	task := model.Task{ID: 1, Kind: model.Single, Location: model.NewLocationFromIndex(1), Delivery: model.Amount{2}, TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}}
	ctx := buildContext(t, []model.Task{task}, 2)

	from := routestate.NewRoute(ctx, newVehicle(1, model.Amount{10}))
	at := from.EndIndex()
	from.Replace(at, at, []routestate.Step{{Type: model.StepJob, TaskID: 1}})

	to := routestate.NewRoute(ctx, newVehicle(2, model.Amount{10}))
	toAt := to.EndIndex()

	result := Evaluate(Proposal{
		From: from, RemoveFrom: at, RemoveTo: at + 1,
		To: to, InsertAt: toAt, Segment: []routestate.Step{{Type: model.StepJob, TaskID: 1}},
	})
	if !result.Feasible {
		t.Fatalf("expected moving a light job to an empty vehicle to be feasible")
	}
}
