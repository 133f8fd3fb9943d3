package ops

import (
	"testing"

	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/oracle"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

func buildContext(tasks []model.Task, durations [][]model.UserDuration) *routestate.Context {
	in := &model.Input{
		Tasks:      tasks,
		AmountSize: 1,
		Matrices:   map[string]model.Matrices{"car": {Durations: durations}},
	}
	o := oracle.New(in.Matrices, nil)
	return routestate.NewContext(in, o)
}

func newTestVehicle(id uint64, capacity model.Amount, perHour model.UserCost) *model.Vehicle {
	start := model.NewLocationFromIndex(0)
	return &model.Vehicle{
		ID: id, Start: &start, End: &start, Profile: "car",
		Capacity: capacity, SpeedFactor: 1, TimeWindow: model.DefaultTimeWindow(),
		Costs: model.VehicleCosts{PerHour: perHour},
	}
}

func singleTask(id uint64, idx uint32) model.Task {
	return model.Task{
		ID: id, Kind: model.Single, Location: model.NewLocationFromIndex(idx),
		TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()},
	}
}

func appendJob(r *routestate.Route, taskID uint64) {
	at := r.EndIndex()
	r.Replace(at, at, []routestate.Step{{Type: model.StepJob, JobKind: model.Single, TaskID: taskID}})
}

// Job 1 sits at an asymmetric-cost location: cheap to reach, expensive
// to leave (d[1][0]=5 vs d[0][1]=1). Job 2 is symmetric and cheap both
// ways. Visiting 2 before 1 costs d[0][2]+d[2][1]+d[1][0]=1+1+5=7;
// visiting 1 before 2 costs d[0][1]+d[1][2]+d[2][0]=1+1+1=3. Starting
// from the expensive order, IntraExchange must find the 4-unit
// improvement from swapping the two job positions.
func asymmetricDurations() [][]model.UserDuration {
	return [][]model.UserDuration{
		{0, 1, 1},
		{5, 0, 1},
		{1, 1, 0},
	}
}

func TestIntraExchangeFindsCheaperOrder(t *testing.T) {
	tasks := []model.Task{singleTask(1, 1), singleTask(2, 2)}
	ctx := buildContext(tasks, asymmetricDurations())
	v := newTestVehicle(1, model.Amount{10}, 1)
	route := routestate.NewRoute(ctx, v)
	appendJob(route, 2)
	appendJob(route, 1)
	sol := &routestate.Solution{Routes: []*routestate.Route{route}, Unassigned: map[uint64]struct{}{}}

	before := route.TotalCost()
	move, have := intraExchange{}.BestMove(ctx, sol)
	if !have {
		t.Fatalf("expected IntraExchange to find the improving swap")
	}
	if move.Delta >= 0 {
		t.Fatalf("expected a negative delta, got %d", move.Delta)
	}
	Apply(sol, move)
	after := sol.Routes[0].TotalCost()
	if got, want := after-before, move.Delta; got != want {
		t.Fatalf("predicted delta %d, actual delta %d", want, got)
	}
	if sol.Routes[0].Steps[1].TaskID != 1 || sol.Routes[0].Steps[2].TaskID != 2 {
		t.Fatalf("expected the order to become [1, 2], got steps %+v", sol.Routes[0].Steps)
	}
}

func TestUnassignedExchangeSwapsForCheaperTask(t *testing.T) {
	tasks := []model.Task{singleTask(1, 1), singleTask(2, 2)}
	ctx := buildContext(tasks, [][]model.UserDuration{
		{0, 10, 1},
		{10, 0, 1},
		{1, 1, 0},
	})
	v := newTestVehicle(1, model.Amount{10}, 1)
	route := routestate.NewRoute(ctx, v)
	appendJob(route, 1)
	sol := &routestate.Solution{Routes: []*routestate.Route{route}, Unassigned: map[uint64]struct{}{2: {}}}

	move, have := unassignedExchange{}.BestMove(ctx, sol)
	if !have {
		t.Fatalf("expected UnassignedExchange to find the cheaper swap")
	}
	Apply(sol, move)
	if _, stillUnassigned := sol.Unassigned[2]; stillUnassigned {
		t.Fatalf("task 2 should now be assigned")
	}
	if _, nowUnassigned := sol.Unassigned[1]; !nowUnassigned {
		t.Fatalf("task 1 should now be unassigned")
	}
	if sol.Routes[0].Steps[1].TaskID != 2 {
		t.Fatalf("expected task 2 to occupy the route slot, got step %+v", sol.Routes[0].Steps[1])
	}
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

func TestPDShiftMovesPairAsUnitPreservingOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: 10, Kind: model.Pickup, Location: model.NewLocationFromIndex(1), Shipment: model.ShipmentRef{HasSibling: true, SiblingID: 11}, TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
		{ID: 11, Kind: model.Delivery, Location: model.NewLocationFromIndex(2), Shipment: model.ShipmentRef{HasSibling: true, SiblingID: 10}, TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()}},
	}
	ctx := buildContext(tasks, flatDurations(3, 1))

	// "from" is ten times costlier per hour than "to", so shifting the
	// pair onto "to" is strictly cheaper even though both vehicles
	// share the same depot and travel matrix.
	from := routestate.NewRoute(ctx, newTestVehicle(1, model.Amount{10}, 10))
	at := from.EndIndex()
	from.Replace(at, at, []routestate.Step{
		{Type: model.StepJob, JobKind: model.Pickup, TaskID: 10},
		{Type: model.StepJob, JobKind: model.Delivery, TaskID: 11},
	})
	to := routestate.NewRoute(ctx, newTestVehicle(2, model.Amount{10}, 1))

	sol := &routestate.Solution{Routes: []*routestate.Route{from, to}, Unassigned: map[uint64]struct{}{}}

	move, have := pdShift{}.BestMove(ctx, sol)
	if !have {
		t.Fatalf("expected PDShift to move the pair onto the cheaper vehicle")
	}
	Apply(sol, move)

	var pickupIdx, deliveryIdx int = -1, -1
	for idx, s := range sol.Routes[1].Steps {
		if s.Type == model.StepJob && s.TaskID == 10 {
			pickupIdx = idx
		}
		if s.Type == model.StepJob && s.TaskID == 11 {
			deliveryIdx = idx
		}
	}
	if pickupIdx == -1 || deliveryIdx == -1 {
		t.Fatalf("expected the shipment pair to have moved together onto the other route")
	}
	if pickupIdx >= deliveryIdx {
		t.Fatalf("pickup must still precede delivery, got pickup=%d delivery=%d", pickupIdx, deliveryIdx)
	}
	if err := sol.CheckInvariant(&model.Input{Tasks: tasks}); err != nil {
		t.Fatalf("invariant broken after PDShift: %v", err)
	}
}

func TestRouteExchangeSwapsJobSequences(t *testing.T) {
	tasks := []model.Task{singleTask(1, 1), singleTask(2, 2)}
	ctx := buildContext(tasks, flatDurations(3, 1))

	a := routestate.NewRoute(ctx, newTestVehicle(1, model.Amount{10}, 1))
	appendJob(a, 1)
	b := routestate.NewRoute(ctx, newTestVehicle(2, model.Amount{10}, 1))
	appendJob(b, 2)
	sol := &routestate.Solution{Routes: []*routestate.Route{a, b}, Unassigned: map[uint64]struct{}{}}

	newA := routestate.NewRouteFromSteps(ctx, a.Vehicle, []routestate.Step{
		{Type: model.StepStart}, {Type: model.StepJob, JobKind: model.Single, TaskID: 2}, {Type: model.StepEnd},
	})
	newB := routestate.NewRouteFromSteps(ctx, b.Vehicle, []routestate.Step{
		{Type: model.StepStart}, {Type: model.StepJob, JobKind: model.Single, TaskID: 1}, {Type: model.StepEnd},
	})
	if !newA.Feasible || !newB.Feasible {
		t.Fatalf("exchanged skeletons should both be feasible under a flat metric")
	}

	move := Move{
		Operator: model.RouteExchange,
		run: func(sol *routestate.Solution) {
			sol.Routes[0].Replace(0, len(sol.Routes[0].Steps), newA.Steps)
			sol.Routes[1].Replace(0, len(sol.Routes[1].Steps), newB.Steps)
		},
	}
	Apply(sol, move)

	if sol.Routes[0].Steps[1].TaskID != 2 || sol.Routes[1].Steps[1].TaskID != 1 {
		t.Fatalf("expected routes to have swapped their job sequences")
	}
	if err := sol.CheckInvariant(&model.Input{Tasks: tasks}); err != nil {
		t.Fatalf("invariant broken after route exchange: %v", err)
	}
}

func TestPriorityListsEveryOperatorExactlyOnce(t *testing.T) {
	ops := Priority()
	if len(ops) != int(model.OperatorCount) {
		t.Fatalf("expected %d operators, got %d", model.OperatorCount, len(ops))
	}
	seen := make(map[model.OperatorName]bool, len(ops))
	for _, op := range ops {
		name := op.Name()
		if seen[name] {
			t.Fatalf("operator %s listed more than once", name)
		}
		seen[name] = true
	}
}

func TestBetterTieBreaksByRouteThenStep(t *testing.T) {
	a := Move{Delta: 5, RouteID: 1, StepIdx: 0}
	b := Move{Delta: 5, RouteID: 2, StepIdx: 0}
	if !better(a, b, true) {
		t.Fatalf("equal delta should prefer the lower route id")
	}
	c := Move{Delta: 5, RouteID: 1, StepIdx: 3}
	if !better(a, c, true) {
		t.Fatalf("equal delta and route id should prefer the lower step index")
	}
	d := Move{Delta: -1, RouteID: 9, StepIdx: 9}
	if !better(d, a, true) {
		t.Fatalf("a strictly cheaper delta should always win regardless of tie-break fields")
	}
}
