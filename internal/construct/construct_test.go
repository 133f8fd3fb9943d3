package construct

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

func buildInput(tasks []model.Task, vehicles []model.Vehicle, n int) (*model.Input, *routestate.Context) {
	in := &model.Input{
		Tasks: tasks, Vehicles: vehicles, AmountSize: 1,
		Matrices: map[string]model.Matrices{"car": {Durations: flatDurations(n, 5)}},
	}
	o := oracle.New(in.Matrices, nil)
	return in, routestate.NewContext(in, o)
}

func vehicle(id uint64, capacity model.Amount) model.Vehicle {
	start := model.NewLocationFromIndex(0)
	return model.Vehicle{
		ID: id, Start: &start, End: &start, Profile: "car",
		Capacity: capacity, SpeedFactor: 1, TimeWindow: model.DefaultTimeWindow(),
	}
}

func job(id uint64, idx uint32, delivery int64) model.Task {
	return model.Task{
		ID: id, Kind: model.Single, Location: model.NewLocationFromIndex(idx),
		Delivery: model.Amount{delivery}, TimeWindows: []model.TimeWindow{model.DefaultTimeWindow()},
	}
}

func TestRunBasicAssignsEveryFeasibleTask(t *testing.T) {
	tasks := []model.Task{job(1, 1, 4), job(2, 2, 4), job(3, 3, 4)}
	vehicles := []model.Vehicle{vehicle(1, model.Amount{10})}
	in, ctx := buildInput(tasks, vehicles, 4)

	sol := RunBasic(ctx, in, model.HeuristicParameters{Heuristic: model.HeuristicBasic, Init: model.InitNearest, RegretCoeff: 1, Sort: model.SortAvailability})
	if err := sol.CheckInvariant(in); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
	if sol.UnassignedCount() != 1 {
		t.Fatalf("expected exactly one task left unassigned (capacity 10, 3x delivery 4), got %d", sol.UnassignedCount())
	}
}

func TestRunDynamicSpreadsAcrossVehicles(t *testing.T) {
	tasks := []model.Task{job(1, 1, 6), job(2, 2, 6)}
	vehicles := []model.Vehicle{vehicle(1, model.Amount{6}), vehicle(2, model.Amount{6})}
	in, ctx := buildInput(tasks, vehicles, 3)

	sol := RunDynamic(ctx, in, model.HeuristicParameters{Heuristic: model.HeuristicDynamic, Init: model.InitNone, Sort: model.SortAvailability})
	if err := sol.CheckInvariant(in); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
	if sol.UnassignedCount() != 0 {
		t.Fatalf("both jobs should fit, one per vehicle, got %d unassigned", sol.UnassignedCount())
	}
	for _, r := range sol.Routes {
		if r.TaskCount() != 1 {
			t.Fatalf("expected each vehicle to carry exactly one job, got %d", r.TaskCount())
		}
	}
}

func TestRunInitRoutesProjectsForcedSkeleton(t *testing.T) {
	tasks := []model.Task{job(1, 1, 2)}
	v := vehicle(1, model.Amount{10})
	v.Steps = []model.VehicleStep{
		{Type: model.StepStart},
		{Type: model.StepJob, JobKind: model.Single, TaskID: 1},
		{Type: model.StepEnd},
	}
	in, ctx := buildInput(tasks, []model.Vehicle{v}, 2)

	sol := RunInitRoutes(ctx, in)
	if sol.UnassignedCount() != 0 {
		t.Fatalf("forced task should be marked assigned, got %d unassigned", sol.UnassignedCount())
	}
	if sol.Routes[0].TaskCount() != 1 {
		t.Fatalf("expected the forced route to carry the one pinned job")
	}
	if !sol.Routes[0].Steps[1].Pinned {
		t.Fatalf("projected forced step must be marked Pinned")
	}
}

func TestBuildUnitsPairsShipments(t *testing.T) {
	tasks := []model.Task{
		{ID: 10, Kind: model.Pickup, Shipment: model.ShipmentRef{HasSibling: true, SiblingID: 11}},
		{ID: 11, Kind: model.Delivery, Shipment: model.ShipmentRef{HasSibling: true, SiblingID: 10}},
		{ID: 1, Kind: model.Single},
	}
	in := &model.Input{Tasks: tasks}
	units := BuildUnits(in)
	if len(units) != 2 {
		t.Fatalf("expected 2 units (one pair, one single), got %d", len(units))
	}
	for _, u := range units {
		if len(u.TaskIDs) == 2 && (u.TaskIDs[0] != 10 || u.TaskIDs[1] != 11) {
			t.Fatalf("shipment unit must order pickup before delivery, got %v", u.TaskIDs)
		}
	}
}

func TestVehicleOrderBySortRule(t *testing.T) {
	in := &model.Input{Vehicles: []model.Vehicle{
		{ID: 2, TimeWindow: model.TimeWindow{Start: 100}},
		{ID: 1, TimeWindow: model.TimeWindow{Start: 0}},
	}}
	order := vehicleOrder(in, model.SortAvailability)
	if order[0] != 1 || order[1] != 0 {
		t.Fatalf("expected the earlier-opening vehicle first, got order %v", order)
	}
}
