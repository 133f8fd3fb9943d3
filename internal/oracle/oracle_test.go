package oracle

import (
	"testing"

	"github.com/fleetroute/vrpsolver/internal/model"
)

func TestOracleDurationDistance(t *testing.T) {
	matrices := map[string]model.Matrices{
		"car": {
			Durations: [][]model.UserDuration{
				{0, 10, 20},
				{10, 0, 10},
				{20, 10, 0},
			},
			Distances: [][]model.UserDistance{
				{0, 100, 200},
				{100, 0, 100},
				{200, 100, 0},
			},
		},
	}
	o := New(matrices, nil)

	if got := o.Duration("car", 0, 1); got != model.ScaleFromUserDuration(10) {
		t.Fatalf("Duration(0,1) = %d, want %d", got, model.ScaleFromUserDuration(10))
	}
	if got := o.Distance("car", 0, 2); got != model.ScaleFromUserDistance(200) {
		t.Fatalf("Distance(0,2) = %d, want %d", got, model.ScaleFromUserDistance(200))
	}
	if got := o.Duration("car", 0, 5); got != model.InfiniteDuration {
		t.Fatalf("out-of-range Duration = %d, want InfiniteDuration", got)
	}
	if got := o.Duration("bike", 0, 1); got != model.InfiniteDuration {
		t.Fatalf("unknown profile Duration = %d, want InfiniteDuration", got)
	}
}

func TestOracleCost(t *testing.T) {
	matrices := map[string]model.Matrices{
		"car": {
			Durations: [][]model.UserDuration{{0, 36}, {36, 0}}, // 36s
			Distances: [][]model.UserDistance{{0, 1000}, {1000, 0}},
		},
	}
	o := New(matrices, nil)
	costs := model.VehicleCosts{PerHour: 3600, PerKm: 0}
	got := o.Cost("car", costs, 0, 1)
	// 36 seconds at 3600/hour = 36 cost units (real), scaled by 360000.
	want := model.Cost(3600) * model.Cost(model.ScaleFromUserDuration(36))
	if got != want {
		t.Fatalf("Cost = %d, want %d", got, want)
	}
}
