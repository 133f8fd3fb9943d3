package ingest

import (
	"strings"
	"testing"

	"github.com/fleetroute/vrpsolver/internal/model"
)

func TestParseMinimalJob(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [2.3, 48.8], "delivery": [1]}],
		"vehicles": [{"id": 1, "start": [2.3, 48.8], "capacity": [4]}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(in.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(in.Tasks))
	}
	if !in.Tasks[0].IsSingle() {
		t.Fatalf("job should be Single kind")
	}
	if in.Tasks[0].Delivery[0] != 1 {
		t.Fatalf("delivery not parsed: %v", in.Tasks[0].Delivery)
	}
	if len(in.Tasks[0].TimeWindows) != 1 || in.Tasks[0].TimeWindows[0] != model.DefaultTimeWindow() {
		t.Fatalf("missing time_windows should default to the full timeline, got %v", in.Tasks[0].TimeWindows)
	}
	if len(in.Vehicles) != 1 {
		t.Fatalf("got %d vehicles, want 1", len(in.Vehicles))
	}
	if in.Vehicles[0].Costs.PerHour != model.DefaultCostPerHour {
		t.Fatalf("default per_hour cost not applied: %v", in.Vehicles[0].Costs)
	}
}

func TestParseAmountFallsBackToDeliveryOnly(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [0, 0], "amount": [3]}],
		"vehicles": [{"id": 1, "start": [0, 0], "capacity": [5]}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if in.Tasks[0].Delivery[0] != 3 {
		t.Fatalf("amount should fall back to delivery, got %v", in.Tasks[0].Delivery)
	}
}

func TestParseAmountIgnoredWhenDeliveryPresent(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [0, 0], "amount": [9], "delivery": [2]}],
		"vehicles": [{"id": 1, "start": [0, 0], "capacity": [5]}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if in.Tasks[0].Delivery[0] != 2 {
		t.Fatalf("delivery should win over amount when both present, got %v", in.Tasks[0].Delivery)
	}
}

func TestParseShipmentPairsTasks(t *testing.T) {
	body := `{
		"shipments": [{
			"pickup":   {"id": 10, "location": [0, 0]},
			"delivery": {"id": 11, "location": [1, 1]},
			"amount": [2]
		}],
		"vehicles": [{"id": 1, "start": [0, 0], "capacity": [5]}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(in.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(in.Tasks))
	}
	if !in.Tasks[0].IsPickup() || !in.Tasks[1].IsDelivery() {
		t.Fatalf("shipment tasks should be pickup then delivery, got %v %v", in.Tasks[0].Kind, in.Tasks[1].Kind)
	}
	if in.Tasks[0].Shipment.SiblingID != 11 || in.Tasks[1].Shipment.SiblingID != 10 {
		t.Fatalf("shipment siblings not linked: %+v %+v", in.Tasks[0].Shipment, in.Tasks[1].Shipment)
	}
}

func TestParseVehicleMultipleTimeWindowsExpandsClones(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [0, 0]}],
		"vehicles": [{
			"id": 1, "start": [0, 0], "capacity": [1],
			"time_windows": [[0, 100], [200, 300]]
		}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(in.Vehicles) != 2 {
		t.Fatalf("got %d vehicles, want 2 clones", len(in.Vehicles))
	}
	if in.Vehicles[0].ID != in.Vehicles[1].ID {
		t.Fatalf("clones must share the same id")
	}
	if in.Vehicles[0].TimeWindow.Start != model.ScaleFromUserDuration(0) {
		t.Fatalf("first clone should start at 0, got %v", in.Vehicles[0].TimeWindow)
	}
}

func TestParseRejectsEmptyTimeWindows(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [0, 0], "time_windows": []}],
		"vehicles": [{"id": 1, "start": [0, 0], "capacity": [1]}]
	}`
	_, err := Parse(strings.NewReader(body))
	if err == nil {
		t.Fatalf("expected an error for explicitly empty time_windows")
	}
}

func TestParseDeprecatedMatrixFallback(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location_index": 1}],
		"vehicles": [{"id": 1, "start_index": 0, "capacity": [1]}],
		"matrix": [[0, 10], [10, 0]]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, ok := in.Matrices[model.DefaultProfile]
	if !ok {
		t.Fatalf("deprecated matrix should land under the default profile")
	}
	if m.Durations[0][1] != 10 {
		t.Fatalf("deprecated matrix values not carried through: %v", m.Durations)
	}
}

func TestParseMatricesIgnoresDeprecatedWhenPresent(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location_index": 1}],
		"vehicles": [{"id": 1, "start_index": 0, "capacity": [1]}],
		"matrix": [[0, 10], [10, 0]],
		"matrices": {"car": {"durations": [[0, 5], [5, 0]]}}
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(in.Matrices) != 1 {
		t.Fatalf("deprecated matrix must be ignored once matrices is present, got %v", in.Matrices)
	}
	if in.Matrices["car"].Durations[0][1] != 5 {
		t.Fatalf("matrices.car not parsed: %v", in.Matrices["car"])
	}
}

func TestParseRejectsNoJobsOrShipments(t *testing.T) {
	body := `{"vehicles": [{"id": 1, "start": [0, 0], "capacity": [1]}]}`
	_, err := Parse(strings.NewReader(body))
	if err == nil {
		t.Fatalf("expected an error when neither jobs nor shipments are present")
	}
}

func TestParseRejectsNoVehicles(t *testing.T) {
	body := `{"jobs": [{"id": 1, "location": [0, 0]}]}`
	_, err := Parse(strings.NewReader(body))
	if err == nil {
		t.Fatalf("expected an error when vehicles is empty")
	}
}

func TestParseBreaksSortedByWindow(t *testing.T) {
	body := `{
		"jobs": [{"id": 1, "location": [0, 0]}],
		"vehicles": [{
			"id": 1, "start": [0, 0], "capacity": [1],
			"breaks": [
				{"id": 2, "time_windows": [[500, 600]], "service": 60},
				{"id": 1, "time_windows": [[100, 200]], "service": 60}
			]
		}]
	}`
	in, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	breaks := in.Vehicles[0].Breaks
	if len(breaks) != 2 || breaks[0].ID != 1 || breaks[1].ID != 2 {
		t.Fatalf("breaks not sorted by window start: %+v", breaks)
	}
}
