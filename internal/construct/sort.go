package construct

import (
	"sort"

	"github.com/fleetroute/vrpsolver/internal/model"
)

// vehicleOrder returns indices into in.Vehicles ordered per the SORT
// rule (§4.4): Availability orders by how soon a vehicle's window
// opens, Cost orders by how cheap it is to put to work. Both break
// ties by vehicle id so construction is deterministic.
func vehicleOrder(in *model.Input, rule model.Sort) []int {
	order := make([]int, len(in.Vehicles))
	for i := range order {
		order[i] = i
	}
	switch rule {
	case model.SortCost:
		sort.Slice(order, func(i, j int) bool {
			vi, vj := in.Vehicles[order[i]], in.Vehicles[order[j]]
			if vi.Costs.Fixed != vj.Costs.Fixed {
				return vi.Costs.Fixed < vj.Costs.Fixed
			}
			if vi.Costs.PerHour != vj.Costs.PerHour {
				return vi.Costs.PerHour < vj.Costs.PerHour
			}
			return vi.ID < vj.ID
		})
	default: // model.SortAvailability
		sort.Slice(order, func(i, j int) bool {
			vi, vj := in.Vehicles[order[i]], in.Vehicles[order[j]]
			if vi.TimeWindow.Start != vj.TimeWindow.Start {
				return vi.TimeWindow.Start < vj.TimeWindow.Start
			}
			return vi.ID < vj.ID
		})
	}
	return order
}
