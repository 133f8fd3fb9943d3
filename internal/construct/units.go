// Package construct builds seed Solution States: Basic, Dynamic and
// InitRoutes heuristics, parameterized by (HEURISTIC, INIT, regret_coeff,
// SORT) tuples, per spec.md §4.4/§4.5.
package construct

import "github.com/fleetroute/vrpsolver/internal/model"

// Unit is the smallest thing construction ever inserts as one move: a
// Single task, or a Pickup/Delivery shipment pair inserted together as
// a contiguous two-step segment so precedence holds by construction
// rather than by a later repair pass.
type Unit struct {
	TaskIDs []uint64 // one id (Single), or [pickup, delivery] in that order
}

// PrimaryID is the id construction tie-breaks compare ("lower id").
func (u Unit) PrimaryID() uint64 { return u.TaskIDs[0] }

// BuildUnits groups an Input's tasks into insertion units, pairing every
// shipment's Pickup and Delivery half regardless of which order they
// appear in Tasks.
func BuildUnits(in *model.Input) []Unit {
	byID := in.TaskByID()
	seen := make(map[uint64]bool, len(in.Tasks))
	units := make([]Unit, 0, len(in.Tasks))
	for _, t := range in.Tasks {
		if seen[t.ID] {
			continue
		}
		switch {
		case t.IsSingle():
			units = append(units, Unit{TaskIDs: []uint64{t.ID}})
			seen[t.ID] = true
		case t.IsPickup():
			sibling := byID[t.Shipment.SiblingID]
			units = append(units, Unit{TaskIDs: []uint64{t.ID, sibling.ID}})
			seen[t.ID] = true
			seen[sibling.ID] = true
		case t.IsDelivery():
			pickup := byID[t.Shipment.SiblingID]
			units = append(units, Unit{TaskIDs: []uint64{pickup.ID, t.ID}})
			seen[t.ID] = true
			seen[pickup.ID] = true
		}
	}
	return units
}

// amountSum is the combined pickup+delivery demand of a unit, used by
// the HigherAmount INIT rule and the "higher amount" construction
// tie-break (§4.5).
func amountSum(byID map[uint64]*model.Task, u Unit) int64 {
	var sum int64
	for _, id := range u.TaskIDs {
		t := byID[id]
		sum += t.Pickup.Sum() + t.Delivery.Sum()
	}
	return sum
}

// priority is the unit's tie-break priority: the priority of its
// primary (first) task.
func priority(byID map[uint64]*model.Task, u Unit) int {
	return byID[u.PrimaryID()].Priority
}

// removeUnit deletes id's unit from a slice, preserving order of the rest.
func removeUnit(units []Unit, id uint64) []Unit {
	out := make([]Unit, 0, len(units)-1)
	for _, u := range units {
		if u.PrimaryID() == id {
			continue
		}
		out = append(out, u)
	}
	return out
}
