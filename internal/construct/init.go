package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// selectInitial picks the first unit to seed an empty vehicle's route,
// per the INIT rule (§4.4). Ties within a rule always fall back to
// lower primary id, keeping seeding deterministic.
func selectInitial(ctx *routestate.Context, v *model.Vehicle, rule model.Init, units []Unit) (Unit, bool) {
	if len(units) == 0 {
		return Unit{}, false
	}
	switch rule {
	case model.InitHigherAmount:
		return pickExtreme(ctx.Tasks, units, func(a, b Unit) bool {
			as, bs := amountSum(ctx.Tasks, a), amountSum(ctx.Tasks, b)
			if as != bs {
				return as > bs
			}
			return a.PrimaryID() < b.PrimaryID()
		}), true
	case model.InitNearest:
		return pickByDistance(ctx, v, units, true), true
	case model.InitFurthest:
		return pickByDistance(ctx, v, units, false), true
	case model.InitEarliestDeadline:
		return pickExtreme(ctx.Tasks, units, func(a, b Unit) bool {
			da, db := earliestDeadline(ctx.Tasks, a), earliestDeadline(ctx.Tasks, b)
			if da != db {
				return da < db
			}
			return a.PrimaryID() < b.PrimaryID()
		}), true
	default: // model.InitNone
		return pickExtreme(ctx.Tasks, units, func(a, b Unit) bool {
			return a.PrimaryID() < b.PrimaryID()
		}), true
	}
}

// pickExtreme returns the unit that "less" ranks first among units.
func pickExtreme(byID map[uint64]*model.Task, units []Unit, less func(a, b Unit) bool) Unit {
	best := units[0]
	for _, u := range units[1:] {
		if less(u, best) {
			best = u
		}
	}
	return best
}

func earliestDeadline(byID map[uint64]*model.Task, u Unit) model.Duration {
	t := byID[u.PrimaryID()]
	min := model.InfiniteDuration
	for _, w := range t.TimeWindows {
		if w.End < min {
			min = w.End
		}
	}
	return min
}

// pickByDistance picks the unit whose primary task sits nearest to (or,
// when nearest is false, furthest from) the vehicle's start location,
// by travel duration. Grounded in the teacher pack's
// erenceh-delivery-route-api greedy nearest-neighbor selection (same
// "minimize/maximize immediate travel, break ties deterministically"
// shape). When the vehicle has no start location there is nothing to
// measure from, so this falls back to lower-id selection.
func pickByDistance(ctx *routestate.Context, v *model.Vehicle, units []Unit, nearest bool) Unit {
	if v.Start == nil {
		return pickExtreme(ctx.Tasks, units, func(a, b Unit) bool { return a.PrimaryID() < b.PrimaryID() })
	}
	best := units[0]
	bestDuration := ctx.Oracle.LocationDuration(v.Profile, v.SpeedFactor, *v.Start, ctx.Tasks[best.PrimaryID()].Location)
	for _, u := range units[1:] {
		d := ctx.Oracle.LocationDuration(v.Profile, v.SpeedFactor, *v.Start, ctx.Tasks[u.PrimaryID()].Location)
		better := d < bestDuration || (d == bestDuration && u.PrimaryID() < best.PrimaryID())
		if !nearest {
			better = d > bestDuration || (d == bestDuration && u.PrimaryID() < best.PrimaryID())
		}
		if better {
			bestDuration = d
			best = u
		}
	}
	return best
}
