package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// RunInitRoutes projects every vehicle's user-pinned forced step
// skeleton directly onto a Route, accepting it even when infeasible or
// suboptimal — local search is responsible for respecting pinned steps
// as fixed from then on (§4.5 InitRoutes). Vehicles with no forced
// steps get the usual empty Start/End route. Any task named by a
// skeleton is marked assigned; everything else starts unassigned, same
// as Basic/Dynamic.
func RunInitRoutes(ctx *routestate.Context, in *model.Input) *routestate.Solution {
	sol := routestate.NewSolution(ctx, in)

	for i := range in.Vehicles {
		v := &in.Vehicles[i]
		if !v.HasForcedSteps() {
			continue
		}
		steps := make([]routestate.Step, len(v.Steps))
		for k, vs := range v.Steps {
			step := routestate.Step{Type: vs.Type, JobKind: vs.JobKind, Forced: vs.Forced, Pinned: true}
			switch vs.Type {
			case model.StepJob:
				step.TaskID = vs.TaskID
			case model.StepBreak:
				step.BreakID = vs.TaskID
			}
			steps[k] = step
		}
		route := routestate.NewRouteFromSteps(ctx, v, steps)
		sol.Routes[i] = route
		for _, s := range steps {
			if s.Type == model.StepJob {
				sol.Assign(s.TaskID)
			}
		}
	}

	return sol
}
