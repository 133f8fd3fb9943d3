package construct

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// Run dispatches to the heuristic named by params.Heuristic, producing
// one seed Solution State (§4.4 Heuristic Parameters).
func Run(ctx *routestate.Context, in *model.Input, params model.HeuristicParameters) *routestate.Solution {
	switch params.Heuristic {
	case model.HeuristicDynamic:
		return RunDynamic(ctx, in, params)
	case model.HeuristicInitRoutes:
		return RunInitRoutes(ctx, in)
	default: // model.HeuristicBasic
		return RunBasic(ctx, in, params)
	}
}
