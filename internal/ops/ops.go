// Package ops implements the closed set of nineteen local-search
// operators of spec.md §4.6: each proposes its single best feasible
// move (gain) and, once chosen by the search driver, applies it.
// Operators are concrete types switched over by Priority, never opened
// to runtime registration, per §9's tagged-union guidance.
package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// Move is a self-contained proposal an Operator found: its cost delta,
// the (route, step) it touches first for the driver's tie-break order,
// and a closure that performs the edit on whichever Solution it is
// later handed. Closing over route indices rather than *Route pointers
// keeps Apply correct even if the driver evaluates a move against one
// Solution and commits it to a structurally identical clone.
type Move struct {
	Operator model.OperatorName
	Delta    model.Cost
	RouteID  uint64
	StepIdx  int
	run      func(sol *routestate.Solution)
}

// Operator is the shared interface every move family implements.
type Operator interface {
	Name() model.OperatorName
	BestMove(ctx *routestate.Context, sol *routestate.Solution) (Move, bool)
}

// Apply performs move's edit against sol.
func Apply(sol *routestate.Solution, move Move) {
	move.run(sol)
}

// Priority is the fixed order the search driver's best-improvement loop
// tries operators in (spec.md §4.6's table order); ties between two
// operators' equally-good deltas are broken by this order, then by
// Move's own (RouteID, StepIdx).
func Priority() []Operator {
	return []Operator{
		unassignedExchange{},
		relocate{}, intraRelocate{},
		orOpt{}, intraOrOpt{},
		crossExchange{}, intraCrossExchange{},
		mixedExchange{}, intraMixedExchange{},
		twoOpt{}, intraTwoOpt{},
		reverseTwoOpt{},
		intraExchange{},
		pdShift{},
		routeExchange{},
		swapStar{},
		routeSplit{},
		priorityReplace{},
		tspFix{},
	}
}

// ByName returns the Operator whose Name() matches name, for a config
// file's operator priority override to reassemble a custom Priority
// order without this package exposing its concrete types.
func ByName(name model.OperatorName) (Operator, bool) {
	for _, op := range Priority() {
		if op.Name() == name {
			return op, true
		}
	}
	return nil, false
}

// better reports whether candidate should replace current as the best
// move found so far: strictly cheaper delta wins outright; an equal
// delta falls back to the (RouteID, StepIdx) tie-break (§4.6).
func better(candidate, current Move, haveCurrent bool) bool {
	if !haveCurrent {
		return true
	}
	if candidate.Delta != current.Delta {
		return candidate.Delta < current.Delta
	}
	if candidate.RouteID != current.RouteID {
		return candidate.RouteID < current.RouteID
	}
	return candidate.StepIdx < current.StepIdx
}
