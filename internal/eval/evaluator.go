// Package eval implements the Evaluator: given a structural edit
// proposed against one or two Routes, it reports whether the edit is
// feasible and, if so, its exact net cost delta. Evaluate never mutates
// either Route it is handed. In internal/ops, relocate and orOpt score
// their candidate moves through it; the other operators call the
// Route's own TrialMove/TrialFull directly.
package eval

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// Proposal describes "remove indices [RemoveFrom,RemoveTo) from From and
// insert Segment (possibly reversed) at InsertAt in To". From and To may
// be the same Route (an intra-route move) or two different Routes (an
// inter-route move); RemoveTo == RemoveFrom means a pure insertion, and
// a nil Segment means a pure removal.
type Proposal struct {
	From       *routestate.Route
	RemoveFrom int
	RemoveTo   int

	To       *routestate.Route
	InsertAt int
	Segment  []routestate.Step
	Reversed bool
}

// Result is the Evaluator's verdict on a Proposal.
type Result struct {
	Feasible bool
	Delta    model.Cost
}

// Evaluate scores a Proposal without mutating any Route. Intra-route
// proposals (From == To) are judged as a single combined edit so the
// removal and insertion are checked against one consistent base route;
// inter-route proposals are judged as two independent edits, one per
// route, with their deltas summed.
func Evaluate(p Proposal) Result {
	segment := p.Segment
	if p.Reversed {
		segment = reverseSegment(segment)
	}

	if p.From == p.To {
		feasible, delta := p.From.TrialMove(p.RemoveFrom, p.RemoveTo, p.InsertAt, segment)
		if !feasible {
			return Result{Feasible: false, Delta: model.InfiniteCost}
		}
		return Result{Feasible: true, Delta: delta}
	}

	fromDelta := p.From.RemovalCost(p.RemoveFrom, p.RemoveTo)
	if fromDelta >= model.InfiniteCost {
		return Result{Feasible: false, Delta: model.InfiniteCost}
	}
	toDelta := p.To.AdditionCost(segment, p.InsertAt)
	if toDelta >= model.InfiniteCost {
		return Result{Feasible: false, Delta: model.InfiniteCost}
	}
	return Result{Feasible: true, Delta: fromDelta + toDelta}
}

func reverseSegment(seg []routestate.Step) []routestate.Step {
	if seg == nil {
		return nil
	}
	out := make([]routestate.Step, len(seg))
	for i, s := range seg {
		out[len(seg)-1-i] = s
	}
	return out
}
