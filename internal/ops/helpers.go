package ops

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// singleJobPositions lists unpinned Single-kind job positions: the only
// steps Relocate/OrOpt/Exchange/TwoOpt family operators are allowed to
// touch directly. Shipment halves move only as a pair, exclusively
// through PDShift — moving one half alone would desync precedence.
func singleJobPositions(r *routestate.Route) []int {
	var out []int
	for i, s := range r.Steps {
		if s.Type == model.StepJob && !s.Pinned && s.JobKind == model.Single {
			out = append(out, i)
		}
	}
	return out
}

// contiguousSingleSegments lists every contiguous run of length
// consecutive unpinned Single-kind job steps, as [from,to) ranges.
func contiguousSingleSegments(r *routestate.Route, length int) [][2]int {
	var out [][2]int
	n := len(r.Steps)
	for from := 0; from+length <= n; from++ {
		ok := true
		for k := from; k < from+length; k++ {
			s := r.Steps[k]
			if s.Type != model.StepJob || s.Pinned || s.JobKind != model.Single {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, [2]int{from, from + length})
		}
	}
	return out
}

// pickupPositions lists unpinned Pickup-kind job positions, the seeds
// PDShift scans from.
func pickupPositions(r *routestate.Route) []int {
	var out []int
	for i, s := range r.Steps {
		if s.Type == model.StepJob && !s.Pinned && s.JobKind == model.Pickup {
			out = append(out, i)
		}
	}
	return out
}

func cloneSteps(steps []routestate.Step) []routestate.Step {
	out := make([]routestate.Step, len(steps))
	copy(out, steps)
	return out
}

// applyTrialMove performs the same remove-then-insert edit TrialMove
// scores: removeFrom/removeTo/insertAt are all given in r's pre-edit
// coordinate frame.
func applyTrialMove(r *routestate.Route, removeFrom, removeTo, insertAt int, segment []routestate.Step) {
	r.Replace(removeFrom, removeTo, nil)
	at := insertAt
	switch {
	case insertAt >= removeTo:
		at = insertAt - (removeTo - removeFrom)
	case insertAt > removeFrom:
		at = removeFrom
	}
	r.Replace(at, at, segment)
}

// buildSkeleton wraps jobs in v's own Start/End markers, the shape
// RouteExchange needs when handing a job sequence to a different
// vehicle.
func buildSkeleton(v *model.Vehicle, jobs []routestate.Step) []routestate.Step {
	out := make([]routestate.Step, 0, len(jobs)+2)
	if v.Start != nil {
		out = append(out, routestate.Step{Type: model.StepStart})
	}
	out = append(out, jobs...)
	if v.End != nil {
		out = append(out, routestate.Step{Type: model.StepEnd})
	}
	return out
}

// jobSteps strips the Start/End markers from a route's steps, leaving
// only the job sequence.
func jobSteps(r *routestate.Route) []routestate.Step {
	out := make([]routestate.Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Type == model.StepJob {
			out = append(out, s)
		}
	}
	return out
}

func reverseSteps(steps []routestate.Step) []routestate.Step {
	out := make([]routestate.Step, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s
	}
	return out
}

// reverseTailKeepEnd reverses a route tail's job/break steps but pins a
// trailing End marker, if present, back at the end: an End marker's
// location always resolves from whichever route now owns it, so it
// must stay last regardless of which route's tail it was cut from.
func reverseTailKeepEnd(tail []routestate.Step) []routestate.Step {
	if len(tail) == 0 {
		return tail
	}
	if tail[len(tail)-1].Type != model.StepEnd {
		return reverseSteps(tail)
	}
	body := reverseSteps(tail[:len(tail)-1])
	return append(body, tail[len(tail)-1])
}
