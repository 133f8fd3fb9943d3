package routestate

import "github.com/fleetroute/vrpsolver/internal/model"

// StepSummary is the externally-reportable shape of one committed
// Step: everything cmd/solve's result writer needs (§6 output schema)
// that the Route's dense caches don't already expose per-step on their
// own, reconstructed from the same forward pass evaluate() runs rather
// than recomputed against a different arrival/waiting definition.
type StepSummary struct {
	Type       model.StepType
	JobKind    model.JobType
	TaskID     uint64
	BreakID    uint64
	Location   model.Location
	Arrival    model.Duration
	Service    model.Duration
	Waiting    model.Duration
	CumTravel  model.Duration // cumulative travel time up to and including this step
	Load       model.Amount
}

// StepSummaries reports arrival/service/waiting/load for every step on
// the route, in route order.
func (r *Route) StepSummaries() []StepSummary {
	out := make([]StepSummary, len(r.Steps))
	departure := r.Vehicle.TimeWindow.Start
	for k, step := range r.Steps {
		var legTravel model.Duration
		if k > 0 {
			legTravel = r.FwdTravel[k] - r.FwdTravel[k-1]
		}
		arrival := departure + legTravel
		serviceStart := r.Earliest[k]
		waiting := serviceStart - arrival
		if waiting < 0 {
			waiting = 0
		}
		svc := step.service(r.ctx, r.Vehicle)
		out[k] = StepSummary{
			Type:      step.Type,
			JobKind:   step.JobKind,
			TaskID:    step.TaskID,
			BreakID:   step.BreakID,
			Location:  step.location(r.ctx, r.Vehicle),
			Arrival:   arrival,
			Service:   svc,
			Waiting:   waiting,
			CumTravel: r.FwdTravel[k],
			Load:      r.FwdLoad[k],
		}
		departure = serviceStart + svc
	}
	return out
}
