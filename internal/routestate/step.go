package routestate

import "github.com/fleetroute/vrpsolver/internal/model"

// Step is one entry of a Route: a vehicle start/end marker, a job
// (single/pickup/delivery) visit, or a break.
type Step struct {
	Type    model.StepType
	JobKind model.JobType // meaningful only when Type == StepJob
	TaskID  uint64        // meaningful when Type == StepJob
	BreakID uint64        // meaningful when Type == StepBreak
	Forced  model.ForcedService
	Pinned  bool // came from a forced step skeleton; operators must not reorder it
}

// location resolves the Step's geographic location from shared context.
func (s Step) location(ctx *Context, v *model.Vehicle) model.Location {
	switch s.Type {
	case model.StepStart:
		if v.Start != nil {
			return *v.Start
		}
	case model.StepEnd:
		if v.End != nil {
			return *v.End
		}
	case model.StepJob:
		return ctx.task(s.TaskID).Location
	case model.StepBreak:
		// Breaks have no location of their own; they occur in place,
		// at whichever location the vehicle currently sits.
	}
	return model.Location{}
}

// service returns the (possibly forced) service duration for this step.
func (s Step) service(ctx *Context, v *model.Vehicle) model.Duration {
	switch s.Type {
	case model.StepJob:
		return ctx.task(s.TaskID).ServiceFor(v.ServiceType)
	case model.StepBreak:
		for _, b := range v.Breaks {
			if b.ID == s.BreakID {
				return b.Service
			}
		}
	}
	return 0
}

// timeWindows returns the candidate windows service at this step must
// fall within, already sorted ascending.
func (s Step) timeWindows(ctx *Context, v *model.Vehicle) []model.TimeWindow {
	switch s.Type {
	case model.StepStart, model.StepEnd:
		return []model.TimeWindow{v.TimeWindow}
	case model.StepJob:
		return ctx.task(s.TaskID).TimeWindows
	case model.StepBreak:
		for _, b := range v.Breaks {
			if b.ID == s.BreakID {
				return b.TimeWindows
			}
		}
	}
	return []model.TimeWindow{model.DefaultTimeWindow()}
}

// pickupAmount and deliveryAmount report this step's load contribution.
// A job's delivery is carried from the vehicle start and removed at the
// step; its pickup is added at the step (§3 Task, §4.2 fwd_load).
func (s Step) pickupAmount(ctx *Context) model.Amount {
	if s.Type != model.StepJob {
		return nil
	}
	return ctx.task(s.TaskID).Pickup
}

func (s Step) deliveryAmount(ctx *Context) model.Amount {
	if s.Type != model.StepJob {
		return nil
	}
	return ctx.task(s.TaskID).Delivery
}
