package routestate

import "github.com/fleetroute/vrpsolver/internal/model"

// evaluation is the pure result of walking a candidate Step sequence:
// every cache Route exposes, plus whether the sequence is feasible and,
// if not, which invariant broke first. evaluate never mutates its
// inputs, matching the Evaluator contract of spec §4.3.
type evaluation struct {
	steps       []Step
	fwdLoad     []model.Amount
	earliest    []model.Duration
	latest      []model.Duration
	fwdCost     []model.Cost
	fwdDistance []model.Distance
	fwdTravel   []model.Duration
	pdRank      map[uint64]int

	feasible  bool
	violation model.Violation
}

// addAmount adds delta onto base, treating a nil delta (break/start/end
// steps carry none) as the zero vector.
func addAmount(base, delta model.Amount) model.Amount {
	if delta == nil {
		return base
	}
	if base == nil {
		return delta.Clone()
	}
	return base.Add(delta)
}

func subAmount(base, delta model.Amount) model.Amount {
	if delta == nil {
		return base
	}
	if base == nil {
		base = model.NewAmount(len(delta))
	}
	return base.Sub(delta)
}

func withinCapacity(load, capacity model.Amount) bool {
	for i, v := range load {
		if v < 0 {
			return false
		}
		if i < len(capacity) && v > capacity[i] {
			return false
		}
	}
	return true
}

func withinMaxLoad(load, maxLoad model.Amount) bool {
	for i, v := range load {
		if i < len(maxLoad) && v > maxLoad[i] {
			return false
		}
	}
	return true
}

// evaluate walks steps once forward (load, earliest, cost, distance,
// travel, and the chosen window's end per step) and once backward
// (latest), following spec §4.2/§4.3 exactly: earliest/latest,
// prefix cost/distance/travel sums, pd_rank, and every feasibility
// check a Route must uphold.
func evaluate(ctx *Context, v *model.Vehicle, steps []Step) *evaluation {
	n := len(steps)
	eval := &evaluation{
		steps:       steps,
		fwdLoad:     make([]model.Amount, n),
		earliest:    make([]model.Duration, n),
		latest:      make([]model.Duration, n),
		fwdCost:     make([]model.Cost, n),
		fwdDistance: make([]model.Distance, n),
		fwdTravel:   make([]model.Duration, n),
		pdRank:      make(map[uint64]int),
		feasible:    true,
	}
	if n == 0 {
		return eval
	}

	windowEnd := make([]model.Duration, n)
	legTravel := make([]model.Duration, n) // legTravel[k] = travel duration arriving at k

	// A vehicle starts out carrying every single-job delivery it will
	// drop off along the route; pickups (including a shipment's goods,
	// later dropped at its delivery half) add to that load as they're
	// collected (§3 Task, §4.2 fwd_load).
	var load model.Amount
	for _, s := range steps {
		if s.Type == model.StepJob {
			if t := ctx.task(s.TaskID); t.IsSingle() {
				load = addAmount(load, t.Delivery)
			}
		}
	}
	if !withinCapacity(load, v.Capacity) {
		eval.feasible = false
		eval.violation = model.ViolationLoad
	}

	var (
		currentLocation model.Location
		haveLocation    bool
		departure       model.Duration = v.TimeWindow.Start
		cost            model.Cost
		distance        model.Distance
		travel          model.Duration
		jobCount        int
	)

	for k, step := range steps {
		loc := step.location(ctx, v)
		moves := step.Type != model.StepBreak
		var legDuration model.Duration
		var legDistance model.Distance
		var legCost model.Cost
		if moves && haveLocation {
			legDuration = ctx.Oracle.LocationDuration(v.Profile, v.SpeedFactor, currentLocation, loc)
			legDistance = ctx.Oracle.LocationDistance(v.Profile, currentLocation, loc)
			legCost = ctx.Oracle.LocationCost(v.Profile, v.SpeedFactor, v.Costs, currentLocation, loc)
			if legDuration >= model.InfiniteDuration {
				eval.feasible = false
				eval.violation = model.ViolationMaxTravelTime
			}
			// An unknown distance (durations-only input) counts as zero,
			// except against a vehicle that declares max_distance.
			if legDistance >= model.InfiniteDistance {
				legDistance = 0
				if v.HasMaxDistance {
					eval.feasible = false
					eval.violation = model.ViolationMaxDistance
				}
			}
		}

		arrival := departure + legDuration
		windows := step.timeWindows(ctx, v)
		forced := step.Forced

		serviceStart, end, ok := chooseServiceStart(arrival, windows, forced)
		if !ok {
			eval.feasible = false
			eval.violation = model.ViolationDelay
			serviceStart = arrival
			end = model.InfiniteDuration
		}

		switch step.Type {
		case model.StepJob:
			t := ctx.task(step.TaskID)
			if !t.Skills.SubsetOf(v.Skills) {
				eval.feasible = false
				eval.violation = model.ViolationSkills
			}
			load = subAmount(load, t.Delivery)
			load = addAmount(load, t.Pickup)
			if !withinCapacity(load, v.Capacity) {
				eval.feasible = false
				eval.violation = model.ViolationLoad
			}
			if t.IsPickup() {
				eval.pdRank[t.ID] = k
			}
			if t.IsDelivery() && t.Shipment.HasSibling {
				if rank, ok := eval.pdRank[t.Shipment.SiblingID]; !ok || rank >= k {
					eval.feasible = false
					eval.violation = model.ViolationPrecedence
				}
			}
			jobCount++
			if uint64(jobCount) > v.EffectiveMaxTasks() {
				eval.feasible = false
				eval.violation = model.ViolationMaxTasks
			}
		case model.StepBreak:
			for _, b := range v.Breaks {
				if b.ID == step.BreakID && b.HasMaxLoad && !withinMaxLoad(load, b.MaxLoad) {
					eval.feasible = false
					eval.violation = model.ViolationMaxLoad
				}
			}
		}

		serviceDuration := step.service(ctx, v)
		departure = serviceStart + serviceDuration
		if moves {
			cost += legCost
			distance += legDistance
			travel += legDuration
			currentLocation = loc
			haveLocation = true
		}

		eval.fwdLoad[k] = load.Clone()
		eval.earliest[k] = serviceStart
		eval.fwdCost[k] = cost
		eval.fwdDistance[k] = distance
		eval.fwdTravel[k] = travel
		windowEnd[k] = end
		legTravel[k] = legDuration
	}

	if travel > v.EffectiveMaxTravelTime() {
		eval.feasible = false
		eval.violation = model.ViolationMaxTravelTime
	}
	if distance > v.EffectiveMaxDistance() {
		eval.feasible = false
		eval.violation = model.ViolationMaxDistance
	}

	// Backward pass: latest[k] is bounded by this step's own window end
	// and by how much slack remains before the next step's latest,
	// net of the travel and service between them.
	eval.latest[n-1] = windowEnd[n-1]
	if eval.latest[n-1] < eval.earliest[n-1] {
		eval.feasible = false
		eval.violation = model.ViolationDelay
	}
	for k := n - 2; k >= 0; k-- {
		next := steps[k+1]
		nextService := next.service(ctx, v)
		bound := eval.latest[k+1] - legTravel[k+1] - nextService
		eval.latest[k] = windowEnd[k]
		if bound < eval.latest[k] {
			eval.latest[k] = bound
		}
		if eval.latest[k] < eval.earliest[k] {
			eval.feasible = false
			eval.violation = model.ViolationDelay
		}
	}

	return eval
}

// chooseServiceStart finds the earliest feasible service start at or
// after arrival that lies in one of windows, honoring forced
// service_at/after/before narrowing (§9 Forced steps). When
// forced.At is set the window list is trusted to have been satisfied
// by the caller that pinned the step, so it is honored unconditionally.
func chooseServiceStart(arrival model.Duration, windows []model.TimeWindow, forced model.ForcedService) (start, end model.Duration, ok bool) {
	if forced.At != nil {
		e := model.InfiniteDuration
		if forced.Before != nil {
			e = *forced.Before
		}
		return *forced.At, e, true
	}
	lower := arrival
	if forced.After != nil && *forced.After > lower {
		lower = *forced.After
	}
	for _, w := range windows {
		if w.End < lower {
			continue
		}
		candidate := lower
		if w.Start > candidate {
			candidate = w.Start
		}
		e := w.End
		if forced.Before != nil {
			if candidate > *forced.Before {
				continue
			}
			if *forced.Before < e {
				e = *forced.Before
			}
		}
		return candidate, e, true
	}
	return 0, 0, false
}
