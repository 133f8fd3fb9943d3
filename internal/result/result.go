// Package result builds the output JSON document (§6) from a finished
// Solution State: aggregate summary, per-vehicle routes with per-step
// timing/load, and the unassigned-task list.
package result

import (
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/routestate"
)

// Summary is the output document's aggregate block.
type Summary struct {
	Cost       model.UserCost     `json:"cost"`
	Duration   model.UserDuration `json:"duration"`
	Distance   model.UserDistance `json:"distance"`
	Unassigned int                `json:"unassigned"`
	Violations map[string]int     `json:"violations,omitempty"`
	Timeout    bool               `json:"timeout,omitempty"`
}

// Step is one entry of an output route.
type Step struct {
	Type        string             `json:"type"`
	ID          *uint64            `json:"id,omitempty"`
	Location    []float64          `json:"location,omitempty"`
	Arrival     model.UserDuration `json:"arrival"`
	Duration    model.UserDuration `json:"duration"`
	Service     model.UserDuration `json:"service"`
	WaitingTime model.UserDuration `json:"waiting_time"`
	Load        model.Amount       `json:"load,omitempty"`
}

// Route is one output route, keyed by vehicle id.
type Route struct {
	Vehicle  uint64             `json:"vehicle"`
	Cost     model.UserCost     `json:"cost"`
	Duration model.UserDuration `json:"duration"`
	Distance model.UserDistance `json:"distance"`
	Steps    []Step             `json:"steps"`
}

// Unassigned is one task the solution could not place.
type Unassigned struct {
	ID       uint64    `json:"id"`
	Type     string    `json:"type"`
	Location []float64 `json:"location,omitempty"`
}

// Output is the top-level output document (§6).
type Output struct {
	Summary    Summary      `json:"summary"`
	Routes     []Route      `json:"routes"`
	Unassigned []Unassigned `json:"unassigned"`
}

// Build renders sol into the output document. timeout marks whether
// the search driver's deadline fired before a local optimum was
// reached for every worker.
func Build(in *model.Input, sol *routestate.Solution, timeout bool) Output {
	tasks := in.TaskByID()
	out := Output{
		Unassigned: make([]Unassigned, 0, sol.UnassignedCount()),
	}

	var totalCost model.Cost
	var totalDuration model.Duration
	var totalDistance model.Distance
	violations := map[string]int{}

	for _, r := range sol.Routes {
		if !r.Feasible && r.TaskCount() > 0 {
			violations[r.Violation.String()]++
		}
		out.Routes = append(out.Routes, buildRoute(r, tasks))
		totalCost += r.TotalCost()
		totalDuration += r.TotalTravel()
		totalDistance += r.TotalDistance()
	}

	for id := range sol.Unassigned {
		t := tasks[id]
		out.Unassigned = append(out.Unassigned, Unassigned{
			ID:       id,
			Type:     jobKindName(t.Kind),
			Location: locationLonLat(t.Location),
		})
	}

	out.Summary = Summary{
		Cost:       model.ScaleToUserCost(totalCost),
		Duration:   model.ScaleToUserDuration(totalDuration),
		Distance:   model.ScaleToUserDistance(totalDistance),
		Unassigned: sol.UnassignedCount(),
		Violations: violations,
		Timeout:    timeout,
	}
	return out
}

func buildRoute(r *routestate.Route, tasks map[uint64]*model.Task) Route {
	summaries := r.StepSummaries()
	steps := make([]Step, len(summaries))
	for i, s := range summaries {
		steps[i] = buildStep(s, tasks)
	}
	return Route{
		Vehicle:  r.Vehicle.ID,
		Cost:     model.ScaleToUserCost(r.TotalCost()),
		Duration: model.ScaleToUserDuration(r.TotalTravel()),
		Distance: model.ScaleToUserDistance(r.TotalDistance()),
		Steps:    steps,
	}
}

func buildStep(s routestate.StepSummary, tasks map[uint64]*model.Task) Step {
	step := Step{
		Type:        stepTypeName(s),
		Location:    locationLonLat(s.Location),
		Arrival:     model.ScaleToUserDuration(s.Arrival),
		Duration:    model.ScaleToUserDuration(s.CumTravel),
		Service:     model.ScaleToUserDuration(s.Service),
		WaitingTime: model.ScaleToUserDuration(s.Waiting),
		Load:        s.Load,
	}
	if s.Type == model.StepJob {
		id := s.TaskID
		step.ID = &id
	}
	return step
}

func stepTypeName(s routestate.StepSummary) string {
	if s.Type != model.StepJob {
		return s.Type.String()
	}
	return jobKindName(s.JobKind)
}

func jobKindName(k model.JobType) string {
	switch k {
	case model.Pickup:
		return "pickup"
	case model.Delivery:
		return "delivery"
	default:
		return "job"
	}
}

// locationLonLat renders a Location as [lon, lat] when coordinates are
// known, nil otherwise (matrix-index-only locations have none to
// report).
func locationLonLat(loc model.Location) []float64 {
	if !loc.HasCoords {
		return nil
	}
	return []float64{loc.Coords.Lon, loc.Coords.Lat}
}
