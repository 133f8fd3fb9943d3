package ingest

import (
	"encoding/json"
	"io"

	"github.com/fleetroute/vrpsolver/internal/model"
)

// Parse decodes and validates a solve request body into a model.Input,
// mirroring the ingestion rules input_parser.cpp applies before a solve
// ever starts (§6, §7). Every violation returns a *model.InputError.
func Parse(r io.Reader) (*model.Input, error) {
	var w wireInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&w); err != nil {
		return nil, model.NewInputError("body", "malformed JSON: "+err.Error())
	}
	return fromWire(&w)
}

func fromWire(w *wireInput) (*model.Input, error) {
	if len(w.Jobs) == 0 && len(w.Shipments) == 0 {
		return nil, model.NewInputError("jobs", "at least one job or shipment is required")
	}
	if len(w.Vehicles) == 0 {
		return nil, model.NewInputError("vehicles", "at least one vehicle is required")
	}

	amountSize := len(w.Vehicles[0].Capacity)

	vehicles, err := parseVehicles(w.Vehicles, amountSize)
	if err != nil {
		return nil, err
	}

	tasks, err := parseJobs(w.Jobs, amountSize)
	if err != nil {
		return nil, err
	}
	shipmentTasks, err := parseShipments(w.Shipments, amountSize)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, shipmentTasks...)

	matrices, err := parseMatrices(w.Matrices, w.Matrix)
	if err != nil {
		return nil, err
	}

	return &model.Input{
		Tasks:      tasks,
		Vehicles:   vehicles,
		AmountSize: amountSize,
		Matrices:   matrices,
	}, nil
}

// --- amounts / skills / time windows -------------------------------------

func parseAmount(field string, id uint64, vals []int64, size int) (model.Amount, error) {
	if vals == nil {
		return model.NewAmount(size), nil
	}
	if len(vals) != size {
		return nil, model.NewInputErrorFor(field, id, "amount length does not match the declared capacity dimension")
	}
	out := make(model.Amount, size)
	for i, v := range vals {
		if v < 0 {
			return nil, model.NewInputErrorFor(field, id, "amount values must be nonnegative")
		}
		out[i] = v
	}
	return out, nil
}

func parseSkills(ids []uint32) model.Skills {
	if len(ids) == 0 {
		return nil
	}
	return model.NewSkills(ids...)
}

func parseTimeWindows(field string, id uint64, raw [][2]int64, present bool) ([]model.TimeWindow, error) {
	if !present {
		return []model.TimeWindow{model.DefaultTimeWindow()}, nil
	}
	if len(raw) == 0 {
		return nil, model.NewInputErrorFor(field, id, "time_windows, when present, must not be empty")
	}
	out := make([]model.TimeWindow, len(raw))
	for i, tw := range raw {
		start, end := tw[0], tw[1]
		if start < 0 || end < 0 {
			return nil, model.NewInputErrorFor(field, id, "time window bounds must be nonnegative")
		}
		if start > end {
			return nil, model.NewInputErrorFor(field, id, "time window start must not exceed end")
		}
		out[i] = model.TimeWindow{
			Start: model.ScaleFromUserDuration(model.UserDuration(start)),
			End:   model.ScaleFromUserDuration(model.UserDuration(end)),
		}
	}
	model.SortTimeWindows(out)
	return out, nil
}

func parseLocation(field string, id uint64, coords []float64, index *uint32) (model.Location, error) {
	switch {
	case index != nil && len(coords) == 2:
		return model.NewLocationFromIndexAndCoords(*index, model.Coordinates{Lon: coords[0], Lat: coords[1]}), nil
	case index != nil:
		return model.NewLocationFromIndex(*index), nil
	case len(coords) == 2:
		return model.NewLocationFromCoords(model.Coordinates{Lon: coords[0], Lat: coords[1]}), nil
	case len(coords) == 0 && index == nil:
		return model.Location{}, model.NewInputErrorFor(field, id, "a location or location_index is required")
	default:
		return model.Location{}, model.NewInputErrorFor(field, id, "location must be a [lon, lat] pair")
	}
}

// --- jobs ------------------------------------------------------------------

func parseJobs(jobs []wireJob, amountSize int) ([]model.Task, error) {
	out := make([]model.Task, 0, len(jobs))
	for _, j := range jobs {
		t, err := parseJob(j, amountSize)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseJob(j wireJob, amountSize int) (model.Task, error) {
	loc, err := parseLocation("jobs", j.ID, j.Location, j.LocationIndex)
	if err != nil {
		return model.Task{}, err
	}
	if j.Priority < 0 || j.Priority > model.MaxPriority {
		return model.Task{}, model.NewInputErrorFor("jobs.priority", j.ID, "priority must be within [0, MaxPriority]")
	}

	// amount is a deprecated alias for delivery, and only applies when
	// neither pickup nor delivery was explicitly sent (§6).
	deliverySrc := j.Delivery
	if j.hasAmount && !j.hasPickup && !j.hasDelivery {
		deliverySrc = j.Amount
	}
	delivery, err := parseAmount("jobs.delivery", j.ID, deliverySrc, amountSize)
	if err != nil {
		return model.Task{}, err
	}
	pickup, err := parseAmount("jobs.pickup", j.ID, j.Pickup, amountSize)
	if err != nil {
		return model.Task{}, err
	}

	tws, err := parseTimeWindows("jobs.time_windows", j.ID, j.TimeWindows, j.hasTimeWindows)
	if err != nil {
		return model.Task{}, err
	}

	servicePerVehicle := make(map[string]model.Duration, len(j.ServicePerVehicle))
	for k, v := range j.ServicePerVehicle {
		servicePerVehicle[k] = model.ScaleFromUserDuration(model.UserDuration(v))
	}

	return model.Task{
		ID:                    j.ID,
		Kind:                  model.Single,
		Location:              loc,
		Setup:                 model.ScaleFromUserDuration(model.UserDuration(j.Setup)),
		Service:               model.ScaleFromUserDuration(model.UserDuration(j.Service)),
		ServicePerVehicleType: servicePerVehicle,
		Delivery:              delivery,
		Pickup:                pickup,
		Skills:                parseSkills(j.Skills),
		Priority:              j.Priority,
		TimeWindows:           tws,
		Description:           j.Description,
	}, nil
}

// --- shipments --------------------------------------------------------------

func parseShipments(shipments []wireShipment, amountSize int) ([]model.Task, error) {
	out := make([]model.Task, 0, 2*len(shipments))
	for _, s := range shipments {
		amt, err := parseAmount("shipments.amount", s.Pickup.ID, s.Amount, amountSize)
		if err != nil {
			return nil, err
		}
		skills := parseSkills(s.Skills)
		priority := s.Priority

		pickupLoc, err := parseLocation("shipments.pickup", s.Pickup.ID, s.Pickup.Location, s.Pickup.LocationIndex)
		if err != nil {
			return nil, err
		}
		deliveryLoc, err := parseLocation("shipments.delivery", s.Delivery.ID, s.Delivery.Location, s.Delivery.LocationIndex)
		if err != nil {
			return nil, err
		}
		pickupTWs, err := parseTimeWindows("shipments.pickup.time_windows", s.Pickup.ID, s.Pickup.TimeWindows, s.Pickup.hasTimeWindows)
		if err != nil {
			return nil, err
		}
		deliveryTWs, err := parseTimeWindows("shipments.delivery.time_windows", s.Delivery.ID, s.Delivery.TimeWindows, s.Delivery.hasTimeWindows)
		if err != nil {
			return nil, err
		}

		pickupTask := model.Task{
			ID:          s.Pickup.ID,
			Kind:        model.Pickup,
			Location:    pickupLoc,
			Setup:       model.ScaleFromUserDuration(model.UserDuration(s.Pickup.Setup)),
			Service:     model.ScaleFromUserDuration(model.UserDuration(s.Pickup.Service)),
			Pickup:      amt,
			Delivery:    model.NewAmount(amountSize),
			Skills:      skills,
			Priority:    priority,
			TimeWindows: pickupTWs,
			Description: s.Pickup.Description,
			Shipment:    model.ShipmentRef{HasSibling: true, SiblingID: s.Delivery.ID},
		}
		deliveryTask := model.Task{
			ID:          s.Delivery.ID,
			Kind:        model.Delivery,
			Location:    deliveryLoc,
			Setup:       model.ScaleFromUserDuration(model.UserDuration(s.Delivery.Setup)),
			Service:     model.ScaleFromUserDuration(model.UserDuration(s.Delivery.Service)),
			Delivery:    amt,
			Pickup:      model.NewAmount(amountSize),
			Skills:      skills,
			Priority:    priority,
			TimeWindows: deliveryTWs,
			Description: s.Delivery.Description,
			Shipment:    model.ShipmentRef{HasSibling: true, SiblingID: s.Pickup.ID},
		}
		out = append(out, pickupTask, deliveryTask)
	}
	return out, nil
}

// --- vehicles ----------------------------------------------------------------

func parseVehicles(raw []wireVehicle, amountSize int) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, 0, len(raw))
	for _, v := range raw {
		vs, err := parseVehicle(v, amountSize)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// parseVehicle returns one Vehicle per declared time window, all
// sharing ID, per the §3 expansion rule.
func parseVehicle(v wireVehicle, amountSize int) ([]model.Vehicle, error) {
	capacity, err := parseAmount("vehicles.capacity", v.ID, v.Capacity, amountSize)
	if err != nil {
		return nil, err
	}

	var start, end *model.Location
	if len(v.Start) > 0 || v.StartIndex != nil {
		loc, err := parseLocation("vehicles.start", v.ID, v.Start, v.StartIndex)
		if err != nil {
			return nil, err
		}
		start = &loc
	}
	if len(v.End) > 0 || v.EndIndex != nil {
		loc, err := parseLocation("vehicles.end", v.ID, v.End, v.EndIndex)
		if err != nil {
			return nil, err
		}
		end = &loc
	}
	if start == nil && end == nil {
		return nil, model.NewInputErrorFor("vehicles", v.ID, "a vehicle needs at least a start or an end")
	}

	profile := v.Profile
	if profile == "" {
		profile = model.DefaultProfile
	}

	costs := model.VehicleCosts{Fixed: 0, PerHour: model.DefaultCostPerHour, PerKm: model.DefaultCostPerKm}
	if v.Costs != nil {
		if v.Costs.Fixed != nil {
			costs.Fixed = model.UserCost(*v.Costs.Fixed)
		}
		if v.Costs.PerHour != nil {
			costs.PerHour = model.UserCost(*v.Costs.PerHour)
		}
		if v.Costs.PerKm != nil {
			costs.PerKm = model.UserCost(*v.Costs.PerKm)
		}
	}

	speedFactor := 1.0
	if v.SpeedFactor != nil {
		speedFactor = *v.SpeedFactor
		if speedFactor <= 0 || speedFactor > model.MaxSpeedFactor {
			return nil, model.NewInputErrorFor("vehicles.speed_factor", v.ID, "speed_factor must be within (0, MaxSpeedFactor]")
		}
	}

	breaks, err := parseBreaks(v.Breaks, v.ID, amountSize)
	if err != nil {
		return nil, err
	}

	steps, err := parseSteps(v.Steps, v.ID)
	if err != nil {
		return nil, err
	}

	tws, err := vehicleTimeWindows(v)
	if err != nil {
		return nil, err
	}

	vehicles := make([]model.Vehicle, 0, len(tws))
	for _, tw := range tws {
		vehicle := model.Vehicle{
			ID:          v.ID,
			Start:       start,
			End:         end,
			Profile:     profile,
			Capacity:    capacity,
			Skills:      parseSkills(v.Skills),
			TimeWindow:  tw,
			Breaks:      breaks,
			Description: v.Description,
			Costs:       costs,
			SpeedFactor: speedFactor,
			ServiceType: v.ServiceType,
			Steps:       steps,
		}
		if v.MaxTasks != nil {
			vehicle.HasMaxTasks = true
			vehicle.MaxTasks = *v.MaxTasks
		}
		if v.MaxTravelTime != nil {
			vehicle.HasMaxTravelTime = true
			vehicle.MaxTravelTime = model.ScaleFromUserDuration(model.UserDuration(*v.MaxTravelTime))
		}
		if v.MaxDistance != nil {
			vehicle.HasMaxDistance = true
			vehicle.MaxDistance = model.ScaleFromUserDistance(model.UserDistance(*v.MaxDistance))
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

// vehicleTimeWindows resolves the singular `time_window` and plural
// `time_windows` fields into the list a vehicle is cloned across. Both
// present is an error; neither present defaults to the full timeline.
func vehicleTimeWindows(v wireVehicle) ([]model.TimeWindow, error) {
	if v.TimeWindow != nil && v.hasTimeWindows {
		return nil, model.NewInputErrorFor("vehicles.time_window", v.ID, "time_window and time_windows are mutually exclusive")
	}
	if v.TimeWindow != nil {
		start, end := v.TimeWindow[0], v.TimeWindow[1]
		if start < 0 || end < 0 || start > end {
			return nil, model.NewInputErrorFor("vehicles.time_window", v.ID, "invalid time window bounds")
		}
		return []model.TimeWindow{{
			Start: model.ScaleFromUserDuration(model.UserDuration(start)),
			End:   model.ScaleFromUserDuration(model.UserDuration(end)),
		}}, nil
	}
	return parseTimeWindows("vehicles.time_windows", v.ID, v.TimeWindows, v.hasTimeWindows)
}

func parseBreaks(raw []wireBreak, vehicleID uint64, amountSize int) ([]model.Break, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]model.Break, 0, len(raw))
	for _, b := range raw {
		tws, err := parseTimeWindows("vehicles.breaks.time_windows", b.ID, b.TimeWindows, b.hasTimeWindows)
		if err != nil {
			return nil, err
		}
		br := model.Break{
			ID:          b.ID,
			TimeWindows: tws,
			Service:     model.ScaleFromUserDuration(model.UserDuration(b.Service)),
			Description: b.Description,
		}
		if b.hasMaxLoad {
			maxLoad, err := parseAmount("vehicles.breaks.max_load", b.ID, b.MaxLoad, amountSize)
			if err != nil {
				return nil, err
			}
			br.MaxLoad = maxLoad
			br.HasMaxLoad = true
		}
		out = append(out, br)
	}
	// Sorted by start then end of the earliest window, per §3 Break.
	sortBreaksByWindow(out)
	return out, nil
}

func sortBreaksByWindow(breaks []model.Break) {
	less := func(i, j int) bool {
		wi, wj := breaks[i].TimeWindows[0], breaks[j].TimeWindows[0]
		return model.Less(wi, wj)
	}
	for i := 1; i < len(breaks); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			breaks[j], breaks[j-1] = breaks[j-1], breaks[j]
		}
	}
}

func parseSteps(raw []wireVehicleStep, vehicleID uint64) ([]model.VehicleStep, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]model.VehicleStep, 0, len(raw))
	for _, s := range raw {
		var stepType model.StepType
		switch s.Type {
		case "start":
			stepType = model.StepStart
		case "job", "pickup", "delivery":
			stepType = model.StepJob
		case "break":
			stepType = model.StepBreak
		case "end":
			stepType = model.StepEnd
		default:
			return nil, model.NewInputErrorFor("vehicles.steps.type", vehicleID, "unknown step type: "+s.Type)
		}

		var jobKind model.JobType
		switch s.Type {
		case "pickup":
			jobKind = model.Pickup
		case "delivery":
			jobKind = model.Delivery
		default:
			jobKind = model.Single
		}

		var taskID uint64
		if s.ID != nil {
			taskID = *s.ID
		} else if stepType == model.StepJob || stepType == model.StepBreak {
			return nil, model.NewInputErrorFor("vehicles.steps.id", vehicleID, "job and break steps require an id")
		}

		forced := model.ForcedService{}
		if s.ServiceAt != nil {
			d := model.ScaleFromUserDuration(model.UserDuration(*s.ServiceAt))
			forced.At = &d
		}
		if s.ServiceAfter != nil {
			d := model.ScaleFromUserDuration(model.UserDuration(*s.ServiceAfter))
			forced.After = &d
		}
		if s.ServiceBefore != nil {
			d := model.ScaleFromUserDuration(model.UserDuration(*s.ServiceBefore))
			forced.Before = &d
		}

		out = append(out, model.VehicleStep{
			Type:    stepType,
			JobKind: jobKind,
			TaskID:  taskID,
			Forced:  forced,
		})
	}
	return out, nil
}

// --- matrices ----------------------------------------------------------------

func parseMatrices(raw map[string]wireMatrix, deprecatedMatrix [][]uint32) (map[string]model.Matrices, error) {
	out := make(map[string]model.Matrices, len(raw))
	if len(raw) == 0 {
		// Deprecated top-level `matrix` only applies when `matrices` is
		// entirely absent (§6).
		if len(deprecatedMatrix) > 0 {
			out[model.DefaultProfile] = model.Matrices{Durations: toUserDurationMatrix(deprecatedMatrix)}
		}
		return out, nil
	}
	for profile, m := range raw {
		out[profile] = model.Matrices{
			Durations: toUserDurationMatrix(m.Durations),
			Distances: toUserDistanceMatrix(m.Distances),
			Costs:     toUserCostMatrix(m.Costs),
		}
	}
	return out, nil
}

func toUserDurationMatrix(m [][]uint32) [][]model.UserDuration {
	if m == nil {
		return nil
	}
	out := make([][]model.UserDuration, len(m))
	for i, row := range m {
		out[i] = make([]model.UserDuration, len(row))
		for j, v := range row {
			out[i][j] = model.UserDuration(v)
		}
	}
	return out
}

func toUserDistanceMatrix(m [][]uint32) [][]model.UserDistance {
	if m == nil {
		return nil
	}
	out := make([][]model.UserDistance, len(m))
	for i, row := range m {
		out[i] = make([]model.UserDistance, len(row))
		for j, v := range row {
			out[i][j] = model.UserDistance(v)
		}
	}
	return out
}

func toUserCostMatrix(m [][]uint32) [][]model.UserCost {
	if m == nil {
		return nil
	}
	out := make([][]model.UserCost, len(m))
	for i, row := range m {
		out[i] = make([]model.UserCost, len(row))
		for j, v := range row {
			out[i][j] = model.UserCost(v)
		}
	}
	return out
}
