// Package ingest decodes and validates the JSON request body described
// in spec §6 into the immutable internal/model types the solver
// consumes. It never talks to a routing engine; matrices arrive as
// plain data.
package ingest

// wireInput mirrors the top-level JSON request shape.
type wireInput struct {
	Jobs      []wireJob             `json:"jobs"`
	Shipments []wireShipment        `json:"shipments"`
	Vehicles  []wireVehicle         `json:"vehicles"`
	Matrices  map[string]wireMatrix `json:"matrices"`
	Matrix    [][]uint32            `json:"matrix"` // deprecated
}

type wireJob struct {
	ID                uint64            `json:"id"`
	Location          []float64         `json:"location"`
	LocationIndex     *uint32           `json:"location_index"`
	Setup             uint32            `json:"setup"`
	Service           uint32            `json:"service"`
	ServicePerVehicle map[string]uint32 `json:"service_per_vehicle_type"`
	Delivery          []int64           `json:"delivery"`
	Pickup            []int64           `json:"pickup"`
	Amount            []int64           `json:"amount"` // deprecated alias for delivery
	Skills            []uint32          `json:"skills"`
	Priority          int               `json:"priority"`
	TimeWindows       [][2]int64        `json:"time_windows"`
	Description       string            `json:"description"`

	hasDelivery    bool
	hasPickup      bool
	hasAmount      bool
	hasTimeWindows bool
}

type wireShipment struct {
	Pickup   wireJob  `json:"pickup"`
	Delivery wireJob  `json:"delivery"`
	Amount   []int64  `json:"amount"`
	Skills   []uint32 `json:"skills"`
	Priority int      `json:"priority"`
}

type wireVehicleCosts struct {
	Fixed   *uint32 `json:"fixed"`
	PerHour *uint32 `json:"per_hour"`
	PerKm   *uint32 `json:"per_km"`
}

type wireForcedService struct {
	ServiceAt     *uint32 `json:"service_at"`
	ServiceAfter  *uint32 `json:"service_after"`
	ServiceBefore *uint32 `json:"service_before"`
}

type wireVehicleStep struct {
	Type string  `json:"type"`
	ID   *uint64 `json:"id"`
	wireForcedService
}

type wireBreak struct {
	ID          uint64     `json:"id"`
	TimeWindows [][2]int64 `json:"time_windows"`
	Service     uint32     `json:"service"`
	Description string     `json:"description"`
	MaxLoad     []int64    `json:"max_load"`

	hasMaxLoad     bool
	hasTimeWindows bool
}

type wireVehicle struct {
	ID            uint64            `json:"id"`
	Start         []float64         `json:"start"`
	StartIndex    *uint32           `json:"start_index"`
	End           []float64         `json:"end"`
	EndIndex      *uint32           `json:"end_index"`
	Profile       string            `json:"profile"`
	Capacity      []int64           `json:"capacity"`
	Skills        []uint32          `json:"skills"`
	TimeWindow    *[2]int64         `json:"time_window"`
	TimeWindows   [][2]int64        `json:"time_windows"`
	Breaks        []wireBreak       `json:"breaks"`
	Description   string            `json:"description"`
	Costs         *wireVehicleCosts `json:"costs"`
	SpeedFactor   *float64          `json:"speed_factor"`
	ServiceType   string            `json:"service_type"`
	MaxTasks      *uint64           `json:"max_tasks"`
	MaxTravelTime *uint32           `json:"max_travel_time"`
	MaxDistance   *uint32           `json:"max_distance"`
	Steps         []wireVehicleStep `json:"steps"`

	hasTimeWindows bool
}

type wireMatrix struct {
	Durations [][]uint32 `json:"durations"`
	Distances [][]uint32 `json:"distances"`
	Costs     [][]uint32 `json:"costs"`
}
