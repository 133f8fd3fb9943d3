package model

// Break is a scheduled non-service pause belonging to a vehicle.
type Break struct {
	ID          uint64
	TimeWindows []TimeWindow
	Service     Duration
	Description string
	// MaxLoad, when set, bounds the vehicle's load at the break.
	MaxLoad    Amount
	HasMaxLoad bool
}
