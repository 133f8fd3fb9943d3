package model

// ForcedService narrows the allowed service interval at a pinned step
// before the usual time-window intersection (§9 Forced steps).
type ForcedService struct {
	At     *Duration
	After  *Duration
	Before *Duration
}

// VehicleStep is one entry of a vehicle's user-supplied forced-step
// skeleton (§6 `steps`).
type VehicleStep struct {
	Type    StepType
	JobKind JobType // meaningful only when Type == StepJob
	TaskID  uint64  // meaningful only when Type == StepJob or StepBreak
	Forced  ForcedService
}

// VehicleCosts is the per-vehicle cost triple.
type VehicleCosts struct {
	Fixed   UserCost
	PerHour UserCost
	PerKm   UserCost
}

// Vehicle carries everything needed to build and cost a Route for it
// (§3 Vehicle). A vehicle declared with multiple time windows in the
// input is expanded by the ingestion layer into one Vehicle clone per
// window, all sharing ID.
type Vehicle struct {
	ID          uint64
	Start       *Location
	End         *Location
	Profile     string
	Capacity    Amount
	Skills      Skills
	TimeWindow  TimeWindow
	Breaks      []Break
	Description string
	Costs       VehicleCosts
	SpeedFactor float64
	ServiceType string

	HasMaxTasks      bool
	MaxTasks         uint64
	HasMaxTravelTime bool
	MaxTravelTime    Duration
	HasMaxDistance   bool
	MaxDistance      Distance

	Steps []VehicleStep
}

// EffectiveMaxTasks returns the configured cap, or DefaultMaxTasks.
func (v Vehicle) EffectiveMaxTasks() uint64 {
	if v.HasMaxTasks {
		return v.MaxTasks
	}
	return DefaultMaxTasks
}

func (v Vehicle) EffectiveMaxTravelTime() Duration {
	if v.HasMaxTravelTime {
		return v.MaxTravelTime
	}
	return DefaultMaxTravelTime
}

func (v Vehicle) EffectiveMaxDistance() Distance {
	if v.HasMaxDistance {
		return v.MaxDistance
	}
	return DefaultMaxDistance
}

// HasForcedSteps reports whether the vehicle carries a pinned skeleton.
func (v Vehicle) HasForcedSteps() bool { return len(v.Steps) > 0 }
