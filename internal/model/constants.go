// Package model holds the immutable domain types ingested for a solve
// run: tasks, vehicles, breaks, time windows and the scaling constants
// the rest of the solver relies on for integer-only arithmetic.
package model

import "math"

// Duration, Distance and Cost are stored internally as scaled signed
// 64-bit integers so that arithmetic never needs floating point and
// never overflows across the largest practical problem size.
type (
	Duration int64
	Distance int64
	Cost     int64
)

// UserDuration, UserDistance and UserCost are the unscaled values as
// they appear on the wire (JSON input/output).
type (
	UserDuration uint32
	UserDistance uint32
	UserCost     uint32
)

const (
	// DurationFactor: internal time unit is the hundredth of a second.
	DurationFactor Duration = 100
	// DistanceFactor scales distances consistently inside cost evaluations.
	DistanceFactor Distance = 360
	// CostFactor lets a cost-per-hour translate to cost-per-second without
	// floating point.
	CostFactor Cost = 3600

	DefaultCostPerHour UserCost = 3600
	DefaultCostPerKm   UserCost = 0

	MaxPriority         = 100
	MaxSpeedFactor      = 5.0
	MaxExplorationLevel = 5

	DefaultExplorationLevel = 5
	DefaultThreads          = 4

	DefaultProfile = "car"
)

// InfiniteCost leaves headroom (3/4 of int64 max) so summing a handful
// of infinities during delta-cost accumulation never overflows.
const InfiniteCost Cost = Cost(3 * (math.MaxInt64 / 4))

// InfiniteDuration and InfiniteDistance follow the same convention for
// their own scaled domains.
const (
	InfiniteDuration Duration = Duration(3 * (math.MaxInt64 / 4))
	InfiniteDistance Distance = Distance(3 * (math.MaxInt64 / 4))
)

var (
	DefaultMaxTasks      = uint64(math.MaxUint64)
	DefaultMaxTravelTime = InfiniteDuration
	DefaultMaxDistance   = InfiniteDistance
)

func ScaleFromUserDuration(d UserDuration) Duration {
	return DurationFactor * Duration(d)
}

func ScaleToUserDuration(d Duration) UserDuration {
	return UserDuration(d / DurationFactor)
}

func ScaleFromUserDistance(d UserDistance) Distance {
	return DistanceFactor * Distance(d)
}

func ScaleToUserDistance(d Distance) UserDistance {
	return UserDistance(d / DistanceFactor)
}

func ScaleFromUserCost(c UserCost) Cost {
	return Cost(DurationFactor) * CostFactor * Cost(c)
}

func ScaleToUserCost(c Cost) UserCost {
	return UserCost(c / (Cost(DurationFactor) * CostFactor))
}
