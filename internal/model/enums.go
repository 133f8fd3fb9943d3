package model

// JobType differentiates a one-stop job from the two halves of a shipment.
type JobType int

const (
	Single JobType = iota
	Pickup
	Delivery
)

func (t JobType) String() string {
	switch t {
	case Single:
		return "single"
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// StepType classifies a position in a Route.
type StepType int

const (
	StepStart StepType = iota
	StepJob
	StepBreak
	StepEnd
)

func (t StepType) String() string {
	switch t {
	case StepStart:
		return "start"
	case StepJob:
		return "job"
	case StepBreak:
		return "break"
	case StepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Heuristic selects a construction strategy.
type Heuristic int

const (
	HeuristicBasic Heuristic = iota
	HeuristicDynamic
	HeuristicInitRoutes
)

// Init selects how the first task on an empty vehicle is chosen.
type Init int

const (
	InitNone Init = iota
	InitHigherAmount
	InitNearest
	InitFurthest
	InitEarliestDeadline
)

// Sort controls the vehicle processing order during construction.
type Sort int

const (
	SortAvailability Sort = iota
	SortCost
)

// OperatorName enumerates the closed set of local-search operators. The
// order the search driver tries them in is ops.Priority(), not this
// declaration order.
type OperatorName int

const (
	UnassignedExchange OperatorName = iota
	CrossExchange
	MixedExchange
	TwoOpt
	ReverseTwoOpt
	Relocate
	OrOpt
	IntraExchange
	IntraCrossExchange
	IntraMixedExchange
	IntraRelocate
	IntraOrOpt
	IntraTwoOpt
	PDShift
	RouteExchange
	SwapStar
	RouteSplit
	PriorityReplace
	TSPFix
	OperatorCount
)

var operatorNames = [OperatorCount]string{
	"UnassignedExchange", "CrossExchange", "MixedExchange", "TwoOpt",
	"ReverseTwoOpt", "Relocate", "OrOpt", "IntraExchange",
	"IntraCrossExchange", "IntraMixedExchange", "IntraRelocate",
	"IntraOrOpt", "IntraTwoOpt", "PDShift", "RouteExchange", "SwapStar",
	"RouteSplit", "PriorityReplace", "TSPFix",
}

func (o OperatorName) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return "unknown"
	}
	return operatorNames[o]
}

// ParseOperatorName looks up the OperatorName whose String() matches
// name, for config-file operator priority overrides.
func ParseOperatorName(name string) (OperatorName, bool) {
	for i, n := range operatorNames {
		if n == name {
			return OperatorName(i), true
		}
	}
	return 0, false
}

// Violation enumerates the feasibility checks a Route or move can fail.
type Violation int

const (
	ViolationLeadTime Violation = iota
	ViolationDelay
	ViolationLoad
	ViolationMaxTasks
	ViolationSkills
	ViolationPrecedence
	ViolationMissingBreak
	ViolationMaxTravelTime
	ViolationMaxLoad
	ViolationMaxDistance
)

var violationNames = [...]string{
	"lead_time", "delay", "load", "max_tasks", "skills",
	"precedence", "missing_break", "max_travel_time", "max_load", "max_distance",
}

func (v Violation) String() string {
	if int(v) < 0 || int(v) >= len(violationNames) {
		return "unknown"
	}
	return violationNames[v]
}
