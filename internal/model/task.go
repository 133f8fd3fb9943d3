package model

// ShipmentRef links a Pickup/Delivery task pair. Zero value means the
// task is a Single job with no paired sibling.
type ShipmentRef struct {
	HasSibling bool
	SiblingID  uint64
}

// Task is a unit of work: a single job, or one half of a
// pickup/delivery shipment pair (§3 Task).
type Task struct {
	ID       uint64
	Kind     JobType
	Location Location

	Setup              Duration
	Service             Duration
	ServicePerVehicleType map[string]Duration // keyed by vehicle.ServiceType

	Delivery Amount
	Pickup   Amount

	Skills   Skills
	Priority int

	TimeWindows []TimeWindow

	Description string

	Shipment ShipmentRef
}

// ServiceFor returns the service duration for this task when served by
// a vehicle with the given service type. Per the ingestion rule, a
// vehicle with no service type (empty string) silently falls back to
// the task's default Service duration, even if ServicePerVehicleType is
// populated.
func (t Task) ServiceFor(vehicleServiceType string) Duration {
	if vehicleServiceType == "" {
		return t.Service
	}
	if d, ok := t.ServicePerVehicleType[vehicleServiceType]; ok {
		return d
	}
	return t.Service
}

// IsPickup / IsDelivery / IsSingle are convenience predicates.
func (t Task) IsPickup() bool   { return t.Kind == Pickup }
func (t Task) IsDelivery() bool { return t.Kind == Delivery }
func (t Task) IsSingle() bool   { return t.Kind == Single }
