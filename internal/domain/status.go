package domain

import "regexp"

// List of possible driver statuses
const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffline   DriverStatus = "offline"
)

// List of possible vehicle types
const (
	VehicleCar   VehicleType = "car"
	VehicleBike  VehicleType = "bike"
	VehicleTruck VehicleType = "truck"
	VehicleVan   VehicleType = "van"
)

// Delivery lifecycle statuses
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Order delivery types
const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeShipping DeliveryType = "shipping"
)

// Order fulfillment statuses touched by dispatch
const (
	FulfillmentPending   FulfillmentStatus = "pending"
	FulfillmentAssigned  FulfillmentStatus = "assigned_for_delivery"
	FulfillmentDelivered FulfillmentStatus = "delivered"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverAvailable, DriverBusy, DriverOffline,
}

var allowedVehicleTypes = [...]VehicleType{
	VehicleCar, VehicleBike, VehicleTruck, VehicleVan,
}

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryPickedUp,
	DeliveryInTransit, DeliveryDelivered, DeliveryFailed,
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the VehicleType is valid
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Allowed lifecycle transitions: the linear happy path, with failed
// reachable from every non-terminal state. picked_up may jump straight
// to delivered so short runs need not report an in_transit leg.
var nextDeliveryStatuses = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:   {DeliveryAssigned, DeliveryFailed},
	DeliveryAssigned:  {DeliveryPickedUp, DeliveryFailed},
	DeliveryPickedUp:  {DeliveryInTransit, DeliveryDelivered, DeliveryFailed},
	DeliveryInTransit: {DeliveryDelivered, DeliveryFailed},
}

// Terminal reports whether no further transitions are permitted.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// CanTransitionTo reports whether next is a permitted transition from s.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, v := range nextDeliveryStatuses[s] {
		if v == next {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,18}[0-9]$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// reEmail keeps email validation deliberately loose; real verification
// happens downstream in the notification pipeline.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email address format
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
