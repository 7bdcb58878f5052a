package domain

import "time"

// DeliveryStatus represents the lifecycle state of a delivery assignment.
type DeliveryStatus string

// Delivery is a delivery assignment binding an order to a driver.
type Delivery struct {
	ID               int64
	OrderID          int64
	DriverID         *int64 // nil until assigned
	Status           DeliveryStatus
	PickupLocation   *Coordinate
	DeliveryLocation *Coordinate
	CurrentLocation  *Coordinate // live driver check-ins
	PickupTime       *time.Time
	DeliveryTime     *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StatusUpdate carries a requested lifecycle change for a delivery.
type StatusUpdate struct {
	Status          DeliveryStatus
	Notes           *string
	CurrentLocation *Coordinate
}

// AssignResult is the outcome of a successful auto-assignment.
type AssignResult struct {
	DeliveryID        int64
	OrderID           int64
	Driver            Driver
	DistanceMiles     float64
	EstimatedDelivery time.Time
}

// AssignmentCounts aggregates assignment activity for one calendar day.
type AssignmentCounts struct {
	Active             int
	Today              int
	CompletedToday     int
	AvgDeliveryMinutes *float64 // nil when nothing was delivered today
}

// DispatchStats is the operational snapshot served by the stats endpoint.
type DispatchStats struct {
	ActiveDeliveries   int     `json:"active_deliveries"`
	AvailableDrivers   int     `json:"available_drivers"`
	BusyDrivers        int     `json:"busy_drivers"`
	TotalDrivers       int     `json:"total_drivers"`
	TodaysDeliveries   int     `json:"todays_deliveries"`
	CompletedToday     int     `json:"completed_today"`
	CompletionRate     float64 `json:"completion_rate"`
	AvgDeliveryMinutes float64 `json:"avg_delivery_time"`
}
