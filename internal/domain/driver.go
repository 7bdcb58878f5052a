package domain

import "time"

type (
	// DriverStatus represents the availability state of a delivery partner.
	DriverStatus string
	// VehicleType represents the vehicle a delivery partner operates.
	VehicleType string
)

// Driver represents a delivery partner.
type Driver struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	VehicleType     VehicleType
	LicenseNumber   string
	Status          DriverStatus
	Location        *Coordinate // nil until the driver reports a position
	Rating          float64
	TotalDeliveries int
	CreatedAt       time.Time
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means "do not change" that attribute.
type PartialDriverUpdate struct {
	ID            int64
	Name          *string
	Email         *string
	Phone         *string
	VehicleType   *VehicleType
	LicenseNumber *string
	Status        *DriverStatus
}

// DriverCounts aggregates partner counts by availability. Total covers
// the dispatchable fleet only: available plus busy, never offline.
type DriverCounts struct {
	Available int
	Busy      int
	Total     int
}
