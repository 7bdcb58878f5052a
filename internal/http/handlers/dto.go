package handlers

import (
	"time"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

// driverDTO mirrors the legacy partner wire shape: locations travel as
// "lat,lng" strings, null when the driver never reported a position.
type driverDTO struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	VehicleType     domain.VehicleType  `json:"vehicle_type"`
	LicenseNumber   string              `json:"license_number"`
	Status          domain.DriverStatus `json:"status"`
	CurrentLocation *string             `json:"current_location"`
	Rating          float64             `json:"rating"`
	TotalDeliveries int                 `json:"total_deliveries"`
	CreatedAt       time.Time           `json:"created_at"`
}

type createDriverRequest struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	VehicleType     domain.VehicleType  `json:"vehicle_type"`
	LicenseNumber   string              `json:"license_number"`
	Status          domain.DriverStatus `json:"status"`
	CurrentLocation *string             `json:"current_location,omitempty"`
}

type updateDriverRequest struct {
	ID            int64                `json:"id"`
	Name          *string              `json:"name,omitempty"`
	Email         *string              `json:"email,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	VehicleType   *domain.VehicleType  `json:"vehicle_type,omitempty"`
	LicenseNumber *string              `json:"license_number,omitempty"`
	Status        *domain.DriverStatus `json:"status,omitempty"`
}

type deliveryDTO struct {
	ID               int64                 `json:"id"`
	OrderID          int64                 `json:"order_id"`
	PartnerID        *int64                `json:"partner_id"`
	DeliveryStatus   domain.DeliveryStatus `json:"delivery_status"`
	PickupTime       *time.Time            `json:"pickup_time"`
	DeliveryTime     *time.Time            `json:"delivery_time"`
	DeliveryNotes    string                `json:"delivery_notes"`
	PickupLocation   *string               `json:"pickup_location"`
	DeliveryLocation *string               `json:"delivery_location"`
	CurrentLocation  *string               `json:"current_location"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type locationUpdateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type statusUpdateRequest struct {
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CurrentLocation *string `json:"current_location,omitempty"`
}

type assignResponse struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message"`
	DeliveryID        int64     `json:"delivery_id"`
	Driver            driverDTO `json:"driver"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Distance          float64   `json:"distance"`
}

type driversResponse struct {
	Success bool        `json:"success"`
	Drivers []driverDTO `json:"drivers"`
}

type statusResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Delivery deliveryDTO `json:"delivery"`
}

type statsResponse struct {
	Success bool                 `json:"success"`
	Stats   domain.DispatchStats `json:"stats"`
}

type okResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
