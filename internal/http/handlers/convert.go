package handlers

import (
	"math"

	"github.com/dankdash1/dispatch-service/internal/domain"
)

func coordString(c *domain.Coordinate) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func parseOptionalCoord(s *string) (*domain.Coordinate, error) {
	if s == nil {
		return nil, nil
	}
	c, err := domain.ParseCoordinate(*s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (req createDriverRequest) toModel() (*domain.Driver, error) {
	loc, err := parseOptionalCoord(req.CurrentLocation)
	if err != nil {
		return nil, err
	}
	return &domain.Driver{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		VehicleType:   req.VehicleType,
		LicenseNumber: req.LicenseNumber,
		Status:        req.Status,
		Location:      loc,
	}, nil
}

func (req updateDriverRequest) toModel() domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:            req.ID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		VehicleType:   req.VehicleType,
		LicenseNumber: req.LicenseNumber,
		Status:        req.Status,
	}
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Phone:           d.Phone,
		VehicleType:     d.VehicleType,
		LicenseNumber:   d.LicenseNumber,
		Status:          d.Status,
		CurrentLocation: coordString(d.Location),
		Rating:          d.Rating,
		TotalDeliveries: d.TotalDeliveries,
		CreatedAt:       d.CreatedAt,
	}
}

func driversToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, driverToResponse(d))
	}
	return out
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:               d.ID,
		OrderID:          d.OrderID,
		PartnerID:        d.DriverID,
		DeliveryStatus:   d.Status,
		PickupTime:       d.PickupTime,
		DeliveryTime:     d.DeliveryTime,
		DeliveryNotes:    d.Notes,
		PickupLocation:   coordString(d.PickupLocation),
		DeliveryLocation: coordString(d.DeliveryLocation),
		CurrentLocation:  coordString(d.CurrentLocation),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func roundMiles(v float64) float64 {
	return math.Round(v*100) / 100
}
