package handlers

import (
	"context"

	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/service/dispatch"
	"github.com/dankdash1/dispatch-service/internal/service/driver"
)

type driverUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}

// NewDriverUsecase wires a driver.Service into a driverUsecase.
func NewDriverUsecase(service *driver.Service) driverUsecase {
	return service
}

type dispatchUsecase interface {
	AutoAssign(ctx context.Context, orderID int64) (domain.AssignResult, error)
	UpdateStatus(ctx context.Context, deliveryID int64, upd domain.StatusUpdate) (*domain.Delivery, error)
	UpdateDriverLocation(ctx context.Context, driverID int64, c domain.Coordinate) error
	AvailableDrivers(ctx context.Context) ([]domain.Driver, error)
	Stats(ctx context.Context) (domain.DispatchStats, error)
}

// NewDispatchUsecase wires a dispatch.Service into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}
