package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/geo"
	"github.com/dankdash1/dispatch-service/internal/geocode"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/ports/dispatchtx"
)

// Settings carries the tunables of the dispatch core.
type Settings struct {
	SearchRadiusMiles float64
	StoreLocation     domain.Coordinate
	AvgDeliveryFloor  float64
	OperationTimeout  time.Duration
}

// Service orchestrates assignment creation and the delivery lifecycle.
type Service struct {
	repo     dispatchRepository
	drivers  driverDirectory
	geocoder geocode.Resolver
	eta      ETAFactory
	notify   notifier
	assigned counter
	failed   counter
	settings Settings
	logger   logx.Logger
	now      func() time.Time
}

// NewService - creates a dispatch Service. The metric counters may be nil.
func NewService(
	repo dispatchRepository,
	drivers driverDirectory,
	geocoder geocode.Resolver,
	eta ETAFactory,
	notify notifier,
	assigned counter,
	failed counter,
	settings Settings,
	logger logx.Logger,
) *Service {
	if settings.SearchRadiusMiles <= 0 {
		settings.SearchRadiusMiles = DefaultSearchRadiusMiles
	}
	if settings.OperationTimeout <= 0 {
		settings.OperationTimeout = 3 * time.Second
	}
	return &Service{
		repo:     repo,
		drivers:  drivers,
		geocoder: geocoder,
		eta:      eta,
		notify:   notify,
		assigned: assigned,
		failed:   failed,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// AutoAssign claims the nearest available driver for the order and
// creates (or revives) its delivery assignment. The candidate walk and
// the claim run in one transaction, so two concurrent assignments can
// never end up holding the same driver.
func (s *Service) AutoAssign(ctx context.Context, orderID int64) (domain.AssignResult, error) {
	if orderID <= 0 {
		return domain.AssignResult{}, fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	var (
		result domain.AssignResult
		order  domain.Order
	)
	err := s.repo.WithTx(opCtx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrder(opCtx, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if o == nil {
			return fmt.Errorf("%w: order %d", apperr.ErrNotFound, orderID)
		}
		if o.DeliveryType != domain.DeliveryTypeDelivery {
			return fmt.Errorf("%w: order %d is %q", ErrNotDelivery, orderID, o.DeliveryType)
		}

		open, err := tx.GetOpenByOrderID(opCtx, orderID)
		if err != nil {
			return fmt.Errorf("check open assignment: %w", err)
		}
		if open != nil {
			return fmt.Errorf("%w: delivery %d", ErrAlreadyAssigned, open.ID)
		}

		dest := s.geocoder.Resolve(o.ShippingAddress)

		available, err := tx.ListAvailableDrivers(opCtx)
		if err != nil {
			return fmt.Errorf("list available drivers: %w", err)
		}
		ranked := RankCandidates(dest, s.settings.SearchRadiusMiles, available)
		if len(ranked) == 0 {
			return ErrNoDrivers
		}

		// Another transaction may flip a candidate to busy between our
		// snapshot and the claim, so walk the ranking until a
		// compare-and-swap sticks.
		var chosen *Candidate
		for i := range ranked {
			ok, err := tx.ClaimDriver(opCtx, ranked[i].Driver.ID)
			if err != nil {
				return fmt.Errorf("claim driver %d: %w", ranked[i].Driver.ID, err)
			}
			if ok {
				chosen = &ranked[i]
				break
			}
		}
		if chosen == nil {
			return ErrNoDrivers
		}

		driverID := chosen.Driver.ID
		pickup := s.settings.StoreLocation
		d := &domain.Delivery{
			OrderID:          orderID,
			DriverID:         &driverID,
			Status:           domain.DeliveryAssigned,
			PickupLocation:   &pickup,
			DeliveryLocation: &dest,
		}
		if err := tx.UpsertAssignment(opCtx, d); err != nil {
			return fmt.Errorf("save assignment: %w", err)
		}

		runMiles := geo.Distance(pickup, dest)
		eta := s.eta.EstimatedDelivery(s.now(), runMiles)
		if err := tx.SetOrderDispatch(opCtx, orderID, domain.FulfillmentAssigned, &driverID, &eta); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		order = *o
		result = domain.AssignResult{
			DeliveryID:        d.ID,
			OrderID:           orderID,
			Driver:            chosen.Driver,
			DistanceMiles:     runMiles,
			EstimatedDelivery: eta,
		}
		result.Driver.Status = domain.DriverBusy
		return nil
	})
	if err != nil {
		if s.failed != nil {
			s.failed.Inc()
		}
		return domain.AssignResult{}, err
	}

	if s.assigned != nil {
		s.assigned.Inc()
	}
	s.logger.Info("driver assigned",
		logx.Int64("order_id", result.OrderID),
		logx.Int64("delivery_id", result.DeliveryID),
		logx.Int64("driver_id", result.Driver.ID),
		logx.Float64("distance_miles", result.DistanceMiles),
	)
	s.notify.AssignmentCreated(ctx, order, result.Driver, result.EstimatedDelivery)
	return result, nil
}

// UpdateStatus advances a delivery along its lifecycle, stamping pickup
// and delivery times and releasing the driver on terminal states.
func (s *Service) UpdateStatus(ctx context.Context, deliveryID int64, upd domain.StatusUpdate) (*domain.Delivery, error) {
	if deliveryID <= 0 {
		return nil, fmt.Errorf("%w: delivery id must be positive", apperr.ErrInvalid)
	}
	if !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, upd.Status)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	var (
		updated domain.Delivery
		order   domain.Order
		driver  *domain.Driver
	)
	err := s.repo.WithTx(opCtx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetAssignment(opCtx, deliveryID)
		if err != nil {
			return fmt.Errorf("load assignment: %w", err)
		}
		if d == nil {
			return fmt.Errorf("%w: delivery %d", apperr.ErrNotFound, deliveryID)
		}
		if !d.Status.CanTransitionTo(upd.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrBadTransition, d.Status, upd.Status)
		}

		now := s.now()
		d.Status = upd.Status
		if upd.Notes != nil {
			d.Notes = *upd.Notes
		}
		if upd.CurrentLocation != nil {
			d.CurrentLocation = upd.CurrentLocation
		}

		switch upd.Status {
		case domain.DeliveryPickedUp:
			d.PickupTime = &now
		case domain.DeliveryDelivered:
			d.DeliveryTime = &now
			if d.DriverID != nil {
				if err := tx.ReleaseDriver(opCtx, *d.DriverID, true); err != nil {
					return fmt.Errorf("release driver %d: %w", *d.DriverID, err)
				}
			}
			if err := tx.SetOrderDispatch(opCtx, d.OrderID, domain.FulfillmentDelivered, d.DriverID, nil); err != nil {
				return fmt.Errorf("update order: %w", err)
			}
		case domain.DeliveryFailed:
			if d.DriverID != nil {
				if err := tx.ReleaseDriver(opCtx, *d.DriverID, false); err != nil {
					return fmt.Errorf("release driver %d: %w", *d.DriverID, err)
				}
			}
		}

		if err := tx.UpdateAssignment(opCtx, d); err != nil {
			return fmt.Errorf("save assignment: %w", err)
		}

		o, err := tx.GetOrder(opCtx, d.OrderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if o != nil {
			order = *o
		}
		if d.DriverID != nil {
			driver, err = tx.GetDriver(opCtx, *d.DriverID)
			if err != nil {
				return fmt.Errorf("load driver %d: %w", *d.DriverID, err)
			}
		}
		updated = *d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery status updated",
		logx.Int64("delivery_id", updated.ID),
		logx.String("status", string(updated.Status)),
	)
	s.notify.StatusChanged(ctx, order, driver, updated)
	return &updated, nil
}

// CancelByOrder fails the open assignment for an order, releasing the
// driver without crediting a completed run. Used when an order is
// canceled upstream after a driver was already dispatched.
func (s *Service) CancelByOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("%w: order id must be positive", apperr.ErrInvalid)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	var canceled domain.Delivery
	err := s.repo.WithTx(opCtx, func(tx dispatchtx.Repository) error {
		d, err := tx.GetOpenByOrderID(opCtx, orderID)
		if err != nil {
			return fmt.Errorf("load open assignment: %w", err)
		}
		if d == nil {
			return fmt.Errorf("%w: no open delivery for order %d", apperr.ErrNotFound, orderID)
		}
		d.Status = domain.DeliveryFailed
		d.Notes = "order canceled"
		if d.DriverID != nil {
			if err := tx.ReleaseDriver(opCtx, *d.DriverID, false); err != nil {
				return fmt.Errorf("release driver %d: %w", *d.DriverID, err)
			}
		}
		if err := tx.UpdateAssignment(opCtx, d); err != nil {
			return fmt.Errorf("save assignment: %w", err)
		}
		canceled = *d
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delivery canceled",
		logx.Int64("order_id", orderID),
		logx.Int64("delivery_id", canceled.ID),
	)
	return nil
}

// UpdateDriverLocation records a live position ping from a driver.
func (s *Service) UpdateDriverLocation(ctx context.Context, driverID int64, c domain.Coordinate) error {
	if driverID <= 0 {
		return fmt.Errorf("%w: driver id must be positive", apperr.ErrInvalid)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: coordinate out of range", apperr.ErrInvalid)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	ok, err := s.drivers.UpdateLocation(opCtx, driverID, c)
	if err != nil {
		return fmt.Errorf("update driver location: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: driver %d", apperr.ErrNotFound, driverID)
	}
	return nil
}

// AvailableDrivers lists drivers currently eligible for assignment.
func (s *Service) AvailableDrivers(ctx context.Context) ([]domain.Driver, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	drivers, err := s.drivers.ListAvailable(opCtx)
	if err != nil {
		return nil, fmt.Errorf("list available drivers: %w", err)
	}
	return drivers, nil
}

// Stats assembles the operational snapshot for the dashboard.
func (s *Service) Stats(ctx context.Context) (domain.DispatchStats, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.settings.OperationTimeout)
	defer cancel()

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts, err := s.repo.Stats(opCtx, dayStart)
	if err != nil {
		return domain.DispatchStats{}, fmt.Errorf("assignment stats: %w", err)
	}
	driverCounts, err := s.drivers.Counts(opCtx)
	if err != nil {
		return domain.DispatchStats{}, fmt.Errorf("driver counts: %w", err)
	}

	stats := domain.DispatchStats{
		ActiveDeliveries: counts.Active,
		AvailableDrivers: driverCounts.Available,
		BusyDrivers:      driverCounts.Busy,
		TotalDrivers:     driverCounts.Total,
		TodaysDeliveries: counts.Today,
		CompletedToday:   counts.CompletedToday,
	}
	stats.AvgDeliveryMinutes = s.settings.AvgDeliveryFloor
	if counts.Today > 0 {
		stats.CompletionRate = float64(counts.CompletedToday) / float64(counts.Today) * 100
	}
	if counts.AvgDeliveryMinutes != nil {
		stats.AvgDeliveryMinutes = *counts.AvgDeliveryMinutes
	}
	return stats, nil
}
