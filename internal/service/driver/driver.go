package driver

import (
	"context"
	"strings"
	"time"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
)

// Service coordinates delivery partner onboarding and orchestrates
// repository calls.
type Service struct {
	repo             driverRepository
	operationTimeout time.Duration
}

// NewService creates and configures a driver Service.
func NewService(r driverRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a driver for creation.
func validateCreate(d *domain.Driver) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidateEmail(d.Email) {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return apperr.ErrInvalid
	}
	if d.VehicleType == "" {
		d.VehicleType = domain.VehicleCar
	}
	if !d.VehicleType.Valid() {
		return apperr.ErrInvalid
	}
	if d.Status == "" {
		d.Status = domain.DriverAvailable
	}
	if !d.Status.Valid() {
		return apperr.ErrInvalid
	}
	if d.Location != nil && !d.Location.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialDriverUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.VehicleType == nil && u.LicenseNumber == nil && u.Status == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Email != nil && !domain.ValidateEmail(*u.Email) {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	if u.VehicleType != nil && !u.VehicleType.Valid() {
		return apperr.ErrInvalid
	}
	if u.LicenseNumber != nil && strings.TrimSpace(*u.LicenseNumber) == "" {
		return apperr.ErrInvalid
	}
	if u.Status != nil && !u.Status.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// List returns drivers with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new driver and returns its generated ID.
func (s *Service) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	if err := validateCreate(d); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, d)
}

// UpdatePartial applies a partial update to a driver. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrNotFound
	}
	return true, nil
}
