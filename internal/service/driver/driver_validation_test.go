package driver

import (
	"errors"
	"testing"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
)

func validDriver() *domain.Driver {
	return &domain.Driver{
		Name:          "Riley Park",
		Email:         "riley@example.com",
		Phone:         "+13105550142",
		VehicleType:   domain.VehicleCar,
		LicenseNumber: "CA-4821",
		Status:        domain.DriverAvailable,
	}
}

func TestValidateCreate_NilDriver(t *testing.T) {
	t.Parallel()
	err := validateCreate(nil)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for nil driver, got %v", err)
	}
}

func TestValidateCreate_EmptyName(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.Name = "    "
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
}

func TestValidateCreate_InvalidEmail(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.Email = "not-an-email"
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad email, got %v", err)
	}
}

func TestValidateCreate_InvalidPhone(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.Phone = "123"
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad phone, got %v", err)
	}
}

func TestValidateCreate_EmptyLicense(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.LicenseNumber = "  "
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty license, got %v", err)
	}
}

func TestValidateCreate_InvalidVehicleType(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.VehicleType = domain.VehicleType("hoverboard")
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad vehicle type, got %v", err)
	}
}

func TestValidateCreate_InvalidStatus(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.Status = domain.DriverStatus("boom")
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad status, got %v", err)
	}
}

func TestValidateCreate_OutOfRangeLocation(t *testing.T) {
	t.Parallel()
	d := validDriver()
	d.Location = &domain.Coordinate{Lat: 120, Lon: 0}
	err := validateCreate(d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad location, got %v", err)
	}
}

func TestValidateCreate_ValidDriver(t *testing.T) {
	t.Parallel()
	if err := validateCreate(validDriver()); err != nil {
		t.Fatalf("expected nil error for valid driver, got %v", err)
	}
}

func TestValidateUpdate_IdLessOrEqualZero(t *testing.T) {
	t.Parallel()
	u := &domain.PartialDriverUpdate{
		ID: 0,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for id <= 0, got %v", err)
	}
}

func TestValidateUpdate_AllFieldsNil(t *testing.T) {
	t.Parallel()
	u := &domain.PartialDriverUpdate{
		ID: 1,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid when all fields nil, got %v", err)
	}
}

func TestValidateUpdate_EmptyName(t *testing.T) {
	t.Parallel()
	name := "   "
	u := &domain.PartialDriverUpdate{
		ID:   1,
		Name: &name,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty name, got %v", err)
	}
}

func TestValidateUpdate_InvalidEmail(t *testing.T) {
	t.Parallel()
	email := "nope"
	u := &domain.PartialDriverUpdate{
		ID:    1,
		Email: &email,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad email, got %v", err)
	}
}

func TestValidateUpdate_InvalidPhone(t *testing.T) {
	t.Parallel()
	phone := "123"
	u := &domain.PartialDriverUpdate{
		ID:    1,
		Phone: &phone,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad phone, got %v", err)
	}
}

func TestValidateUpdate_InvalidStatus(t *testing.T) {
	t.Parallel()
	status := domain.DriverStatus("bad")
	u := &domain.PartialDriverUpdate{
		ID:     1,
		Status: &status,
	}
	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad status, got %v", err)
	}
}

func TestValidateUpdate_InvalidVehicleType(t *testing.T) {
	t.Parallel()

	vt := domain.VehicleType("teleport")
	u := &domain.PartialDriverUpdate{
		ID:          1,
		VehicleType: &vt,
	}

	err := validateUpdate(u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad vehicle type, got %v", err)
	}
}

func TestValidateUpdate_ValidUpdatePasses(t *testing.T) {
	t.Parallel()
	name := "Riley Park"
	phone := "+13105550142"
	status := domain.DriverAvailable
	vt := domain.VehicleBike

	u := &domain.PartialDriverUpdate{
		ID:          1,
		Name:        &name,
		Phone:       &phone,
		Status:      &status,
		VehicleType: &vt,
	}
	if err := validateUpdate(u); err != nil {
		t.Fatalf("expected nil error for valid update, got %v", err)
	}
}
