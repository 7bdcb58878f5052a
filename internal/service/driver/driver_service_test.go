package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
)

type mockDriverRepo struct {
	getFn           func(ctx context.Context, id int64) (*domain.Driver, error)
	listFn          func(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	createFn        func(ctx context.Context, d *domain.Driver) (int64, error)
	updatePartialFn func(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}

func (m *mockDriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	return m.getFn(ctx, id)
}

func (m *mockDriverRepo) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	return m.listFn(ctx, limit, offset)
}

func (m *mockDriverRepo) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	return m.createFn(ctx, d)
}

func (m *mockDriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	return m.updatePartialFn(ctx, u)
}

func TestNewService_ZeroTimeoutUsesDefault(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{}
	service := NewService(repo, 0)
	if service.operationTimeout != 3*time.Second {
		t.Fatalf("default timeout 3s, got %v", service.operationTimeout)
	}
}

func TestNewService_PositiveTimeoutKept(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{}
	service := NewService(repo, 5*time.Second)
	if service.operationTimeout != 5*time.Second {
		t.Fatalf("expected timeout 5s, got %v", service.operationTimeout)
	}
}

func TestService_Get_Success(t *testing.T) {
	t.Parallel()

	expected := validDriver()
	expected.ID = 50

	repo := &mockDriverRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			if id != expected.ID {
				t.Fatalf("expected id %d, got %d", expected.ID, id)
			}
			return expected, nil
		},
	}

	service := NewService(repo, time.Second)

	got, err := service.Get(context.Background(), expected.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("expected %#v, got %#v", expected, got)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			return nil, nil
		},
	}

	service := NewService(repo, time.Second)

	got, err := service.Get(context.Background(), 1)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil driver, got %#v", got)
	}
}

func TestService_Get_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	repo := &mockDriverRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			return nil, wantErr
		},
	}

	service := NewService(repo, time.Second)

	_, err := service.Get(context.Background(), 1)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error %v, got %v", wantErr, err)
	}
}

func TestService_List_Success(t *testing.T) {
	t.Parallel()

	limit, offset := 10, 5

	expected := []domain.Driver{
		{ID: 1, Name: "first"},
		{ID: 2, Name: "second"},
	}

	repo := &mockDriverRepo{
		listFn: func(ctx context.Context, gotLimit, gotOffset *int) ([]domain.Driver, error) {
			if gotLimit == nil || *gotLimit != limit {
				t.Fatalf("expected limit %d, got %v", limit, gotLimit)
			}
			if gotOffset == nil || *gotOffset != offset {
				t.Fatalf("expected offset %d, got %v", offset, gotOffset)
			}
			return expected, nil
		},
	}

	service := NewService(repo, time.Second)

	res, err := service.List(context.Background(), &limit, &offset)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != len(expected) {
		t.Fatalf("expected %d items, got %d", len(expected), len(res))
	}
}

func TestService_List_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("db down")
	repo := &mockDriverRepo{
		listFn: func(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
			return nil, wantErr
		},
	}

	service := NewService(repo, time.Second)

	_, err := service.List(context.Background(), nil, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error %v, got %v", wantErr, err)
	}
}

func TestService_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		createFn: func(ctx context.Context, d *domain.Driver) (int64, error) {
			t.Fatal("Create should not be called on invalid input")
			return 0, nil
		},
	}

	service := NewService(repo, time.Second)

	d := validDriver()
	d.Name = " "
	d.Phone = "123"

	_, err := service.Create(context.Background(), d)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid error, got %v", err)
	}
}

func TestService_Create_SetsDefaultsAndCallsRepo(t *testing.T) {
	t.Parallel()

	var got *domain.Driver
	repo := &mockDriverRepo{
		createFn: func(ctx context.Context, d *domain.Driver) (int64, error) {
			got = d
			return 123, nil
		},
	}

	service := NewService(repo, time.Second)

	d := validDriver()
	d.VehicleType = ""
	d.Status = ""

	id, err := service.Create(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 123 {
		t.Fatalf("expected id 123, got %d", id)
	}
	if got == nil {
		t.Fatal("repo.Create was not called")
	}
	if got.VehicleType != domain.VehicleCar {
		t.Fatalf("expected default vehicle type %q, got %q", domain.VehicleCar, got.VehicleType)
	}
	if got.Status != domain.DriverAvailable {
		t.Fatalf("expected default status %q, got %q", domain.DriverAvailable, got.Status)
	}
}

func TestService_UpdatePartial_Invalid(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		updatePartialFn: func(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
			t.Fatal("UpdatePartial should not be called on invalid input")
			return false, nil
		},
	}

	service := NewService(repo, time.Second)
	u := domain.PartialDriverUpdate{}

	_, err := service.UpdatePartial(context.Background(), u)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid error, got %v", err)
	}
}

func TestService_UpdatePartial_Success(t *testing.T) {
	t.Parallel()

	name := "New Name"
	u := domain.PartialDriverUpdate{
		ID:   1,
		Name: &name,
	}

	var gotUpdate domain.PartialDriverUpdate
	repo := &mockDriverRepo{
		updatePartialFn: func(ctx context.Context, upd domain.PartialDriverUpdate) (bool, error) {
			gotUpdate = upd
			return true, nil
		},
	}

	service := NewService(repo, time.Second)

	ok, err := service.UpdatePartial(context.Background(), u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true, got false")
	}
	if gotUpdate.ID != u.ID || gotUpdate.Name == nil || *gotUpdate.Name != *u.Name {
		t.Fatalf("repo received wrong update: %#v", gotUpdate)
	}
}

func TestService_UpdatePartial_NotFound(t *testing.T) {
	t.Parallel()

	name := "New Name"
	u := domain.PartialDriverUpdate{
		ID:   50,
		Name: &name,
	}

	repo := &mockDriverRepo{
		updatePartialFn: func(ctx context.Context, upd domain.PartialDriverUpdate) (bool, error) {
			return false, nil
		},
	}

	service := NewService(repo, time.Second)

	ok, err := service.UpdatePartial(context.Background(), u)
	if ok {
		t.Fatalf("expected ok=false on not found")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_UpdatePartial_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("repo error")
	name := "New Name"
	u := domain.PartialDriverUpdate{
		ID:   1,
		Name: &name,
	}

	repo := &mockDriverRepo{
		updatePartialFn: func(ctx context.Context, upd domain.PartialDriverUpdate) (bool, error) {
			return false, wantErr
		},
	}

	service := NewService(repo, time.Second)

	_, err := service.UpdatePartial(context.Background(), u)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error %v, got %v", wantErr, err)
	}
}
