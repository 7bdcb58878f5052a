package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/logx"
)

type stubDriverUsecase struct {
	getFn           func(ctx context.Context, id int64) (*domain.Driver, error)
	listFn          func(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	createFn        func(ctx context.Context, d *domain.Driver) (int64, error)
	updatePartialFn func(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}

func (s *stubDriverUsecase) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubDriverUsecase) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, limit, offset)
}

func (s *stubDriverUsecase) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, d)
}

func (s *stubDriverUsecase) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	if s.updatePartialFn == nil {
		panic("UpdatePartial not expected in this test")
	}
	return s.updatePartialFn(ctx, u)
}

func TestDriverHandler_GetByID_OK(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	uc := &stubDriverUsecase{
		getFn: func(_ context.Context, id int64) (*domain.Driver, error) {
			require.Equal(t, int64(7), id)
			return &domain.Driver{
				ID:              7,
				Name:            "Kim Soto",
				Email:           "kim@example.com",
				Phone:           "+13105550142",
				VehicleType:     domain.VehicleCar,
				LicenseNumber:   "CA-4821",
				Status:          domain.DriverAvailable,
				Rating:          4.8,
				TotalDeliveries: 12,
				CreatedAt:       created,
			}, nil
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drivers/7", nil), "id", "7")
	rr := httptest.NewRecorder()

	h.GetByID(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	expectedJSON := `{
		"id": 7,
		"name": "Kim Soto",
		"email": "kim@example.com",
		"phone": "+13105550142",
		"vehicle_type": "car",
		"license_number": "CA-4821",
		"status": "available",
		"current_location": null,
		"rating": 4.8,
		"total_deliveries": 12,
		"created_at": "2025-05-01T09:00:00Z"
	}`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestDriverHandler_GetByID_BadID(t *testing.T) {
	t.Parallel()

	h := NewDriverHandler(&stubDriverUsecase{}, logx.Nop())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drivers/zero", nil), "id", "zero")
	rr := httptest.NewRecorder()

	h.GetByID(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDriverHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubDriverUsecase{
		getFn: func(context.Context, int64) (*domain.Driver, error) {
			return nil, apperr.ErrNotFound
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/drivers/7", nil), "id", "7")
	rr := httptest.NewRecorder()

	h.GetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "not found"}`, rr.Body.String())
}

func TestDriverHandler_List_PassesPagination(t *testing.T) {
	t.Parallel()

	uc := &stubDriverUsecase{
		listFn: func(_ context.Context, limit, offset *int) ([]domain.Driver, error) {
			require.NotNil(t, limit)
			require.Equal(t, 10, *limit)
			require.NotNil(t, offset)
			require.Equal(t, 5, *offset)
			return []domain.Driver{}, nil
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	req := httptest.NewRequest(http.MethodGet, "/drivers?limit=10&offset=5", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestDriverHandler_List_BadLimit(t *testing.T) {
	t.Parallel()

	h := NewDriverHandler(&stubDriverUsecase{}, logx.Nop())

	req := httptest.NewRequest(http.MethodGet, "/drivers?limit=-1", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid limit"}`, rr.Body.String())
}

func TestDriverHandler_Create_OK(t *testing.T) {
	t.Parallel()

	var got *domain.Driver
	uc := &stubDriverUsecase{
		createFn: func(_ context.Context, d *domain.Driver) (int64, error) {
			got = d
			return 123, nil
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	body := `{
		"name": "Kim Soto",
		"email": "kim@example.com",
		"phone": "+13105550142",
		"vehicle_type": "bike",
		"license_number": "CA-4821",
		"status": "available",
		"current_location": "34.05,-118.24"
	}`
	req := httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/drivers/123", rr.Header().Get("Location"))
	assert.JSONEq(t, `{"id": 123}`, rr.Body.String())

	require.NotNil(t, got)
	require.Equal(t, domain.VehicleBike, got.VehicleType)
	require.NotNil(t, got.Location)
	require.InDelta(t, 34.05, got.Location.Lat, 1e-9)
}

func TestDriverHandler_Create_BadLocation(t *testing.T) {
	t.Parallel()

	h := NewDriverHandler(&stubDriverUsecase{}, logx.Nop())

	body := `{"name": "Kim", "current_location": "not-a-coordinate"}`
	req := httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid current_location"}`, rr.Body.String())
}

func TestDriverHandler_Create_Invalid(t *testing.T) {
	t.Parallel()

	uc := &stubDriverUsecase{
		createFn: func(context.Context, *domain.Driver) (int64, error) {
			return 0, apperr.ErrInvalid
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	body := `{"name": " "}`
	req := httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid input"}`, rr.Body.String())
}

func TestDriverHandler_Create_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubDriverUsecase{
		createFn: func(context.Context, *domain.Driver) (int64, error) {
			return 0, apperr.ErrConflict
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	body := `{"name": "Kim", "email": "kim@example.com", "phone": "+13105550142", "license_number": "CA-4821"}`
	req := httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDriverHandler_Update_OK(t *testing.T) {
	t.Parallel()

	var got domain.PartialDriverUpdate
	uc := &stubDriverUsecase{
		updatePartialFn: func(_ context.Context, u domain.PartialDriverUpdate) (bool, error) {
			got = u
			return true, nil
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	body := `{"id": 7, "status": "offline"}`
	req := httptest.NewRequest(http.MethodPut, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
	require.Equal(t, int64(7), got.ID)
	require.NotNil(t, got.Status)
	require.Equal(t, domain.DriverOffline, *got.Status)
}

func TestDriverHandler_Update_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubDriverUsecase{
		updatePartialFn: func(context.Context, domain.PartialDriverUpdate) (bool, error) {
			return false, apperr.ErrNotFound
		},
	}
	h := NewDriverHandler(uc, logx.Nop())

	body := `{"id": 999, "status": "offline"}`
	req := httptest.NewRequest(http.MethodPut, "/drivers", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDriverHandler_Update_BadJSON(t *testing.T) {
	t.Parallel()

	h := NewDriverHandler(&stubDriverUsecase{}, logx.Nop())

	req := httptest.NewRequest(http.MethodPut, "/drivers", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	h.Update(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid json"}`, rr.Body.String())
}
