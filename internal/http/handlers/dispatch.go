package handlers

import (
	"errors"
	"net/http"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/logx"
	"github.com/dankdash1/dispatch-service/internal/service/dispatch"
)

// DispatchHandler serves the dispatch HTTP endpoints.
type DispatchHandler struct {
	uc     dispatchUsecase
	logger logx.Logger
}

// NewDispatchHandler wires a dispatchUsecase into HTTP handlers.
func NewDispatchHandler(uc dispatchUsecase, logger logx.Logger) *DispatchHandler {
	return &DispatchHandler{uc: uc, logger: logger}
}

// AutoAssign handles POST /dispatch/auto-assign/{orderID}.
func (h *DispatchHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	orderID, err := idFromURL(r, "orderID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	res, err := h.uc.AutoAssign(r.Context(), orderID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, assignResponse{
			Success:           true,
			Message:           "Driver assigned successfully",
			DeliveryID:        res.DeliveryID,
			Driver:            driverToResponse(res.Driver),
			EstimatedDelivery: res.EstimatedDelivery,
			Distance:          roundMiles(res.DistanceMiles),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	case errors.Is(err, dispatch.ErrNotDelivery):
		writeError(h.logger, w, r, http.StatusBadRequest, "order is not for delivery")
	case errors.Is(err, dispatch.ErrAlreadyAssigned):
		writeError(h.logger, w, r, http.StatusConflict, "order already has an active delivery")
	case errors.Is(err, dispatch.ErrNoDrivers):
		writeError(h.logger, w, r, http.StatusConflict, "no available drivers found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// AvailableDrivers handles GET /dispatch/available-drivers.
func (h *DispatchHandler) AvailableDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.uc.AvailableDrivers(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, driversResponse{
		Success: true,
		Drivers: driversToResponse(drivers),
	})
}

// UpdateDriverLocation handles PUT /dispatch/driver-location/{driverID}.
func (h *DispatchHandler) UpdateDriverLocation(w http.ResponseWriter, r *http.Request) {
	driverID, err := idFromURL(r, "driverID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid driver id")
		return
	}

	var req locationUpdateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "latitude and longitude required")
		return
	}

	err = h.uc.UpdateDriverLocation(r.Context(), driverID, domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, okResponse{
			Success: true,
			Message: "Location updated successfully",
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "coordinate out of range")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "driver not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateDeliveryStatus handles PUT /dispatch/delivery-status/{deliveryID}.
func (h *DispatchHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := idFromURL(r, "deliveryID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}

	var req statusUpdateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if req.Status == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "status is required")
		return
	}
	loc, err := parseOptionalCoord(req.CurrentLocation)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid current_location")
		return
	}

	upd := domain.StatusUpdate{
		Status:          domain.DeliveryStatus(req.Status),
		Notes:           req.Notes,
		CurrentLocation: loc,
	}
	d, err := h.uc.UpdateStatus(r.Context(), deliveryID, upd)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, statusResponse{
			Success:  true,
			Message:  "Delivery status updated successfully",
			Delivery: deliveryToResponse(*d),
		})
	case errors.Is(err, dispatch.ErrBadTransition):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status transition")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Stats handles GET /dispatch/stats.
func (h *DispatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.Stats(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statsResponse{
		Success: true,
		Stats:   stats,
	})
}
