package adaptor

import (
	"net/http"

	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/middleware"
	"tenant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "create reservation")
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.IdempotencyKey = r.Header.Get(idempotencyHeader)
	req.Source = "api"
	req.IPAddress = middleware.ClientIP(r)
	req.UserAgent = r.UserAgent()

	resp, err := h.service.CreateReservation(r.Context(), identity, &req)
	if err != nil {
		writeError(w, h.log, err, "create reservation")
		return
	}

	if resp.Replayed {
		utils.ResponseSuccess(w, "success", resp)
		return
	}
	utils.ResponseCreated(w, "success", resp)
}

// GetReservation handles GET /api/reservations/{reservationId}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetReservation(r.Context(), identityFrom(r), chi.URLParam(r, "reservationId"))
	if err != nil {
		writeError(w, h.log, err, "get reservation")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// UpdateStatus handles PATCH /api/reservations/{reservationId}/status
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "update reservation status")
	if !ok {
		return
	}

	var req request.UpdateReservationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), identity, chi.URLParam(r, "reservationId"), &req)
	if err != nil {
		writeError(w, h.log, err, "update reservation status")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// ListReservations handles GET /api/tenants/{tenantId}/calendars/{calendarId}/reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListReservationsRequest{
		PaginatedRequest: paginationFrom(r),
		From:             query.Get("from"),
		To:               query.Get("to"),
	}

	resp, err := h.service.ListReservations(r.Context(), identityFrom(r),
		chi.URLParam(r, "tenantId"), chi.URLParam(r, "calendarId"), req)
	if err != nil {
		writeError(w, h.log, err, "list reservations")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// CheckAvailability handles GET /api/tenants/{tenantId}/calendars/{calendarId}/availability
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailabilityRequest{
		Start:                query.Get("start"),
		End:                  query.Get("end"),
		ExcludeReservationID: query.Get("excludeReservationId"),
	}

	resp, err := h.service.CheckAvailability(r.Context(), identityFrom(r),
		chi.URLParam(r, "tenantId"), chi.URLParam(r, "calendarId"), req)
	if err != nil {
		writeError(w, h.log, err, "check availability")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}
