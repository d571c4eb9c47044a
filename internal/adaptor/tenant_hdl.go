package adaptor

import (
	"net/http"

	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TenantHandler struct {
	tenants   usecase.TenantService
	calendars usecase.CalendarService
	log       *zap.Logger
}

func NewTenantHandler(tenants usecase.TenantService, calendars usecase.CalendarService, log *zap.Logger) *TenantHandler {
	return &TenantHandler{
		tenants:   tenants,
		calendars: calendars,
		log:       log.With(zap.String("handler", "tenant")),
	}
}

// CreateTenant handles POST /api/tenants (super admin)
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "create tenant")
	if !ok {
		return
	}

	var req request.CreateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.tenants.CreateTenant(r.Context(), identity, &req)
	if err != nil {
		writeError(w, h.log, err, "create tenant")
		return
	}
	utils.ResponseCreated(w, "success", resp)
}

// ListTenants handles GET /api/tenants (super admin)
func (h *TenantHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	req := paginationFrom(r)
	resp, err := h.tenants.ListTenants(r.Context(), identityFrom(r), &req)
	if err != nil {
		writeError(w, h.log, err, "list tenants")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// GetTenant handles GET /api/tenants/{tenantId}
func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tenants.GetTenant(r.Context(), identityFrom(r), chi.URLParam(r, "tenantId"))
	if err != nil {
		writeError(w, h.log, err, "get tenant")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// UpdateSettings handles PUT /api/tenants/{tenantId}/settings
func (h *TenantHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "update tenant")
	if !ok {
		return
	}

	var req request.UpdateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.tenants.UpdateTenant(r.Context(), identity, chi.URLParam(r, "tenantId"), &req)
	if err != nil {
		writeError(w, h.log, err, "update tenant")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// CreateCalendar handles POST /api/tenants/{tenantId}/calendars
func (h *TenantHandler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "create calendar")
	if !ok {
		return
	}

	var req request.CreateCalendarRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.calendars.CreateCalendar(r.Context(), identity, chi.URLParam(r, "tenantId"), &req)
	if err != nil {
		writeError(w, h.log, err, "create calendar")
		return
	}
	utils.ResponseCreated(w, "success", resp)
}

// UpdateCalendar handles PUT /api/tenants/{tenantId}/calendars/{calendarId}
func (h *TenantHandler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "update calendar")
	if !ok {
		return
	}

	var req request.CreateCalendarRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.calendars.UpdateCalendar(r.Context(), identity,
		chi.URLParam(r, "tenantId"), chi.URLParam(r, "calendarId"), &req)
	if err != nil {
		writeError(w, h.log, err, "update calendar")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// ListCalendars handles GET /api/tenants/{tenantId}/calendars
func (h *TenantHandler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	req := paginationFrom(r)
	resp, err := h.calendars.ListCalendars(r.Context(), identityFrom(r), chi.URLParam(r, "tenantId"), &req)
	if err != nil {
		writeError(w, h.log, err, "list calendars")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// GetCalendar handles GET /api/tenants/{tenantId}/calendars/{calendarId}
func (h *TenantHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	resp, err := h.calendars.GetCalendar(r.Context(), identityFrom(r),
		chi.URLParam(r, "tenantId"), chi.URLParam(r, "calendarId"))
	if err != nil {
		writeError(w, h.log, err, "get calendar")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}
