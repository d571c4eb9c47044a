package adaptor

import (
	"net/http"

	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/usecase"
	"tenant-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// IssueToken handles POST /api/auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.IssueToken(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "issue token")
		return
	}
	utils.ResponseSuccess(w, "success", resp)
}

// CreateUser handles POST /api/tenants/{tenantId}/users (tenant admin)
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerFrom(w, r, h.log, "create user")
	if !ok {
		return
	}

	var req request.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateUser(r.Context(), identity, chi.URLParam(r, "tenantId"), &req)
	if err != nil {
		writeError(w, h.log, err, "create user")
		return
	}
	utils.ResponseCreated(w, "success", resp)
}
