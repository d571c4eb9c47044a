package adaptor

import (
	"tenant-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Tenant      *TenantHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Tenant:      NewTenantHandler(service.Tenant, service.Calendar, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
