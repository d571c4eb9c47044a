package usecase

import (
	"tenant-booking/internal/data/repository"
	"tenant-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Tenant      TenantService
	Calendar    CalendarService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Tenant:      NewTenantService(repo.Tenant, log),
		Calendar:    NewCalendarService(repo, log),
		Reservation: NewReservationService(repo, config, log),
	}
}
