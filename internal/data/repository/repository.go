package repository

import (
	"errors"

	"tenant-booking/pkg/database"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ErrSlotUnavailable is returned by CreateIfFree when the calendar has no free
// capacity left for the requested interval.
var ErrSlotUnavailable = errors.New("time slot not available")

type Repository struct {
	Tenant      TenantRepository
	Calendar    CalendarRepository
	Reservation ReservationRepository
	User        UserRepository

	// Idempotency is nil unless a Redis client is configured.
	Idempotency IdempotencyStore
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:      NewTenantRepository(db, log),
		Calendar:    NewCalendarRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		User:        NewUserRepository(db, log),
	}
}

func NewBoltRepository(db *bbolt.DB, log *zap.Logger) *Repository {
	return &Repository{
		Tenant:      NewBoltTenantRepository(db, log),
		Calendar:    NewBoltCalendarRepository(db, log),
		Reservation: NewBoltReservationRepository(db, log),
		User:        NewBoltUserRepository(db, log),
	}
}
