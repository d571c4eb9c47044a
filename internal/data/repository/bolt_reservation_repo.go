package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type boltReservationRepository struct {
	db  *bbolt.DB
	log *zap.Logger
}

func NewBoltReservationRepository(db *bbolt.DB, log *zap.Logger) ReservationRepository {
	return &boltReservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation"), zap.String("store", "bolt")),
	}
}

func activeOverlap(tenantID, calendarID string, start, end time.Time) func(*entity.Reservation) bool {
	return func(r *entity.Reservation) bool {
		return r.TenantID == tenantID &&
			r.CalendarID == calendarID &&
			r.Status != entity.ReservationStatusCancelled &&
			entity.Overlaps(r.Start, r.End, start, end)
	}
}

func sortByStart(reservations []*entity.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].Start.Before(reservations[j].Start)
	})
}

func (r *boltReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation *entity.Reservation
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		reservation, err = boltGet[entity.Reservation](tx, database.BucketReservations, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find reservation by ID %s: %w", id, err)
	}
	return reservation, nil
}

func (r *boltReservationRepository) scan(keep func(*entity.Reservation) bool) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		reservations, err = boltScan(tx, database.BucketReservations, keep)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortByStart(reservations)
	return reservations, nil
}

func (r *boltReservationRepository) FindOverlapping(ctx context.Context, tenantID, calendarID string, start, end time.Time) ([]*entity.Reservation, error) {
	reservations, err := r.scan(activeOverlap(tenantID, calendarID, start, end))
	if err != nil {
		return nil, fmt.Errorf("find overlapping reservations on calendar %s: %w", calendarID, err)
	}
	return reservations, nil
}

func (r *boltReservationRepository) FindByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time, limit, offset int) ([]*entity.Reservation, error) {
	reservations, err := r.scan(activeOverlap(tenantID, calendarID, from, to))
	if err != nil {
		return nil, fmt.Errorf("find reservations by calendar %s: %w", calendarID, err)
	}
	return page(reservations, limit, offset), nil
}

func (r *boltReservationRepository) CountByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time) (int64, error) {
	reservations, err := r.scan(activeOverlap(tenantID, calendarID, from, to))
	if err != nil {
		return 0, fmt.Errorf("count reservations by calendar %s: %w", calendarID, err)
	}
	return int64(len(reservations)), nil
}

// CreateIfFree relies on bbolt allowing a single writer at a time.
func (r *boltReservationRepository) CreateIfFree(ctx context.Context, reservation *entity.Reservation, capacity int) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		calendar, err := boltGet[entity.Calendar](tx, database.BucketCalendars, reservation.CalendarID)
		if err != nil {
			return err
		}
		if calendar == nil || calendar.TenantID != reservation.TenantID {
			return fmt.Errorf("calendar %s not found", reservation.CalendarID)
		}

		overlapping, err := boltScan(tx, database.BucketReservations,
			activeOverlap(reservation.TenantID, reservation.CalendarID, reservation.Start, reservation.End))
		if err != nil {
			return err
		}
		if len(overlapping) >= max(capacity, 1) {
			return ErrSlotUnavailable
		}

		return boltPut(tx, database.BucketReservations, reservation.ID, reservation)
	})
	if errors.Is(err, ErrSlotUnavailable) {
		return err
	}
	if err != nil {
		return fmt.Errorf("create reservation %s: %w", reservation.ID, err)
	}

	r.log.Debug("Reservation inserted", zap.String("reservation_id", reservation.ID))
	return nil
}

func (r *boltReservationRepository) UpdateStatus(ctx context.Context, reservation *entity.Reservation) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		stored, err := boltGet[entity.Reservation](tx, database.BucketReservations, reservation.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("reservation %s not found", reservation.ID)
		}

		stored.Status = reservation.Status
		stored.ApprovedBy = reservation.ApprovedBy
		stored.ApprovedAt = reservation.ApprovedAt
		stored.CancellationReason = reservation.CancellationReason
		stored.Notes = reservation.Notes
		stored.UpdatedAt = reservation.UpdatedAt
		return boltPut(tx, database.BucketReservations, stored.ID, stored)
	})
	if err != nil {
		return fmt.Errorf("update reservation %s status to %s: %w", reservation.ID, reservation.Status, err)
	}

	r.log.Debug("Reservation status updated", zap.String("reservation_id", reservation.ID))
	return nil
}
