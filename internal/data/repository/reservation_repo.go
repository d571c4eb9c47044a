package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)

	// FindOverlapping returns non-cancelled reservations on the calendar whose
	// [start, end) intersects the given interval.
	FindOverlapping(ctx context.Context, tenantID, calendarID string, start, end time.Time) ([]*entity.Reservation, error)
	FindByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time, limit, offset int) ([]*entity.Reservation, error)
	CountByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time) (int64, error)

	// CreateIfFree inserts the reservation only if fewer than capacity
	// non-cancelled reservations overlap it, atomically with respect to other
	// CreateIfFree calls on the same calendar. Returns ErrSlotUnavailable otherwise.
	CreateIfFree(ctx context.Context, reservation *entity.Reservation, capacity int) error

	// UpdateStatus persists status, approval and cancellation fields.
	UpdateStatus(ctx context.Context, reservation *entity.Reservation) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, tenant_id, calendar_id, reservation_type_key, start_at, end_at, user_id, details,
	status, approved_by, approved_at, cancellation_reason, notes, metadata, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.TenantID,
		&reservation.CalendarID,
		&reservation.ReservationTypeKey,
		&reservation.Start,
		&reservation.End,
		&reservation.UserID,
		&reservation.Details,
		&reservation.Status,
		&reservation.ApprovedBy,
		&reservation.ApprovedAt,
		&reservation.CancellationReason,
		&reservation.Notes,
		&reservation.Metadata,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) collect(rows pgx.Rows) ([]*entity.Reservation, error) {
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find reservation by ID %s: %w", id, err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindOverlapping(ctx context.Context, tenantID, calendarID string, start, end time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE tenant_id = $1
		  AND calendar_id = $2
		  AND status <> 'cancelled'
		  AND start_at < $4
		  AND end_at > $3
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, tenantID, calendarID, start, end)
	if err != nil {
		return nil, fmt.Errorf("find overlapping reservations on calendar %s: %w", calendarID, err)
	}

	return r.collect(rows)
}

func (r *reservationRepository) FindByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE tenant_id = $1
		  AND calendar_id = $2
		  AND status <> 'cancelled'
		  AND start_at < $4
		  AND end_at > $3
		ORDER BY start_at
		LIMIT $5 OFFSET $6
	`

	rows, err := r.db.Query(ctx, query, tenantID, calendarID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find reservations by calendar %s: %w", calendarID, err)
	}

	return r.collect(rows)
}

func (r *reservationRepository) CountByCalendar(ctx context.Context, tenantID, calendarID string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE tenant_id = $1
		  AND calendar_id = $2
		  AND status <> 'cancelled'
		  AND start_at < $4
		  AND end_at > $3
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, tenantID, calendarID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reservations by calendar %s: %w", calendarID, err)
	}
	return count, nil
}

func (r *reservationRepository) CreateIfFree(ctx context.Context, reservation *entity.Reservation, capacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serializes admissions per calendar until commit
	var calendarID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM calendars WHERE id = $1 AND tenant_id = $2 FOR UPDATE`,
		reservation.CalendarID, reservation.TenantID,
	).Scan(&calendarID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("calendar %s not found", reservation.CalendarID)
	}
	if err != nil {
		return fmt.Errorf("lock calendar %s: %w", reservation.CalendarID, err)
	}

	var overlapping int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE tenant_id = $1
		  AND calendar_id = $2
		  AND status <> 'cancelled'
		  AND start_at < $4
		  AND end_at > $3
	`, reservation.TenantID, reservation.CalendarID, reservation.Start, reservation.End).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("count overlapping reservations on calendar %s: %w", reservation.CalendarID, err)
	}

	if overlapping >= max(capacity, 1) {
		return ErrSlotUnavailable
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		reservation.ID,
		reservation.TenantID,
		reservation.CalendarID,
		reservation.ReservationTypeKey,
		reservation.Start,
		reservation.End,
		reservation.UserID,
		reservation.Details,
		reservation.Status,
		reservation.ApprovedBy,
		reservation.ApprovedAt,
		reservation.CancellationReason,
		reservation.Notes,
		reservation.Metadata,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation %s: %w", reservation.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation %s: %w", reservation.ID, err)
	}

	r.log.Debug("Reservation inserted", zap.String("reservation_id", reservation.ID))
	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $2, approved_by = $3, approved_at = $4, cancellation_reason = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Status,
		reservation.ApprovedBy,
		reservation.ApprovedAt,
		reservation.CancellationReason,
		reservation.Notes,
		reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reservation %s status to %s: %w", reservation.ID, reservation.Status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID)
	}

	r.log.Debug("Reservation status updated", zap.String("reservation_id", reservation.ID))
	return nil
}
