package repository

import (
	"context"
	"errors"
	"fmt"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CalendarRepository interface {
	Create(ctx context.Context, calendar *entity.Calendar) error
	FindByID(ctx context.Context, id string) (*entity.Calendar, error)
	FindByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Calendar, error)
	CountByTenantID(ctx context.Context, tenantID string) (int64, error)
	Update(ctx context.Context, calendar *entity.Calendar) error
}

type calendarRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCalendarRepository(db database.PgxIface, log *zap.Logger) CalendarRepository {
	return &calendarRepository{
		db:  db,
		log: log.With(zap.String("repository", "calendar")),
	}
}

const calendarColumns = `id, tenant_id, name, description, availability, slot_duration, buffer_time,
	max_concurrent_bookings, is_active, booking_rules, reservation_type_key, created_at, updated_at`

func scanCalendar(row pgx.Row) (*entity.Calendar, error) {
	var calendar entity.Calendar
	err := row.Scan(
		&calendar.ID,
		&calendar.TenantID,
		&calendar.Name,
		&calendar.Description,
		&calendar.Availability,
		&calendar.SlotDuration,
		&calendar.BufferTime,
		&calendar.MaxConcurrentBookings,
		&calendar.IsActive,
		&calendar.BookingRules,
		&calendar.ReservationTypeKey,
		&calendar.CreatedAt,
		&calendar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &calendar, nil
}

func (r *calendarRepository) Create(ctx context.Context, calendar *entity.Calendar) error {
	query := `
		INSERT INTO calendars (` + calendarColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		calendar.ID,
		calendar.TenantID,
		calendar.Name,
		calendar.Description,
		calendar.Availability,
		calendar.SlotDuration,
		calendar.BufferTime,
		calendar.MaxConcurrentBookings,
		calendar.IsActive,
		calendar.BookingRules,
		calendar.ReservationTypeKey,
		calendar.CreatedAt,
		calendar.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create calendar %s for tenant %s: %w", calendar.ID, calendar.TenantID, err)
	}

	r.log.Debug("Calendar created", zap.String("calendar_id", calendar.ID))
	return nil
}

func (r *calendarRepository) FindByID(ctx context.Context, id string) (*entity.Calendar, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendars WHERE id = $1`

	calendar, err := scanCalendar(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find calendar by ID %s: %w", id, err)
	}

	return calendar, nil
}

func (r *calendarRepository) FindByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Calendar, error) {
	query := `
		SELECT ` + calendarColumns + `
		FROM calendars
		WHERE tenant_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find calendars by tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var calendars []*entity.Calendar
	for rows.Next() {
		calendar, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar row: %w", err)
		}
		calendars = append(calendars, calendar)
	}

	return calendars, rows.Err()
}

func (r *calendarRepository) CountByTenantID(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM calendars WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count calendars for tenant %s: %w", tenantID, err)
	}
	return count, nil
}

func (r *calendarRepository) Update(ctx context.Context, calendar *entity.Calendar) error {
	query := `
		UPDATE calendars
		SET name = $2, description = $3, availability = $4, slot_duration = $5, buffer_time = $6,
		    max_concurrent_bookings = $7, is_active = $8, booking_rules = $9, reservation_type_key = $10,
		    updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		calendar.ID,
		calendar.Name,
		calendar.Description,
		calendar.Availability,
		calendar.SlotDuration,
		calendar.BufferTime,
		calendar.MaxConcurrentBookings,
		calendar.IsActive,
		calendar.BookingRules,
		calendar.ReservationTypeKey,
		calendar.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update calendar %s: %w", calendar.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("calendar %s not found", calendar.ID)
	}

	r.log.Debug("Calendar updated", zap.String("calendar_id", calendar.ID))
	return nil
}
