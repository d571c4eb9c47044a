package repository

import (
	"context"
	"fmt"
	"sort"

	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/database"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

type boltCalendarRepository struct {
	db  *bbolt.DB
	log *zap.Logger
}

func NewBoltCalendarRepository(db *bbolt.DB, log *zap.Logger) CalendarRepository {
	return &boltCalendarRepository{
		db:  db,
		log: log.With(zap.String("repository", "calendar"), zap.String("store", "bolt")),
	}
}

func (r *boltCalendarRepository) Create(ctx context.Context, calendar *entity.Calendar) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(database.BucketTenants).Get([]byte(calendar.TenantID)) == nil {
			return fmt.Errorf("tenant %s not found", calendar.TenantID)
		}
		return boltPut(tx, database.BucketCalendars, calendar.ID, calendar)
	})
	if err != nil {
		return fmt.Errorf("create calendar %s: %w", calendar.Name, err)
	}

	r.log.Debug("Calendar created", zap.String("calendar_id", calendar.ID))
	return nil
}

func (r *boltCalendarRepository) FindByID(ctx context.Context, id string) (*entity.Calendar, error) {
	var calendar *entity.Calendar
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		calendar, err = boltGet[entity.Calendar](tx, database.BucketCalendars, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find calendar by ID %s: %w", id, err)
	}
	return calendar, nil
}

func (r *boltCalendarRepository) byTenant(tenantID string) ([]*entity.Calendar, error) {
	var calendars []*entity.Calendar
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		calendars, err = boltScan(tx, database.BucketCalendars, func(c *entity.Calendar) bool {
			return c.TenantID == tenantID
		})
		return err
	})
	return calendars, err
}

func (r *boltCalendarRepository) FindByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Calendar, error) {
	calendars, err := r.byTenant(tenantID)
	if err != nil {
		return nil, fmt.Errorf("find calendars by tenant %s: %w", tenantID, err)
	}

	sort.Slice(calendars, func(i, j int) bool {
		return calendars[i].CreatedAt.Before(calendars[j].CreatedAt)
	})
	return page(calendars, limit, offset), nil
}

func (r *boltCalendarRepository) CountByTenantID(ctx context.Context, tenantID string) (int64, error) {
	calendars, err := r.byTenant(tenantID)
	if err != nil {
		return 0, fmt.Errorf("count calendars by tenant %s: %w", tenantID, err)
	}
	return int64(len(calendars)), nil
}

func (r *boltCalendarRepository) Update(ctx context.Context, calendar *entity.Calendar) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(database.BucketCalendars).Get([]byte(calendar.ID)) == nil {
			return fmt.Errorf("calendar %s not found", calendar.ID)
		}
		return boltPut(tx, database.BucketCalendars, calendar.ID, calendar)
	})
	if err != nil {
		return fmt.Errorf("update calendar %s: %w", calendar.ID, err)
	}

	r.log.Debug("Calendar updated", zap.String("calendar_id", calendar.ID))
	return nil
}
