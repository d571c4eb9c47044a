package usecase

import (
	"context"
	"fmt"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
)

type ConflictChecker struct {
	reservations repository.ReservationRepository
}

func NewConflictChecker(reservations repository.ReservationRepository) *ConflictChecker {
	return &ConflictChecker{reservations: reservations}
}

// FindConflicts returns the non-cancelled reservations on the calendar that
// overlap [start, end), leaving out excludeID when it is set.
func (c *ConflictChecker) FindConflicts(ctx context.Context, tenantID, calendarID string, start, end time.Time, excludeID string) ([]*entity.Reservation, error) {
	existing, err := c.reservations.FindOverlapping(ctx, tenantID, calendarID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query overlapping reservations: %w", err)
	}

	conflicts := existing[:0:0]
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Status == entity.ReservationStatusCancelled || !entity.Overlaps(r.Start, r.End, start, end) {
			continue
		}
		conflicts = append(conflicts, r)
	}
	return conflicts, nil
}

func (c *ConflictChecker) HasConflict(ctx context.Context, tenantID, calendarID string, start, end time.Time, excludeID string) (bool, error) {
	conflicts, err := c.FindConflicts(ctx, tenantID, calendarID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}
