package entity

import (
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled,
		ReservationStatusCompleted, ReservationStatusNoShow:
		return true
	}
	return false
}

type ReservationMetadata struct {
	Source    string `json:"source,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type Reservation struct {
	Base
	TenantID           string               `db:"tenant_id" json:"tenantId"`
	CalendarID         string               `db:"calendar_id" json:"calendarId"`
	ReservationTypeKey string               `db:"reservation_type_key" json:"reservationTypeKey"`
	Start              time.Time            `db:"start_at" json:"start"`
	End                time.Time            `db:"end_at" json:"end"`
	UserID             string               `db:"user_id" json:"userId"`
	Details            map[string]any       `db:"details" json:"details"`
	Status             ReservationStatus    `db:"status" json:"status"`
	ApprovedBy         string               `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time           `db:"approved_at" json:"approvedAt,omitempty"`
	CancellationReason string               `db:"cancellation_reason" json:"cancellationReason,omitempty"`
	Notes              string               `db:"notes" json:"notes,omitempty"`
	Metadata           *ReservationMetadata `db:"metadata" json:"metadata,omitempty"`
}

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
