package response

import (
	"time"

	"tenant-booking/internal/data/entity"
)

// CreateReservationResponse is the admission result.
type CreateReservationResponse struct {
	Success       bool                     `json:"success"`
	ReservationID string                   `json:"reservationId"`
	Status        entity.ReservationStatus `json:"status,omitempty"`
	Replayed      bool                     `json:"replayed,omitempty"`
}

type ReservationResponse struct {
	ID                 string                      `json:"id"`
	TenantID           string                      `json:"tenantId"`
	CalendarID         string                      `json:"calendarId"`
	ReservationTypeKey string                      `json:"reservationTypeKey"`
	Start              time.Time                   `json:"start"`
	End                time.Time                   `json:"end"`
	UserID             string                      `json:"userId"`
	Details            map[string]any              `json:"details"`
	Status             entity.ReservationStatus    `json:"status"`
	ApprovedBy         string                      `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time                  `json:"approvedAt,omitempty"`
	CancellationReason string                      `json:"cancellationReason,omitempty"`
	Notes              string                      `json:"notes,omitempty"`
	Metadata           *entity.ReservationMetadata `json:"metadata,omitempty"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

func ReservationToResponse(reservation *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                 reservation.ID,
		TenantID:           reservation.TenantID,
		CalendarID:         reservation.CalendarID,
		ReservationTypeKey: reservation.ReservationTypeKey,
		Start:              reservation.Start,
		End:                reservation.End,
		UserID:             reservation.UserID,
		Details:            reservation.Details,
		Status:             reservation.Status,
		ApprovedBy:         reservation.ApprovedBy,
		ApprovedAt:         reservation.ApprovedAt,
		CancellationReason: reservation.CancellationReason,
		Notes:              reservation.Notes,
		Metadata:           reservation.Metadata,
		CreatedAt:          reservation.CreatedAt,
		UpdatedAt:          reservation.UpdatedAt,
	}
}

type AvailabilityResponse struct {
	Available bool     `json:"available"`
	Conflicts []string `json:"conflicts"`
}
