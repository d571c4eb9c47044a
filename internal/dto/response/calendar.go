package response

import (
	"time"

	"tenant-booking/internal/data/entity"
)

type CalendarResponse struct {
	ID                    string               `json:"id"`
	TenantID              string               `json:"tenantId"`
	Name                  string               `json:"name"`
	Description           string               `json:"description,omitempty"`
	Availability          entity.Availability  `json:"availability"`
	SlotDuration          int                  `json:"slotDuration"`
	BufferTime            int                  `json:"bufferTime"`
	MaxConcurrentBookings int                  `json:"maxConcurrentBookings"`
	IsActive              bool                 `json:"isActive"`
	BookingRules          *entity.BookingRules `json:"bookingRules,omitempty"`
	ReservationTypeKey    string               `json:"reservationTypeKey,omitempty"`
	CreatedAt             time.Time            `json:"createdAt"`
}

func CalendarToResponse(calendar *entity.Calendar) CalendarResponse {
	return CalendarResponse{
		ID:                    calendar.ID,
		TenantID:              calendar.TenantID,
		Name:                  calendar.Name,
		Description:           calendar.Description,
		Availability:          calendar.Availability,
		SlotDuration:          calendar.SlotDuration,
		BufferTime:            calendar.BufferTime,
		MaxConcurrentBookings: calendar.MaxConcurrentBookings,
		IsActive:              calendar.IsActive,
		BookingRules:          calendar.BookingRules,
		ReservationTypeKey:    calendar.ReservationTypeKey,
		CreatedAt:             calendar.CreatedAt,
	}
}
