package request

import "tenant-booking/internal/data/entity"

type CreateCalendarRequest struct {
	Name                  string               `json:"name" validate:"required,max=200"`
	Description           string               `json:"description" validate:"max=1000"`
	Availability          entity.Availability  `json:"availability"`
	SlotDuration          int                  `json:"slotDuration" validate:"omitempty,min=1,max=1440"`
	BufferTime            int                  `json:"bufferTime" validate:"min=0,max=1440"`
	MaxConcurrentBookings int                  `json:"maxConcurrentBookings" validate:"min=0"`
	IsActive              *bool                `json:"isActive,omitempty"`
	BookingRules          *entity.BookingRules `json:"bookingRules,omitempty"`
	ReservationTypeKey    string               `json:"reservationTypeKey" validate:"max=100"`
}
