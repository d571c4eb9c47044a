package request

type CreateReservationRequest struct {
	TenantID           string         `json:"tenantId" validate:"required"`
	CalendarID         string         `json:"calendarId" validate:"required"`
	Start              string         `json:"start" validate:"required"`
	End                string         `json:"end" validate:"required"`
	Details            map[string]any `json:"details" validate:"required"`
	ReservationTypeKey string         `json:"reservationTypeKey,omitempty"`
	Notes              string         `json:"notes,omitempty" validate:"max=1000"`

	// Filled by the handler from headers, never from the body.
	IdempotencyKey string `json:"-"`
	Source         string `json:"-"`
	IPAddress      string `json:"-"`
	UserAgent      string `json:"-"`
}

type UpdateReservationStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=pending confirmed cancelled completed no-show"`
	CancellationReason string `json:"cancellationReason,omitempty" validate:"max=500"`
	Notes              string `json:"notes,omitempty" validate:"max=1000"`
}

type ListReservationsRequest struct {
	PaginatedRequest
	From string `json:"from"`
	To   string `json:"to"`
}

type AvailabilityRequest struct {
	Start                string `json:"start" validate:"required"`
	End                  string `json:"end" validate:"required"`
	ExcludeReservationID string `json:"excludeReservationId,omitempty"`
}
