package entity

type BreakInterval struct {
	Name  string `json:"name,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailability is one weekday's opening window, times as "15:04".
type DayAvailability struct {
	Start  string          `json:"start"`
	End    string          `json:"end"`
	Breaks []BreakInterval `json:"breaks,omitempty"`
}

// Availability is keyed by lowercase weekday name ("monday" ... "sunday").
type Availability map[string]DayAvailability

type BookingRules struct {
	MinAdvanceHours    int   `json:"minAdvanceHours,omitempty"`
	MaxDurationMinutes int   `json:"maxDurationMinutes,omitempty"`
	AllowWeekends      *bool `json:"allowWeekends,omitempty"`
}

type Calendar struct {
	Base
	TenantID              string        `db:"tenant_id" json:"tenantId"`
	Name                  string        `db:"name" json:"name"`
	Description           string        `db:"description" json:"description,omitempty"`
	Availability          Availability  `db:"availability" json:"availability"`
	SlotDuration          int           `db:"slot_duration" json:"slotDuration"` // minutes
	BufferTime            int           `db:"buffer_time" json:"bufferTime,omitempty"`
	MaxConcurrentBookings int           `db:"max_concurrent_bookings" json:"maxConcurrentBookings"`
	IsActive              bool          `db:"is_active" json:"isActive"`
	BookingRules          *BookingRules `db:"booking_rules" json:"bookingRules,omitempty"`
	ReservationTypeKey    string        `db:"reservation_type_key" json:"reservationTypeKey,omitempty"`
}
