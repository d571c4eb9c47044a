package entity

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusPending   TenantStatus = "pending"
)

type BusinessHours struct {
	Start string `json:"start"` // 09:00
	End   string `json:"end"`   // 17:00
}

type TenantSettings struct {
	Timezone              string         `json:"timezone,omitempty"`
	BusinessHours         *BusinessHours `json:"businessHours,omitempty"`
	MaxAdvanceBookingDays int            `json:"maxAdvanceBookingDays,omitempty"`
}

type Tenant struct {
	Base
	Name         string          `db:"name" json:"name"`
	Domain       string          `db:"domain" json:"domain"`
	SchemaConfig SchemaConfig    `db:"schema_config" json:"schemaConfig"`
	Status       TenantStatus    `db:"status" json:"status"`
	Settings     *TenantSettings `db:"settings" json:"settings,omitempty"`
}

// Schema returns the reservation-type schema registered under key.
func (t *Tenant) Schema(key string) (ReservationTypeSchema, bool) {
	if t.SchemaConfig == nil {
		return ReservationTypeSchema{}, false
	}
	s, ok := t.SchemaConfig[key]
	return s, ok
}
