package request

import "tenant-booking/internal/data/entity"

type CreateTenantRequest struct {
	Name         string                 `json:"name" validate:"required,max=200"`
	Domain       string                 `json:"domain" validate:"required,max=255"`
	SchemaConfig entity.SchemaConfig    `json:"schemaConfig" validate:"required"`
	Status       entity.TenantStatus    `json:"status" validate:"omitempty,oneof=active suspended pending"`
	Settings     *entity.TenantSettings `json:"settings,omitempty"`
}

// UpdateTenantRequest applies only the fields that are set.
type UpdateTenantRequest struct {
	Name         *string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Domain       *string                `json:"domain,omitempty" validate:"omitempty,min=1,max=255"`
	Status       *entity.TenantStatus   `json:"status,omitempty" validate:"omitempty,oneof=active suspended pending"`
	Settings     *entity.TenantSettings `json:"settings,omitempty"`
	SchemaConfig entity.SchemaConfig    `json:"schemaConfig,omitempty"`
}
