package response

import (
	"time"

	"tenant-booking/internal/data/entity"
)

type TenantResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Domain       string                 `json:"domain"`
	SchemaConfig entity.SchemaConfig    `json:"schemaConfig"`
	Status       entity.TenantStatus    `json:"status"`
	Settings     *entity.TenantSettings `json:"settings,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func TenantToResponse(tenant *entity.Tenant) TenantResponse {
	return TenantResponse{
		ID:           tenant.ID,
		Name:         tenant.Name,
		Domain:       tenant.Domain,
		SchemaConfig: tenant.SchemaConfig,
		Status:       tenant.Status,
		Settings:     tenant.Settings,
		CreatedAt:    tenant.CreatedAt,
		UpdatedAt:    tenant.UpdatedAt,
	}
}
