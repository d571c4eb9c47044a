package usecase

import (
	"context"
	"strings"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/dto/response"
	"tenant-booking/internal/schema"
	"tenant-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TenantService interface {
	CreateTenant(ctx context.Context, identity *utils.Identity, req *request.CreateTenantRequest) (*response.TenantResponse, error)
	GetTenant(ctx context.Context, identity *utils.Identity, tenantID string) (*response.TenantResponse, error)
	ListTenants(ctx context.Context, identity *utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TenantResponse], error)
	UpdateTenant(ctx context.Context, identity *utils.Identity, tenantID string, req *request.UpdateTenantRequest) (*response.TenantResponse, error)
}

type tenantService struct {
	repo repository.TenantRepository
	log  *zap.Logger
}

func NewTenantService(repo repository.TenantRepository, log *zap.Logger) TenantService {
	return &tenantService{
		repo: repo,
		log:  log.With(zap.String("service", "tenant")),
	}
}

func validateSettings(settings *entity.TenantSettings) error {
	if settings == nil {
		return nil
	}
	if settings.Timezone != "" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return InvalidArgument("settings.timezone: unknown time zone '%s'", settings.Timezone)
		}
	}
	if settings.MaxAdvanceBookingDays < 0 {
		return InvalidArgument("settings.maxAdvanceBookingDays must not be negative")
	}
	if bh := settings.BusinessHours; bh != nil {
		open, err1 := parseClock(bh.Start)
		closing, err2 := parseClock(bh.End)
		if err1 != nil || err2 != nil || closing <= open {
			return InvalidArgument("settings.businessHours: invalid interval")
		}
	}
	return nil
}

func validateSchemaConfig(config entity.SchemaConfig) error {
	if errs := schema.CheckConfig(config); len(errs) > 0 {
		return InvalidArgument("%s", strings.Join(errs, ", "))
	}
	return nil
}

func (s *tenantService) CreateTenant(ctx context.Context, identity *utils.Identity, req *request.CreateTenantRequest) (*response.TenantResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if !isSuperAdmin(identity) {
		return nil, PermissionDenied("super admin role required")
	}

	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}
	if err := validateSchemaConfig(req.SchemaConfig); err != nil {
		return nil, err
	}
	if err := validateSettings(req.Settings); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.TenantStatusActive
	}

	now := time.Now().UTC()
	tenant := &entity.Tenant{
		Base: entity.Base{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Domain:       strings.ToLower(req.Domain),
		SchemaConfig: req.SchemaConfig,
		Status:       status,
		Settings:     req.Settings,
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, Internal(err)
	}

	s.log.Info("Tenant created",
		zap.String("tenant_id", tenant.ID),
		zap.Int("reservation_types", len(tenant.SchemaConfig)),
	)

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}

func (s *tenantService) find(ctx context.Context, tenantID string) (*entity.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, Internal(err)
	}
	if tenant == nil {
		return nil, NotFound("tenant %s not found", tenantID)
	}
	return tenant, nil
}

func (s *tenantService) GetTenant(ctx context.Context, identity *utils.Identity, tenantID string) (*response.TenantResponse, error) {
	if err := requireTenantMember(identity, tenantID); err != nil {
		return nil, err
	}

	tenant, err := s.find(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}

func (s *tenantService) ListTenants(ctx context.Context, identity *utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TenantResponse], error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if !isSuperAdmin(identity) {
		return nil, PermissionDenied("super admin role required")
	}

	tenants, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, Internal(err)
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, Internal(err)
	}

	data := make([]response.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		data = append(data, response.TenantToResponse(t))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, identity *utils.Identity, tenantID string, req *request.UpdateTenantRequest) (*response.TenantResponse, error) {
	if err := requireTenantAdmin(identity, tenantID); err != nil {
		return nil, err
	}
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}
	if req.Status != nil && !isSuperAdmin(identity) {
		return nil, PermissionDenied("only super admins change tenant status")
	}

	tenant, err := s.find(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Domain != nil {
		tenant.Domain = strings.ToLower(*req.Domain)
	}
	if req.Status != nil {
		tenant.Status = *req.Status
	}
	if req.Settings != nil {
		if err := validateSettings(req.Settings); err != nil {
			return nil, err
		}
		tenant.Settings = req.Settings
	}
	// existing reservations keep the snapshot they were admitted under
	if req.SchemaConfig != nil {
		if err := validateSchemaConfig(req.SchemaConfig); err != nil {
			return nil, err
		}
		tenant.SchemaConfig = req.SchemaConfig
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, Internal(err)
	}

	s.log.Info("Tenant updated", zap.String("tenant_id", tenantID), zap.String("by", identity.UserID))

	resp := response.TenantToResponse(tenant)
	return &resp, nil
}
