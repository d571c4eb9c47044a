package usecase

import (
	"context"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/dto/response"
	"tenant-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSlotDuration          = 30
	defaultMaxConcurrentBookings = 1
)

type CalendarService interface {
	CreateCalendar(ctx context.Context, identity *utils.Identity, tenantID string, req *request.CreateCalendarRequest) (*response.CalendarResponse, error)
	UpdateCalendar(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.CreateCalendarRequest) (*response.CalendarResponse, error)
	GetCalendar(ctx context.Context, identity *utils.Identity, tenantID, calendarID string) (*response.CalendarResponse, error)
	ListCalendars(ctx context.Context, identity *utils.Identity, tenantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CalendarResponse], error)
}

type calendarService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCalendarService(repo *repository.Repository, log *zap.Logger) CalendarService {
	return &calendarService{
		repo: repo,
		log:  log.With(zap.String("service", "calendar")),
	}
}

// checkRequest validates req against the tenant that will own the calendar.
func (s *calendarService) checkRequest(ctx context.Context, tenantID string, req *request.CreateCalendarRequest) error {
	if msg := utils.FirstValidationError(req); msg != "" {
		return InvalidArgument("%s", msg)
	}
	if err := validateAvailability(req.Availability); err != nil {
		return err
	}
	if r := req.BookingRules; r != nil && (r.MinAdvanceHours < 0 || r.MaxDurationMinutes < 0) {
		return InvalidArgument("bookingRules: values must not be negative")
	}

	tenant, err := s.repo.Tenant.FindByID(ctx, tenantID)
	if err != nil {
		return Internal(err)
	}
	if tenant == nil {
		return NotFound("tenant %s not found", tenantID)
	}
	if req.ReservationTypeKey != "" {
		if _, ok := tenant.Schema(req.ReservationTypeKey); !ok {
			return InvalidArgument("unknown reservation type '%s'", req.ReservationTypeKey)
		}
	}
	return nil
}

func applyCalendarRequest(calendar *entity.Calendar, req *request.CreateCalendarRequest) {
	calendar.Name = req.Name
	calendar.Description = req.Description
	calendar.Availability = req.Availability
	if calendar.Availability == nil {
		calendar.Availability = entity.Availability{}
	}
	calendar.SlotDuration = req.SlotDuration
	if calendar.SlotDuration == 0 {
		calendar.SlotDuration = defaultSlotDuration
	}
	calendar.BufferTime = req.BufferTime
	calendar.MaxConcurrentBookings = req.MaxConcurrentBookings
	if calendar.MaxConcurrentBookings == 0 {
		calendar.MaxConcurrentBookings = defaultMaxConcurrentBookings
	}
	calendar.IsActive = true
	if req.IsActive != nil {
		calendar.IsActive = *req.IsActive
	}
	calendar.BookingRules = req.BookingRules
	calendar.ReservationTypeKey = req.ReservationTypeKey
}

func (s *calendarService) CreateCalendar(ctx context.Context, identity *utils.Identity, tenantID string, req *request.CreateCalendarRequest) (*response.CalendarResponse, error) {
	if err := requireTenantAdmin(identity, tenantID); err != nil {
		return nil, err
	}
	if err := s.checkRequest(ctx, tenantID, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	calendar := &entity.Calendar{
		Base: entity.Base{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID: tenantID,
	}
	applyCalendarRequest(calendar, req)

	if err := s.repo.Calendar.Create(ctx, calendar); err != nil {
		return nil, Internal(err)
	}

	s.log.Info("Calendar created", zap.String("calendar_id", calendar.ID), zap.String("tenant_id", tenantID))

	resp := response.CalendarToResponse(calendar)
	return &resp, nil
}

func (s *calendarService) find(ctx context.Context, tenantID, calendarID string) (*entity.Calendar, error) {
	calendar, err := s.repo.Calendar.FindByID(ctx, calendarID)
	if err != nil {
		return nil, Internal(err)
	}
	if calendar == nil {
		return nil, NotFound("calendar %s not found", calendarID)
	}
	if calendar.TenantID != tenantID {
		return nil, PermissionDenied("calendar %s does not belong to tenant %s", calendarID, tenantID)
	}
	return calendar, nil
}

func (s *calendarService) UpdateCalendar(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.CreateCalendarRequest) (*response.CalendarResponse, error) {
	if err := requireTenantAdmin(identity, tenantID); err != nil {
		return nil, err
	}
	calendar, err := s.find(ctx, tenantID, calendarID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRequest(ctx, tenantID, req); err != nil {
		return nil, err
	}

	applyCalendarRequest(calendar, req)
	calendar.UpdatedAt = time.Now().UTC()

	if err := s.repo.Calendar.Update(ctx, calendar); err != nil {
		return nil, Internal(err)
	}

	resp := response.CalendarToResponse(calendar)
	return &resp, nil
}

func (s *calendarService) GetCalendar(ctx context.Context, identity *utils.Identity, tenantID, calendarID string) (*response.CalendarResponse, error) {
	if err := requireTenantMember(identity, tenantID); err != nil {
		return nil, err
	}
	calendar, err := s.find(ctx, tenantID, calendarID)
	if err != nil {
		return nil, err
	}

	resp := response.CalendarToResponse(calendar)
	return &resp, nil
}

func (s *calendarService) ListCalendars(ctx context.Context, identity *utils.Identity, tenantID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CalendarResponse], error) {
	if err := requireTenantMember(identity, tenantID); err != nil {
		return nil, err
	}

	calendars, err := s.repo.Calendar.FindByTenantID(ctx, tenantID, req.Limit(), req.Offset())
	if err != nil {
		return nil, Internal(err)
	}
	total, err := s.repo.Calendar.CountByTenantID(ctx, tenantID)
	if err != nil {
		return nil, Internal(err)
	}

	data := make([]response.CalendarResponse, 0, len(calendars))
	for _, c := range calendars {
		data = append(data, response.CalendarToResponse(c))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}
