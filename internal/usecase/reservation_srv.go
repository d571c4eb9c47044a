package usecase

import (
	"context"
	"errors"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/dto/response"
	"tenant-booking/internal/schema"
	"tenant-booking/pkg/metrics"
	"tenant-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ReservationService interface {
	// CreateReservation is the admission flow: auth, input shape, tenant and
	// calendar resolution, schema validation, conflict check, then one write.
	CreateReservation(ctx context.Context, identity *utils.Identity, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error)
	GetReservation(ctx context.Context, identity *utils.Identity, reservationID string) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	CheckAvailability(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	UpdateStatus(ctx context.Context, identity *utils.Identity, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo           *repository.Repository
	conflicts      *ConflictChecker
	policy         *BookingPolicy
	idempotencyTTL time.Duration
	log            *zap.Logger
	now            func() time.Time
	newID          func() string
}

func NewReservationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReservationService {
	ttl := config.Redis.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &reservationService{
		repo:           repo,
		conflicts:      NewConflictChecker(repo.Reservation),
		policy:         NewBookingPolicy(config.Booking.EnforceRules),
		idempotencyTTL: ttl,
		log:            log.With(zap.String("service", "reservation")),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// inFlightTTL bounds how long a claimed key blocks retries if the process
// dies before completing it.
const inFlightTTL = time.Minute

var (
	rangeStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

func (s *reservationService) CreateReservation(ctx context.Context, identity *utils.Identity, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	resp, err := s.admit(ctx, identity, req)

	outcome := "created"
	switch {
	case err != nil:
		outcome = string(KindOf(err))
	case resp.Replayed:
		outcome = "replayed"
	}
	metrics.ReservationAdmissions.WithLabelValues(outcome).Inc()

	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation admitted",
		zap.String("reservation_id", resp.ReservationID),
		zap.String("status", string(resp.Status)),
		zap.Bool("replayed", resp.Replayed),
	)
	return resp, nil
}

func (s *reservationService) admit(ctx context.Context, identity *utils.Identity, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	// 1. Auth: tenant claims, when present, must name the requested tenant
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if identity.TenantID != "" && identity.TenantID != req.TenantID {
		return nil, PermissionDenied("caller does not belong to tenant %s", req.TenantID)
	}

	// 2. Input shape
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}
	start, err := utils.ParseTime(req.Start)
	if err != nil {
		return nil, InvalidArgument("start: %v", err)
	}
	end, err := utils.ParseTime(req.End)
	if err != nil {
		return nil, InvalidArgument("end: %v", err)
	}
	if !end.After(start) {
		return nil, InvalidArgument("end must be after start")
	}

	// Replays short-circuit before any store read
	idemKey := ""
	if req.IdempotencyKey != "" && s.repo.Idempotency != nil {
		idemKey = req.TenantID + ":" + identity.UserID + ":" + req.IdempotencyKey
		existingID, claimed, err := s.repo.Idempotency.Claim(ctx, idemKey, inFlightTTL)
		if err != nil {
			return nil, Internal(err)
		}
		if !claimed {
			if existingID == "" {
				return nil, FailedPrecondition("a request with this idempotency key is still in progress")
			}
			return &response.CreateReservationResponse{Success: true, ReservationID: existingID, Replayed: true}, nil
		}
	}

	reservation, err := s.admitClaimed(ctx, identity, req, start, end)
	if idemKey != "" {
		// the outcome is settled even if the caller has gone away
		keyCtx := context.WithoutCancel(ctx)
		if err != nil {
			if releaseErr := s.repo.Idempotency.Release(keyCtx, idemKey); releaseErr != nil {
				s.log.Warn("Failed to release idempotency key", zap.Error(releaseErr))
			}
		} else if completeErr := s.repo.Idempotency.Complete(keyCtx, idemKey, reservation.ID, s.idempotencyTTL); completeErr != nil {
			s.log.Warn("Failed to record idempotency key", zap.Error(completeErr))
		}
	}
	if err != nil {
		return nil, err
	}

	return &response.CreateReservationResponse{
		Success:       true,
		ReservationID: reservation.ID,
		Status:        reservation.Status,
	}, nil
}

func (s *reservationService) admitClaimed(ctx context.Context, identity *utils.Identity, req *request.CreateReservationRequest, start, end time.Time) (*entity.Reservation, error) {
	// 3. Tenant and calendar are independent reads
	var (
		tenant   *entity.Tenant
		calendar *entity.Calendar
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenant, err = s.repo.Tenant.FindByID(gctx, req.TenantID)
		return err
	})
	g.Go(func() error {
		var err error
		calendar, err = s.repo.Calendar.FindByID(gctx, req.CalendarID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Internal(err)
	}

	if tenant == nil {
		return nil, NotFound("tenant %s not found", req.TenantID)
	}
	if calendar == nil {
		return nil, NotFound("calendar %s not found", req.CalendarID)
	}
	if calendar.TenantID != req.TenantID {
		return nil, PermissionDenied("calendar %s does not belong to tenant %s", req.CalendarID, req.TenantID)
	}

	// 4. Reservation type
	typeKey := req.ReservationTypeKey
	if typeKey == "" {
		typeKey = calendar.ReservationTypeKey
	}
	if typeKey == "" {
		return nil, InvalidArgument("reservationTypeKey is required")
	}
	typeSchema, ok := tenant.Schema(typeKey)
	if !ok {
		return nil, InvalidArgument("unknown reservation type '%s'", typeKey)
	}

	// 5. Details
	if result := schema.Validate(req.Details, typeSchema); !result.Valid {
		return nil, InvalidArgument("%s", result.Message())
	}

	if err := s.policy.Check(tenant, calendar, start, end); err != nil {
		return nil, err
	}

	// 6. Conflicts
	capacity := s.policy.Capacity(calendar)
	conflicts, err := s.conflicts.FindConflicts(ctx, req.TenantID, req.CalendarID, start, end, "")
	if err != nil {
		return nil, Internal(err)
	}
	if len(conflicts) >= capacity {
		return nil, FailedPrecondition(MsgSlotUnavailable)
	}

	// 7. Create, re-checking overlap atomically with the insert
	status := entity.ReservationStatusConfirmed
	if typeSchema.RequiresApproval {
		status = entity.ReservationStatusPending
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	now := s.now().UTC()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        s.newID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:           req.TenantID,
		CalendarID:         req.CalendarID,
		ReservationTypeKey: typeKey,
		Start:              start,
		End:                end,
		UserID:             identity.UserID,
		Details:            req.Details,
		Status:             status,
		Notes:              req.Notes,
		Metadata: &entity.ReservationMetadata{
			Source:    source,
			IPAddress: req.IPAddress,
			UserAgent: req.UserAgent,
		},
	}

	if err := s.repo.Reservation.CreateIfFree(ctx, reservation, capacity); err != nil {
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, FailedPrecondition(MsgSlotUnavailable)
		}
		return nil, Internal(err)
	}

	return reservation, nil
}

func (s *reservationService) GetReservation(ctx context.Context, identity *utils.Identity, reservationID string) (*response.ReservationResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, Internal(err)
	}
	if reservation == nil {
		return nil, NotFound("reservation %s not found", reservationID)
	}

	if !isOwner(identity, reservation) && !isTenantAdmin(identity, reservation.TenantID) {
		return nil, PermissionDenied("not allowed to view reservation %s", reservationID)
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func isOwner(identity *utils.Identity, reservation *entity.Reservation) bool {
	if identity.TenantID != "" && identity.TenantID != reservation.TenantID {
		return false
	}
	return identity.UserID == reservation.UserID
}

// calendarInTenant loads the calendar and checks it belongs to tenantID.
func (s *reservationService) calendarInTenant(ctx context.Context, tenantID, calendarID string) (*entity.Calendar, error) {
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

func (s *reservationService) ListReservations(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.ListReservationsRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if err := requireTenantMember(identity, tenantID); err != nil {
		return nil, err
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, InvalidArgument("%s", utils.FormatValidationErrors(errs))
	}
	if _, err := s.calendarInTenant(ctx, tenantID, calendarID); err != nil {
		return nil, err
	}

	from, to := rangeStart, rangeEnd
	var err error
	if req.From != "" {
		if from, err = utils.ParseTime(req.From); err != nil {
			return nil, InvalidArgument("from: %v", err)
		}
	}
	if req.To != "" {
		if to, err = utils.ParseTime(req.To); err != nil {
			return nil, InvalidArgument("to: %v", err)
		}
	}
	if !to.After(from) {
		return nil, InvalidArgument("to must be after from")
	}

	reservations, err := s.repo.Reservation.FindByCalendar(ctx, tenantID, calendarID, from, to, req.Limit(), req.Offset())
	if err != nil {
		return nil, Internal(err)
	}
	total, err := s.repo.Reservation.CountByCalendar(ctx, tenantID, calendarID, from, to)
	if err != nil {
		return nil, Internal(err)
	}

	data := make([]response.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		data = append(data, response.ReservationToResponse(r))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *reservationService) CheckAvailability(ctx context.Context, identity *utils.Identity, tenantID, calendarID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if err := requireTenantMember(identity, tenantID); err != nil {
		return nil, err
	}
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}
	start, err := utils.ParseTime(req.Start)
	if err != nil {
		return nil, InvalidArgument("start: %v", err)
	}
	end, err := utils.ParseTime(req.End)
	if err != nil {
		return nil, InvalidArgument("end: %v", err)
	}
	if !end.After(start) {
		return nil, InvalidArgument("end must be after start")
	}

	calendar, err := s.calendarInTenant(ctx, tenantID, calendarID)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.conflicts.FindConflicts(ctx, tenantID, calendarID, start, end, req.ExcludeReservationID)
	if err != nil {
		return nil, Internal(err)
	}

	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return &response.AvailabilityResponse{
		Available: len(conflicts) < s.policy.Capacity(calendar),
		Conflicts: ids,
	}, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, identity *utils.Identity, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, Internal(err)
	}
	if reservation == nil {
		return nil, NotFound("reservation %s not found", reservationID)
	}

	admin := isTenantAdmin(identity, reservation.TenantID)
	if !admin && !isOwner(identity, reservation) {
		return nil, PermissionDenied("not allowed to modify reservation %s", reservationID)
	}

	from, to := reservation.Status, entity.ReservationStatus(req.Status)
	if err := checkTransition(from, to, admin); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	reservation.Status = to
	reservation.UpdatedAt = now
	switch to {
	case entity.ReservationStatusConfirmed:
		reservation.ApprovedBy = identity.UserID
		reservation.ApprovedAt = &now
	case entity.ReservationStatusCancelled:
		reservation.CancellationReason = req.CancellationReason
	}
	if req.Notes != "" {
		reservation.Notes = req.Notes
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, reservation); err != nil {
		return nil, Internal(err)
	}
	metrics.ReservationStatusChanges.WithLabelValues(string(to)).Inc()

	s.log.Info("Reservation status changed",
		zap.String("reservation_id", reservationID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("by", identity.UserID),
	)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

// checkTransition allows pending->confirmed (admin), pending|confirmed->cancelled
// (owner or admin) and confirmed->completed|no-show (admin).
func checkTransition(from, to entity.ReservationStatus, admin bool) error {
	adminOnly := false
	switch {
	case from == entity.ReservationStatusPending && to == entity.ReservationStatusConfirmed:
		adminOnly = true
	case (from == entity.ReservationStatusPending || from == entity.ReservationStatusConfirmed) &&
		to == entity.ReservationStatusCancelled:
	case from == entity.ReservationStatusConfirmed &&
		(to == entity.ReservationStatusCompleted || to == entity.ReservationStatusNoShow):
		adminOnly = true
	default:
		return FailedPrecondition("cannot change status from %s to %s", from, to)
	}

	if adminOnly && !admin {
		return PermissionDenied("tenant admin role required to mark reservation %s", to)
	}
	return nil
}
