package usecase

import (
	"context"
	"strings"
	"time"

	"tenant-booking/internal/data/entity"
	"tenant-booking/internal/data/repository"
	"tenant-booking/internal/dto/request"
	"tenant-booking/internal/dto/response"
	"tenant-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
	CreateUser(ctx context.Context, identity *utils.Identity, tenantID string, req *request.CreateUserRequest) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Validate
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, Internal(err)
	}

	// 3. Check password and status with one message for every failure
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, Unauthenticated("invalid email or password")
	}
	if !user.IsActive {
		return nil, Unauthenticated("invalid email or password")
	}

	// 4. Sign
	token, expiresAt, err := utils.GenerateToken(s.config.JWT, user.ID, user.TenantID, []string{string(user.Role)})
	if err != nil {
		return nil, Internal(err)
	}

	s.log.Info("Token issued", zap.String("user_id", user.ID), zap.String("tenant_id", user.TenantID))

	return &response.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, identity *utils.Identity, tenantID string, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Only tenant admins add members
	if err := requireTenantAdmin(identity, tenantID); err != nil {
		return nil, err
	}

	// 2. Validate
	if msg := utils.FirstValidationError(req); msg != "" {
		return nil, InvalidArgument("%s", msg)
	}

	tenant, err := s.repo.Tenant.FindByID(ctx, tenantID)
	if err != nil {
		return nil, Internal(err)
	}
	if tenant == nil {
		return nil, NotFound("tenant %s not found", tenantID)
	}

	// 3. Email is unique across tenants
	email := strings.ToLower(req.Email)
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, Internal(err)
	}
	if existing != nil {
		return nil, FailedPrecondition("email already registered")
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, Internal(err)
	}

	role := entity.RoleMember
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	// 5. Save
	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:     tenantID,
		Email:        email,
		DisplayName:  req.DisplayName,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, Internal(err)
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("tenant_id", tenantID),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
