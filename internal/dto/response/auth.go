package response

import (
	"time"

	"tenant-booking/internal/data/entity"
)

type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenantId,omitempty"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        entity.UserRole `json:"role"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}
