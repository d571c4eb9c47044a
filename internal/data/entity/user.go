package entity

type UserRole string

const (
	RoleMember     UserRole = "member"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

type User struct {
	Base
	TenantID     string   `db:"tenant_id" json:"tenantId,omitempty"`
	Email        string   `db:"email" json:"email"`
	DisplayName  string   `db:"display_name" json:"displayName"`
	PasswordHash string   `db:"password" json:"passwordHash"`
	Role         UserRole `db:"role" json:"role"`
	IsActive     bool     `db:"is_active" json:"isActive"`
}
