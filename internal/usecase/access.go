package usecase

import (
	"tenant-booking/internal/data/entity"
	"tenant-booking/pkg/utils"
)

func isSuperAdmin(identity *utils.Identity) bool {
	return identity.HasRole(string(entity.RoleSuperAdmin))
}

// isTenantAdmin reports whether identity administers tenantID.
func isTenantAdmin(identity *utils.Identity, tenantID string) bool {
	if isSuperAdmin(identity) {
		return true
	}
	return identity.HasRole(string(entity.RoleAdmin)) && identity.TenantID == tenantID
}

func requireIdentity(identity *utils.Identity) error {
	if identity == nil || identity.UserID == "" {
		return Unauthenticated("authentication required")
	}
	return nil
}

// requireTenantMember accepts callers whose claims name tenantID and platform super admins.
func requireTenantMember(identity *utils.Identity, tenantID string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if isSuperAdmin(identity) || identity.TenantID == tenantID {
		return nil
	}
	return PermissionDenied("caller does not belong to tenant %s", tenantID)
}

func requireTenantAdmin(identity *utils.Identity, tenantID string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if !isTenantAdmin(identity, tenantID) {
		return PermissionDenied("tenant admin role required")
	}
	return nil
}
