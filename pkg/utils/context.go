package utils

import (
	"context"
	"slices"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller plus the custom claims attached by the identity provider.
// TenantID is empty for platform-level callers.
type Identity struct {
	UserID   string
	TenantID string
	Roles    []string
}

func (i *Identity) HasRole(role string) bool {
	return i != nil && slices.Contains(i.Roles, role)
}

func SetIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the caller identity stored by the auth middleware, or nil.
func GetIdentity(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
