package testutil

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/types"
)

// SetupContext returns a context authenticated as the default staff user
func SetupContext() context.Context {
	return ContextAs(types.DefaultUserID, types.UserRoleAdmin)
}

// ContextAs returns a context authenticated as userID with role
func ContextAs(userID string, role types.UserRole) context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, userID)
	ctx = types.SetUserRole(ctx, role)
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
