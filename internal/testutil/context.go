package testutil

import (
	"context"

	"github.com/financeflow/financeflow/internal/types"
)

// SetupContext returns a request context authenticated as ownerID
func SetupContext(ownerID string) context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, ownerID)
	ctx = types.SetRole(ctx, types.UserRoleOwner)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
