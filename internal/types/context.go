package types

import (
	"context"

	ierr "github.com/financeflow/financeflow/internal/errors"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxRole          ContextKey = "ctx_role"
	CtxJWT           ContextKey = "ctx_jwt"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// SystemUserID is used for writes that are not triggered by an authenticated user,
	// e.g. provider webhooks
	SystemUserID = "system"
)

// GetUserID returns the authenticated owner id. It is only ever populated by the
// auth middleware, never from request input.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxRole).(UserRole); ok {
		return role
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRole sets the user role in the context
func SetRole(ctx context.Context, role UserRole) context.Context {
	return context.WithValue(ctx, CtxRole, role)
}

// ValidateOwnerContext makes sure an authenticated owner is present before
// any owner scoped query is issued
func ValidateOwnerContext(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", ierr.NewError("context is nil").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthorized)
	}

	userID := GetUserID(ctx)
	if userID == "" {
		return "", ierr.NewError("no owner found in context").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthorized)
	}

	return userID, nil
}
