package auth

import (
	"context"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/user"
	"github.com/financeflow/financeflow/internal/types"
)

type AuthRequest struct {
	Email    string
	Password string
}

type AuthResponse struct {
	// ProviderToken is what gets persisted on the auth record
	ProviderToken string
	AuthToken     string
}

// Provider is the auth gate: it owns credential hashing and the bearer
// token format
type Provider interface {
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest, u *user.User) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, u *user.User, userAuthInfo *auth.Auth) (*AuthResponse, error)
	IssueToken(u *user.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewFinanceFlowAuth(cfg)
}
