package postgres

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/auth"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/types"
)

type authRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	if !r.ValidateProvider(a.Provider) {
		return ierr.NewError("invalid auth provider").
			WithHintf("Unsupported auth provider %s", a.Provider).
			Mark(ierr.ErrValidation)
	}

	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`INSERT INTO auths (user_id, provider, token, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query, a.UserID, a.Provider, a.Token, a.Status, a.CreatedAt, a.UpdatedAt)
	return postgres.WrapError(err, "Credential")
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT user_id, provider, token, status, created_at, updated_at FROM auths WHERE user_id = ? AND status = ?`)

	var a auth.Auth
	if err := q.GetContext(ctx, &a, query, userID, types.StatusActive); err != nil {
		return nil, postgres.WrapError(err, "Credential")
	}
	return &a, nil
}

// ValidateProvider accepts only providers whose secrets are managed by this service
func (r *authRepository) ValidateProvider(provider types.AuthProvider) bool {
	return provider == types.AuthProviderFinanceFlow
}
