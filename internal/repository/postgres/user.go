package postgres

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/types"
)

const userColumns = `id, email, role, plan, status, created_at, updated_at`

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`
	INSERT INTO users (` + userColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(
		ctx, query,
		u.ID,
		u.Email,
		u.Role,
		u.Plan,
		u.Status,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return postgres.WrapError(err, "User")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	var u user.User
	if err := q.GetContext(ctx, &u, query, id); err != nil {
		return nil, postgres.WrapError(err, "User")
	}
	return &u, nil
}

// GetByEmail is only used by login and registration, before an owner is known
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)

	var u user.User
	if err := q.GetContext(ctx, &u, query, user.NormalizeEmail(email)); err != nil {
		return nil, postgres.WrapError(err, "User")
	}
	return &u, nil
}

func (r *userRepository) UpdatePlan(ctx context.Context, id string, plan types.PlanTier) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`UPDATE users SET plan = ?, updated_at = ? WHERE id = ?`)

	result, err := q.ExecContext(ctx, query, plan, time.Now().UTC(), id)
	if err != nil {
		return postgres.WrapError(err, "User")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
