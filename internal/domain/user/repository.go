package user

import (
	"context"

	"github.com/financeflow/financeflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePlan(ctx context.Context, id string, plan types.PlanTier) error
}
