package testutil

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User]("User"),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Create enforces the unique email constraint of the users table
func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if existing, err := s.GetByEmail(ctx, u.Email); err == nil && existing != nil {
		return ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	return copyUser(u), err
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.InMemoryStore.Find(ctx, func(_ context.Context, u *user.User) bool {
		return u.Email == email
	})
	return copyUser(u), err
}

func (s *InMemoryUserStore) UpdatePlan(ctx context.Context, id string, plan types.PlanTier) error {
	_, err := s.InMemoryStore.Update(ctx, id, func(u *user.User) (*user.User, bool) {
		next := copyUser(u)
		next.Plan = plan
		next.UpdatedAt = time.Now().UTC()
		return next, true
	})
	return err
}
