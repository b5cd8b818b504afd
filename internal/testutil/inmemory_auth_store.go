package testutil

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/auth"
)

// InMemoryAuthStore implements auth.Repository
type InMemoryAuthStore struct {
	*InMemoryStore[*auth.Auth]
}

func NewInMemoryAuthStore() *InMemoryAuthStore {
	return &InMemoryAuthStore{
		InMemoryStore: NewInMemoryStore[*auth.Auth]("Auth"),
	}
}

func (s *InMemoryAuthStore) CreateAuth(ctx context.Context, a *auth.Auth) error {
	c := *a
	return s.InMemoryStore.Create(ctx, a.UserID, &c)
}

func (s *InMemoryAuthStore) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	a, err := s.InMemoryStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c := *a
	return &c, nil
}
