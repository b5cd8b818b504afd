package testutil

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/client"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client]("Client"),
	}
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	cp := *c
	return s.InMemoryStore.Create(ctx, c.ID, &cp)
}

func (s *InMemoryClientStore) List(ctx context.Context, ownerID string) ([]*client.Client, error) {
	return s.InMemoryStore.List(ctx, func(_ context.Context, c *client.Client) bool {
		return c.OwnerID == ownerID
	}, func(i, j *client.Client) bool {
		return i.Name < j.Name
	})
}

func (s *InMemoryClientStore) Delete(ctx context.Context, ownerID, id string) error {
	return s.InMemoryStore.Delete(ctx, id, func(_ context.Context, c *client.Client) bool {
		return c.OwnerID == ownerID
	})
}
