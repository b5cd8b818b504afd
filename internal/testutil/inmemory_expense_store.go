package testutil

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/expense"
)

// InMemoryExpenseStore implements expense.Repository
type InMemoryExpenseStore struct {
	*InMemoryStore[*expense.Expense]
}

func NewInMemoryExpenseStore() *InMemoryExpenseStore {
	return &InMemoryExpenseStore{
		InMemoryStore: NewInMemoryStore[*expense.Expense]("Expense"),
	}
}

func (s *InMemoryExpenseStore) Create(ctx context.Context, e *expense.Expense) error {
	c := *e
	return s.InMemoryStore.Create(ctx, e.ID, &c)
}

func (s *InMemoryExpenseStore) List(ctx context.Context, ownerID string) ([]*expense.Expense, error) {
	return s.InMemoryStore.List(ctx, func(_ context.Context, e *expense.Expense) bool {
		return e.OwnerID == ownerID
	}, func(i, j *expense.Expense) bool {
		return i.Date.After(j.Date)
	})
}

func (s *InMemoryExpenseStore) Delete(ctx context.Context, ownerID, id string) error {
	return s.InMemoryStore.Delete(ctx, id, func(_ context.Context, e *expense.Expense) bool {
		return e.OwnerID == ownerID
	})
}
