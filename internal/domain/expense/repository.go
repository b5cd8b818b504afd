package expense

import "context"

// Repository is owner scoped: every method filters on ownerID so one owner
// can never read or remove another owner's expenses
type Repository interface {
	Create(ctx context.Context, expense *Expense) error
	List(ctx context.Context, ownerID string) ([]*Expense, error)
	Delete(ctx context.Context, ownerID, id string) error
}
