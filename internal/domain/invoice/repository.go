package invoice

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	// Get returns the invoice only when it belongs to ownerID
	Get(ctx context.Context, ownerID, id string) (*Invoice, error)
	// GetByID is unscoped and reserved for provider event reconciliation
	GetByID(ctx context.Context, id string) (*Invoice, error)
	GetByProviderRef(ctx context.Context, providerRef string) (*Invoice, error)
	List(ctx context.Context, ownerID string) ([]*Invoice, error)
	// Update writes inv only while the stored invoice is still pending; a
	// missing, foreign or settled invoice matches nothing and is not found
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, ownerID, id string) error
	// MarkPaid moves a pending invoice to paid and reports whether this call
	// performed the transition. A paid or cancelled invoice is left untouched.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
}
