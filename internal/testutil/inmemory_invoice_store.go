package testutil

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice]("Invoice"),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	c.LineItems = append(invoice.LineItems{}, inv.LineItems...)
	if inv.PaidAt != nil {
		c.PaidAt = lo.ToPtr(*inv.PaidAt)
	}
	if inv.ProviderRef != nil {
		c.ProviderRef = lo.ToPtr(*inv.ProviderRef)
	}
	return &c
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, ownerID, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Find(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.ID == id && inv.OwnerID == ownerID
	})
	return copyInvoice(inv), err
}

func (s *InMemoryInvoiceStore) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	return copyInvoice(inv), err
}

func (s *InMemoryInvoiceStore) GetByProviderRef(ctx context.Context, providerRef string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Find(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return lo.FromPtr(inv.ProviderRef) == providerRef
	})
	return copyInvoice(inv), err
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, ownerID string) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.OwnerID == ownerID
	}, func(i, j *invoice.Invoice) bool {
		return i.DueDate.After(j.DueDate)
	})
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), err
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	updated, err := s.InMemoryStore.Update(ctx, inv.ID, func(stored *invoice.Invoice) (*invoice.Invoice, bool) {
		if stored.OwnerID != inv.OwnerID || stored.Status != types.InvoiceStatusPending {
			return stored, false
		}
		return copyInvoice(inv), true
	})
	if err != nil {
		return err
	}
	if !updated {
		return s.notFound()
	}
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, ownerID, id string) error {
	return s.InMemoryStore.Delete(ctx, id, func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.OwnerID == ownerID
	})
}

func (s *InMemoryInvoiceStore) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	return s.InMemoryStore.Update(ctx, id, func(stored *invoice.Invoice) (*invoice.Invoice, bool) {
		if stored.Status != types.InvoiceStatusPending {
			return stored, false
		}
		next := copyInvoice(stored)
		next.Status = types.InvoiceStatusPaid
		next.PaidAt = lo.ToPtr(paidAt.UTC())
		next.UpdatedAt = time.Now().UTC()
		return next, true
	})
}
