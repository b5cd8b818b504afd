package snapshot

import (
	"time"

	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// Snapshot is the derived financial summary of one owner at a point in time
type Snapshot struct {
	OwnerID             string               `json:"-"`
	Revenue             decimal.Decimal      `json:"revenue"`
	ActiveSubscriptions int                  `json:"active_subscriptions"`
	Outstanding         decimal.Decimal      `json:"outstanding"`
	TotalExpenses       decimal.Decimal      `json:"total_expenses"`
	BudgetPercent       int64                `json:"budget_percent"`
	TaxDeductible       decimal.Decimal      `json:"tax_deductible"`
	LastUpdated         time.Time            `json:"last_updated"`
	Source              types.SnapshotSource `json:"source"`
}

// Ledger is the set of owner records a snapshot is computed from
type Ledger struct {
	Expenses []*expense.Expense
	Clients  []*client.Client
	Invoices []*invoice.Invoice
}

// Copy returns a detached copy so cached snapshots are never shared
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// WithSource returns a copy labelled with source
func (s *Snapshot) WithSource(source types.SnapshotSource) *Snapshot {
	c := s.Copy()
	c.Source = source
	return c
}
