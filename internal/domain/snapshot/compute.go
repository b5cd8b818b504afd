package snapshot

import (
	"time"

	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetPercent returns round_half_up(100 * expenses / revenue), or 0 when
// there is no revenue
func BudgetPercent(expenses, revenue decimal.Decimal) int64 {
	if !revenue.IsPositive() {
		return 0
	}
	pct := expenses.Mul(hundred).Div(revenue).Round(0)
	if pct.IsNegative() {
		return 0
	}
	return pct.IntPart()
}

// Compute derives the snapshot of ownerID from its ledger records. Records
// belonging to any other owner are skipped.
func Compute(ownerID string, ledger Ledger, activeSubscriptions int, now time.Time) *Snapshot {
	s := &Snapshot{
		OwnerID:       ownerID,
		Revenue:       decimal.Zero,
		Outstanding:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		TaxDeductible: decimal.Zero,
		Source:        types.SnapshotSourceLive,
	}

	for _, e := range ledger.Expenses {
		if e == nil || e.OwnerID != ownerID {
			continue
		}
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		if e.TaxDeductible {
			s.TaxDeductible = s.TaxDeductible.Add(e.Amount)
		}
	}

	for _, c := range ledger.Clients {
		if c == nil || c.OwnerID != ownerID {
			continue
		}
		s.Revenue = s.Revenue.Add(c.Revenue)
	}

	for _, inv := range ledger.Invoices {
		if inv == nil || inv.OwnerID != ownerID || !inv.IsPending() {
			continue
		}
		s.Outstanding = s.Outstanding.Add(inv.Amount)
	}

	s.ApplySubscriptionCount(activeSubscriptions, now)
	return s
}

// CountActiveClients is the ledger proxy for active subscriptions: clients of
// ownerID with revenue above zero
func CountActiveClients(ownerID string, clients []*client.Client) int {
	count := 0
	for _, c := range clients {
		if c != nil && c.OwnerID == ownerID && c.IsActive() {
			count++
		}
	}
	return count
}

// ApplySubscriptionCount writes an absolute subscription count
func (s *Snapshot) ApplySubscriptionCount(count int, now time.Time) {
	if count < 0 {
		count = 0
	}
	s.ActiveSubscriptions = count
	s.touch(now)
}

// ApplySubscriptionDeleted decrements the subscription count, never below zero.
// Only used when the provider could not be re-pulled.
func (s *Snapshot) ApplySubscriptionDeleted(now time.Time) {
	s.ApplySubscriptionCount(s.ActiveSubscriptions-1, now)
}

// ApplyInvoicePaid removes a paid invoice amount from outstanding, never below zero
func (s *Snapshot) ApplyInvoicePaid(amount decimal.Decimal, now time.Time) {
	s.Outstanding = s.Outstanding.Sub(amount)
	if s.Outstanding.IsNegative() {
		s.Outstanding = decimal.Zero
	}
	s.touch(now)
}

func (s *Snapshot) touch(now time.Time) {
	s.BudgetPercent = BudgetPercent(s.TotalExpenses, s.Revenue)
	s.LastUpdated = now.UTC()
}

// Demo is the clearly labelled snapshot served when neither the ledger nor a
// cached snapshot is available
func Demo(ownerID string, now time.Time) *Snapshot {
	s := &Snapshot{
		OwnerID:       ownerID,
		Revenue:       decimal.NewFromInt(47250),
		Outstanding:   decimal.NewFromInt(12300),
		TotalExpenses: decimal.NewFromInt(32130),
		TaxDeductible: decimal.NewFromInt(8940),
		Source:        types.SnapshotSourceDemo,
	}
	s.ApplySubscriptionCount(328, now)
	return s
}
