package snapshot

import (
	"testing"
	"time"

	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBudgetPercent(t *testing.T) {
	tests := []struct {
		name     string
		expenses string
		revenue  string
		expected int64
	}{
		{"zero revenue", "500", "0", 0},
		{"negative revenue", "500", "-10", 0},
		{"half", "500.00", "1000.00", 50},
		{"rounds half up", "1", "8", 13},
		{"rounds down", "1", "3", 33},
		{"over budget", "1500", "1000", 150},
		{"no expenses", "0", "1000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BudgetPercent(dec(tt.expenses), dec(tt.revenue)))
		})
	}
}

func TestCompute(t *testing.T) {
	now := time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)
	ledger := Ledger{
		Expenses: []*expense.Expense{
			{OwnerID: "user_a", Amount: dec("300.00"), TaxDeductible: true},
			{OwnerID: "user_a", Amount: dec("200.00")},
			{OwnerID: "user_b", Amount: dec("999.99"), TaxDeductible: true},
		},
		Clients: []*client.Client{
			{OwnerID: "user_a", Revenue: dec("600.00")},
			{OwnerID: "user_a", Revenue: dec("400.00")},
			{OwnerID: "user_a", Revenue: decimal.Zero},
			{OwnerID: "user_b", Revenue: dec("5000")},
		},
		Invoices: []*invoice.Invoice{
			{OwnerID: "user_a", Amount: dec("100.00"), Status: types.InvoiceStatusPending},
			{OwnerID: "user_a", Amount: dec("250.00"), Status: types.InvoiceStatusPaid},
			{OwnerID: "user_a", Amount: dec("75.00"), Status: types.InvoiceStatusCancelled},
			{OwnerID: "user_b", Amount: dec("42.00"), Status: types.InvoiceStatusPending},
		},
	}

	s := Compute("user_a", ledger, 2, now)
	require.NotNil(t, s)
	assert.True(t, dec("500").Equal(s.TotalExpenses))
	assert.True(t, dec("300").Equal(s.TaxDeductible))
	assert.True(t, dec("1000").Equal(s.Revenue))
	assert.True(t, dec("100").Equal(s.Outstanding))
	assert.Equal(t, int64(50), s.BudgetPercent)
	assert.Equal(t, 2, s.ActiveSubscriptions)
	assert.Equal(t, types.SnapshotSourceLive, s.Source)
	assert.Equal(t, now, s.LastUpdated)

	other := Compute("user_b", ledger, 0, now)
	assert.True(t, dec("999.99").Equal(other.TotalExpenses))
	assert.True(t, dec("42").Equal(other.Outstanding))
	assert.Equal(t, int64(20), other.BudgetPercent)
}

func TestComputeEmptyLedger(t *testing.T) {
	s := Compute("user_a", Ledger{}, 0, time.Now())
	assert.True(t, s.Revenue.IsZero())
	assert.Equal(t, int64(0), s.BudgetPercent)
	assert.Equal(t, 0, s.ActiveSubscriptions)
}

func TestCountActiveClients(t *testing.T) {
	clients := []*client.Client{
		{OwnerID: "user_a", Revenue: dec("10")},
		{OwnerID: "user_a", Revenue: decimal.Zero},
		{OwnerID: "user_b", Revenue: dec("10")},
		nil,
	}
	assert.Equal(t, 1, CountActiveClients("user_a", clients))
	assert.Equal(t, 1, CountActiveClients("user_b", clients))
	assert.Equal(t, 0, CountActiveClients("user_c", clients))
}

func TestApplyIncrementalUpdates(t *testing.T) {
	now := time.Now()
	s := &Snapshot{
		Revenue:       dec("1000"),
		TotalExpenses: dec("500"),
		Outstanding:   dec("150"),
	}

	s.ApplyInvoicePaid(dec("100"), now)
	assert.True(t, dec("50").Equal(s.Outstanding))
	assert.Equal(t, int64(50), s.BudgetPercent)

	s.ApplyInvoicePaid(dec("100"), now)
	assert.True(t, s.Outstanding.IsZero(), "outstanding is clamped at zero")

	s.ApplySubscriptionCount(3, now)
	assert.Equal(t, 3, s.ActiveSubscriptions)

	s.ApplySubscriptionCount(-4, now)
	assert.Equal(t, 0, s.ActiveSubscriptions)

	s.ApplySubscriptionDeleted(now)
	assert.Equal(t, 0, s.ActiveSubscriptions, "count never goes negative")
}

func TestDemoSatisfiesBudgetInvariant(t *testing.T) {
	s := Demo("user_a", time.Now())
	assert.Equal(t, types.SnapshotSourceDemo, s.Source)
	assert.Equal(t, BudgetPercent(s.TotalExpenses, s.Revenue), s.BudgetPercent)
	assert.Equal(t, int64(68), s.BudgetPercent)
	assert.Equal(t, 328, s.ActiveSubscriptions)
}

func TestCopyIsDetached(t *testing.T) {
	s := Demo("user_a", time.Now())
	c := s.WithSource(types.SnapshotSourceCache)
	c.ActiveSubscriptions = 1
	assert.Equal(t, 328, s.ActiveSubscriptions)
	assert.Equal(t, types.SnapshotSourceDemo, s.Source)
	assert.Equal(t, types.SnapshotSourceCache, c.Source)
}
