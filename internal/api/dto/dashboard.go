package dto

import (
	"time"

	"github.com/financeflow/financeflow/internal/domain/snapshot"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// DashboardResponse keeps the field names the web front end reads
type DashboardResponse struct {
	Revenue       decimal.Decimal      `json:"revenue"`
	Subscriptions int                  `json:"subscriptions"`
	Outstanding   decimal.Decimal      `json:"outstanding"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses"`
	BudgetPercent int64                `json:"budgetPercent"`
	TaxDeductible decimal.Decimal      `json:"taxDeductible"`
	LastUpdated   time.Time            `json:"lastUpdated"`
	Source        types.SnapshotSource `json:"source"`
}

func NewDashboardResponse(s *snapshot.Snapshot) *DashboardResponse {
	return &DashboardResponse{
		Revenue:       s.Revenue,
		Subscriptions: s.ActiveSubscriptions,
		Outstanding:   s.Outstanding,
		TotalExpenses: s.TotalExpenses,
		BudgetPercent: s.BudgetPercent,
		TaxDeductible: s.TaxDeductible,
		LastUpdated:   s.LastUpdated,
		Source:        s.Source,
	}
}
