package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/sentry"
	"github.com/financeflow/financeflow/internal/testutil"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	params           ServiceParams
	dashboardService DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.dashboardService = NewDashboardService(s.params)
}

func (s *DashboardServiceSuite) addExpense(ownerID string, amount string, taxDeductible bool) {
	s.Require().NoError(s.GetStores().ExpenseRepo.Create(context.Background(), &expense.Expense{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXPENSE),
		OwnerID:       ownerID,
		Amount:        decimal.RequireFromString(amount),
		Description:   "expense",
		Date:          s.GetNow(),
		TaxDeductible: taxDeductible,
		BaseModel:     types.GetDefaultBaseModel(),
	}))
}

func (s *DashboardServiceSuite) addClient(ownerID string, revenue string) {
	s.Require().NoError(s.GetStores().ClientRepo.Create(context.Background(), &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		OwnerID:   ownerID,
		Name:      "client",
		Revenue:   decimal.RequireFromString(revenue),
		Balance:   decimal.Zero,
		BaseModel: types.GetDefaultBaseModel(),
	}))
}

func (s *DashboardServiceSuite) addInvoice(ownerID string, amount string, status types.InvoiceStatus) {
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(context.Background(), &invoice.Invoice{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		OwnerID:    ownerID,
		Number:     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		ClientName: "client",
		Amount:     decimal.RequireFromString(amount),
		Status:     status,
		DueDate:    s.GetNow().AddDate(0, 0, 30),
		BaseModel:  types.GetDefaultBaseModel(),
	}))
}

func (s *DashboardServiceSuite) TestComputeSnapshot() {
	owner := testutil.DefaultOwnerID
	s.addClient(owner, "1000")
	s.addExpense(owner, "300", true)
	s.addExpense(owner, "200", false)
	s.addInvoice(owner, "400", types.InvoiceStatusPending)
	s.addInvoice(owner, "150", types.InvoiceStatusPaid)
	s.addInvoice(owner, "75", types.InvoiceStatusCancelled)
	s.GetProvider().SetSubscriptions(owner, 3)

	snap, err := s.dashboardService.ComputeSnapshot(s.GetContext(), owner)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1000).Equal(snap.Revenue))
	s.True(decimal.NewFromInt(500).Equal(snap.TotalExpenses))
	s.True(decimal.NewFromInt(300).Equal(snap.TaxDeductible))
	s.True(decimal.NewFromInt(400).Equal(snap.Outstanding), "only pending invoices are outstanding")
	s.Equal(int64(50), snap.BudgetPercent)
	s.Equal(3, snap.ActiveSubscriptions)
	s.Equal(types.SnapshotSourceLive, snap.Source)
}

func (s *DashboardServiceSuite) TestSnapshotIsolation() {
	s.addClient(testutil.DefaultOwnerID, "1000")
	s.addExpense(testutil.DefaultOwnerID, "100", false)
	s.addClient("user_other", "99999")
	s.addExpense("user_other", "5000", true)
	s.addInvoice("user_other", "777", types.InvoiceStatusPending)

	resp, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1000).Equal(resp.Revenue))
	s.True(decimal.NewFromInt(100).Equal(resp.TotalExpenses))
	s.True(resp.TaxDeductible.IsZero())
	s.True(resp.Outstanding.IsZero())
	s.Equal(int64(10), resp.BudgetPercent)
}

func (s *DashboardServiceSuite) TestBudgetPercentWithoutRevenue() {
	s.addExpense(testutil.DefaultOwnerID, "250", false)

	resp, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(int64(0), resp.BudgetPercent)
	s.True(resp.Revenue.IsZero())
}

func (s *DashboardServiceSuite) TestServesFreshSnapshotFromCache() {
	s.addClient(testutil.DefaultOwnerID, "1000")

	first, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	pulls := s.GetProvider().Pulls()

	// written behind the service's back, so the cached snapshot is not invalidated
	s.addClient(testutil.DefaultOwnerID, "500")

	second, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.True(first.Revenue.Equal(second.Revenue))
	s.Equal(pulls, s.GetProvider().Pulls())

	s.params.Snapshots.Invalidate(s.GetContext(), testutil.DefaultOwnerID)
	third, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1500).Equal(third.Revenue))
}

func (s *DashboardServiceSuite) TestFallsBackToCachedSnapshot() {
	s.addClient(testutil.DefaultOwnerID, "1000")
	s.addExpense(testutil.DefaultOwnerID, "680", false)

	live, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.SnapshotSourceLive, live.Source)

	s.params.Snapshots.Invalidate(s.GetContext(), testutil.DefaultOwnerID)
	s.GetStores().ExpenseRepo.(*testutil.InMemoryExpenseStore).FailWith(errors.New("connection refused"))

	resp, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.SnapshotSourceCache, resp.Source)
	s.True(live.Revenue.Equal(resp.Revenue))
	s.Equal(live.BudgetPercent, resp.BudgetPercent)
}

func (s *DashboardServiceSuite) TestFallsBackToDemoSnapshot() {
	s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore).FailWith(errors.New("connection refused"))

	resp, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.SnapshotSourceDemo, resp.Source)
	s.True(decimal.NewFromInt(47250).Equal(resp.Revenue))
	s.Equal(328, resp.Subscriptions)
	s.Equal(int64(68), resp.BudgetPercent)
}

func (s *DashboardServiceSuite) TestFallbackReportsWithoutSentryConfigured() {
	s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore).FailWith(errors.New("connection refused"))

	for name, svc := range map[string]*sentry.Service{
		"nil":      nil,
		"disabled": sentry.NewSentryService(s.GetConfig(), s.GetLogger()),
	} {
		params := s.params
		params.Sentry = svc
		resp, err := NewDashboardService(params).GetDashboard(s.GetContext())
		s.Require().NoError(err, name)
		s.Equal(types.SnapshotSourceDemo, resp.Source, name)
	}
}

func (s *DashboardServiceSuite) TestComputeSnapshotReportsStoreFailure() {
	s.GetStores().ClientRepo.(*testutil.InMemoryClientStore).FailWith(errors.New("timeout"))

	_, err := s.dashboardService.ComputeSnapshot(s.GetContext(), testutil.DefaultOwnerID)
	s.Require().Error(err)
}

func (s *DashboardServiceSuite) TestLedgerProxyWithoutProvider() {
	s.GetConfig().Stripe.SecretKey = ""
	s.addClient(testutil.DefaultOwnerID, "1000")
	s.addClient(testutil.DefaultOwnerID, "250")
	s.addClient(testutil.DefaultOwnerID, "0")
	s.GetProvider().SetSubscriptions(testutil.DefaultOwnerID, 40)

	snap, err := s.dashboardService.ComputeSnapshot(s.GetContext(), testutil.DefaultOwnerID)
	s.Require().NoError(err)
	s.Equal(2, snap.ActiveSubscriptions)
	s.Equal(0, s.GetProvider().Pulls())
}

func (s *DashboardServiceSuite) TestProviderFailureKeepsLastKnownCount() {
	s.GetProvider().SetSubscriptions(testutil.DefaultOwnerID, 7)
	_, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)

	s.params.Snapshots.Invalidate(s.GetContext(), testutil.DefaultOwnerID)
	s.GetProvider().FailPulls(errors.New("stripe unavailable"))

	resp, err := s.dashboardService.GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.SnapshotSourceLive, resp.Source)
	s.Equal(7, resp.Subscriptions)
	s.WithinDuration(time.Now(), resp.LastUpdated, time.Minute)
}
