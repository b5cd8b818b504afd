package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite
	ctx    context.Context
	db     *postgres.DB
	logger *logger.Logger
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = logger.NewNopLogger()

	cfg := config.GetDefaultConfig()
	cfg.Postgres.Driver = types.DatabaseDriverSQLite
	cfg.Postgres.Path = ":memory:"

	db, err := postgres.NewDB(cfg, s.logger, nil)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(s.ctx))
	s.db = db
}

func (s *RepositorySuite) TearDownTest() {
	s.db.Close()
}

func (s *RepositorySuite) newInvoice(ownerID string, amount string) *invoice.Invoice {
	return &invoice.Invoice{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		OwnerID:    ownerID,
		Number:     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		ClientName: "Acme Corp",
		Amount:     decimal.RequireFromString(amount),
		Status:     types.InvoiceStatusPending,
		DueDate:    time.Now().UTC().Add(14 * 24 * time.Hour),
		LineItems: invoice.LineItems{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.RequireFromString(amount)},
		},
		BaseModel: types.GetDefaultBaseModel(),
	}
}

func (s *RepositorySuite) TestUserAndAuth() {
	users := NewUserRepository(s.db, s.logger)
	auths := NewAuthRepository(s.db, s.logger)

	u := user.NewUser("Owner@Example.com")
	s.Require().NoError(users.Create(s.ctx, u))

	err := users.Create(s.ctx, user.NewUser("owner@example.com"))
	s.True(ierr.IsAlreadyExists(err), "email is unique")

	found, err := users.GetByEmail(s.ctx, "OWNER@example.com ")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal(types.PlanTierFree, found.Plan)

	s.Require().NoError(users.UpdatePlan(s.ctx, u.ID, types.PlanTierProfessional))
	found, err = users.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(types.PlanTierProfessional, found.Plan)

	s.True(ierr.IsNotFound(users.UpdatePlan(s.ctx, "user_missing", types.PlanTierStarter)))

	_, err = users.GetByEmail(s.ctx, "nobody@example.com")
	s.True(ierr.IsNotFound(err))

	s.Require().NoError(auths.CreateAuth(s.ctx, auth.NewAuth(u.ID, types.AuthProviderFinanceFlow, "hash")))
	a, err := auths.GetAuthByUserID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("hash", a.Token)

	err = auths.CreateAuth(s.ctx, auth.NewAuth(u.ID, "google", "hash"))
	s.True(ierr.IsValidation(err))
}

func (s *RepositorySuite) TestExpenseOwnership() {
	repo := NewExpenseRepository(s.db, s.logger)

	e := &expense.Expense{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXPENSE),
		OwnerID:       "user_a",
		Amount:        decimal.RequireFromString("52.99"),
		Description:   "Adobe Creative Cloud",
		Date:          time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
		Client:        "Personal",
		Category:      "software",
		TaxDeductible: true,
		BaseModel:     types.GetDefaultBaseModel(),
	}
	s.Require().NoError(repo.Create(s.ctx, e))

	list, err := repo.List(s.ctx, "user_a")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.True(e.Amount.Equal(list[0].Amount))
	s.True(list[0].TaxDeductible)

	list, err = repo.List(s.ctx, "user_b")
	s.Require().NoError(err)
	s.Empty(list)

	err = repo.Delete(s.ctx, "user_b", e.ID)
	s.True(ierr.IsNotFound(err))

	list, err = repo.List(s.ctx, "user_a")
	s.Require().NoError(err)
	s.Len(list, 1, "foreign delete leaves the record intact")

	s.Require().NoError(repo.Delete(s.ctx, "user_a", e.ID))
	s.True(ierr.IsNotFound(repo.Delete(s.ctx, "user_a", e.ID)))
}

func (s *RepositorySuite) TestClientOwnership() {
	repo := NewClientRepository(s.db, s.logger)

	c := &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		OwnerID:   "user_a",
		Name:      "Acme Corp",
		Email:     "contact@acme.com",
		Revenue:   decimal.RequireFromString("15000"),
		Balance:   decimal.RequireFromString("2500"),
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.Require().NoError(repo.Create(s.ctx, c))

	s.True(ierr.IsNotFound(repo.Delete(s.ctx, "user_b", c.ID)))

	list, err := repo.List(s.ctx, "user_a")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.True(c.Revenue.Equal(list[0].Revenue))
}

func (s *RepositorySuite) TestInvoiceLifecycle() {
	repo := NewInvoiceRepository(s.db, s.logger)

	inv := s.newInvoice("user_a", "100.00")
	inv.ProviderRef = lo.ToPtr("in_123")
	s.Require().NoError(repo.Create(s.ctx, inv))

	got, err := repo.Get(s.ctx, "user_a", inv.ID)
	s.Require().NoError(err)
	s.Equal(inv.Number, got.Number)
	s.Require().Len(got.LineItems, 1)
	s.True(decimal.RequireFromString("100").Equal(got.LineItems.Total()))
	s.Nil(got.PaidAt)

	_, err = repo.Get(s.ctx, "user_b", inv.ID)
	s.True(ierr.IsNotFound(err))

	byRef, err := repo.GetByProviderRef(s.ctx, "in_123")
	s.Require().NoError(err)
	s.Equal(inv.ID, byRef.ID)

	got.ClientName = "Tech Startup"
	got.OwnerID = "user_b"
	s.True(ierr.IsNotFound(repo.Update(s.ctx, got)), "update is owner scoped")

	got.OwnerID = "user_a"
	s.Require().NoError(repo.Update(s.ctx, got))

	paidAt := time.Now().UTC()
	changed, err := repo.MarkPaid(s.ctx, inv.ID, paidAt)
	s.Require().NoError(err)
	s.True(changed)

	changed, err = repo.MarkPaid(s.ctx, inv.ID, paidAt)
	s.Require().NoError(err)
	s.False(changed, "a paid invoice is transitioned once")

	got, err = repo.GetByID(s.ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusPaid, got.Status)
	s.Equal("Tech Startup", got.ClientName)
	s.NotNil(got.PaidAt)

	list, err := repo.List(s.ctx, "user_a")
	s.Require().NoError(err)
	s.Len(list, 1)

	s.True(ierr.IsNotFound(repo.Delete(s.ctx, "user_b", inv.ID)))
	s.Require().NoError(repo.Delete(s.ctx, "user_a", inv.ID))
}

func (s *RepositorySuite) TestMarkPaidInsideRolledBackTransaction() {
	repo := NewInvoiceRepository(s.db, s.logger)
	inv := s.newInvoice("user_a", "40")
	s.Require().NoError(repo.Create(s.ctx, inv))

	err := s.db.WithTx(s.ctx, func(ctx context.Context) error {
		changed, err := repo.MarkPaid(ctx, inv.ID, time.Now())
		s.Require().NoError(err)
		s.True(changed)
		return ierr.NewError("record failed").Mark(ierr.ErrStoreUnavailable)
	})
	s.True(ierr.IsStoreUnavailable(err))

	got, err := repo.GetByID(s.ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusPending, got.Status, "rollback restores pending")
}

func (s *RepositorySuite) TestProcessedEvents() {
	repo := NewProcessedEventRepository(s.db, s.logger)
	now := time.Now().UTC()

	exists, err := repo.Exists(s.ctx, "evt_1")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(repo.Create(s.ctx, &payment.ProcessedEvent{
		EventID:     "evt_1",
		EventType:   string(types.PaymentEventInvoicePaid),
		OwnerID:     "user_a",
		Outcome:     string(types.ReconcileOutcomeApplied),
		ProcessedAt: now.Add(-48 * time.Hour),
	}))
	s.Require().NoError(repo.Create(s.ctx, &payment.ProcessedEvent{
		EventID:     "evt_2",
		EventType:   string(types.PaymentEventSubscriptionCreated),
		Outcome:     string(types.ReconcileOutcomeApplied),
		ProcessedAt: now,
	}))

	err = repo.Create(s.ctx, &payment.ProcessedEvent{EventID: "evt_1", EventType: "x", Outcome: "applied", ProcessedAt: now})
	s.True(ierr.IsAlreadyExists(err))

	exists, err = repo.Exists(s.ctx, "evt_1")
	s.Require().NoError(err)
	s.True(exists)

	n, err := repo.DeleteOlderThan(s.ctx, now.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	exists, err = repo.Exists(s.ctx, "evt_1")
	s.Require().NoError(err)
	s.False(exists)

	exists, err = repo.Exists(s.ctx, "evt_2")
	s.Require().NoError(err)
	s.True(exists)
}
