package testutil

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/cache"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/domain/user"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/financeflow/financeflow/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo           user.Repository
	AuthRepo           auth.Repository
	ExpenseRepo        expense.Repository
	ClientRepo         client.Repository
	InvoiceRepo        invoice.Repository
	ProcessedEventRepo payment.ProcessedEventRepository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	stores   Stores
	db       *MockPostgresClient
	cache    cache.Cache
	provider *FakePaymentProvider
	logger   *logger.Logger
	config   *config.Configuration
	now      time.Time
}

// DefaultOwnerID is the owner the default test context is authenticated as
const DefaultOwnerID = "user_test_owner"

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.config = newTestConfig()
	s.ctx = SetupContext(DefaultOwnerID)
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func newTestConfig() *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.Deployment.Mode = types.ModeLocal
	cfg.Auth.Secret = "test-secret-for-unit-tests-only"
	cfg.Stripe.SecretKey = "sk_test_financeflow"
	cfg.Stripe.WebhookSecret = TestWebhookSecret
	cfg.Stripe.Plans = map[string]string{
		"starter":      "price_starter",
		"professional": "price_professional",
		"enterprise":   "price_enterprise",
	}
	cfg.Stripe.MaxRetries = 0
	cfg.Dashboard.StoreTimeout = time.Second
	return cfg
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:           NewInMemoryUserStore(),
		AuthRepo:           NewInMemoryAuthStore(),
		ExpenseRepo:        NewInMemoryExpenseStore(),
		ClientRepo:         NewInMemoryClientStore(),
		InvoiceRepo:        NewInMemoryInvoiceStore(),
		ProcessedEventRepo: NewInMemoryProcessedEventStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config)
	s.provider = NewFakePaymentProvider(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AuthRepo.(*InMemoryAuthStore).Clear()
	s.stores.ExpenseRepo.(*InMemoryExpenseStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ProcessedEventRepo.(*InMemoryProcessedEventStore).Clear()
	s.cache.Flush(context.Background())
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetCache returns the cache backing snapshot storage
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetProvider returns the fake payment provider
func (s *BaseServiceTestSuite) GetProvider() *FakePaymentProvider {
	return s.provider
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
