package testutil

import (
	"context"

	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs transactional closures directly against the
// in-memory stores. It counts transactions so tests can assert on them.
type MockPostgresClient struct {
	logger *logger.Logger
	txs    int
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txs++
	return fn(ctx)
}

// Transactions returns how many transactions were opened
func (c *MockPostgresClient) Transactions() int {
	return c.txs
}
