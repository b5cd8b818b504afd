package service

import (
	"github.com/financeflow/financeflow/internal/testutil"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	cfg := s.GetConfig()
	return ServiceParams{
		Logger:             s.GetLogger(),
		Config:             cfg,
		DB:                 s.GetDB(),
		AuthRepo:           stores.AuthRepo,
		UserRepo:           stores.UserRepo,
		ExpenseRepo:        stores.ExpenseRepo,
		ClientRepo:         stores.ClientRepo,
		InvoiceRepo:        stores.InvoiceRepo,
		ProcessedEventRepo: stores.ProcessedEventRepo,
		Snapshots:          NewSnapshotCacheFromConfig(s.GetCache(), cfg, s.GetLogger()),
		Provider:           s.GetProvider(),
	}
}
