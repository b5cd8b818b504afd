package repository

import (
	"github.com/financeflow/financeflow/internal/domain/auth"
	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/domain/user"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	postgresRepo "github.com/financeflow/financeflow/internal/repository/postgres"
)

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}

func NewExpenseRepository(db *postgres.DB, logger *logger.Logger) expense.Repository {
	return postgresRepo.NewExpenseRepository(db, logger)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewProcessedEventRepository(db *postgres.DB, logger *logger.Logger) payment.ProcessedEventRepository {
	return postgresRepo.NewProcessedEventRepository(db, logger)
}
