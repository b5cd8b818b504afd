package postgres

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
)

const expenseColumns = `id, owner_id, amount, description, date, client, category, tax_deductible, created_at, updated_at`

type expenseRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewExpenseRepository(db *postgres.DB, logger *logger.Logger) expense.Repository {
	return &expenseRepository{db: db, logger: logger}
}

func (r *expenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	r.logger.Debugw("creating expense", "expense_id", e.ID, "owner_id", e.OwnerID)

	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		e.ID,
		e.OwnerID,
		e.Amount,
		e.Description,
		e.Date,
		e.Client,
		e.Category,
		e.TaxDeductible,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return postgres.WrapError(err, "Expense")
}

func (r *expenseRepository) List(ctx context.Context, ownerID string) ([]*expense.Expense, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = ? ORDER BY date DESC, id DESC`)

	expenses := make([]*expense.Expense, 0)
	if err := q.SelectContext(ctx, &expenses, query, ownerID); err != nil {
		return nil, postgres.WrapError(err, "Expense")
	}
	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.logger.Debugw("deleting expense", "expense_id", id, "owner_id", ownerID)

	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`DELETE FROM expenses WHERE id = ? AND owner_id = ?`)
	result, err := q.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return postgres.WrapError(err, "Expense")
	}
	return requireAffected(result, "Expense")
}
