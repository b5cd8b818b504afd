package service

import (
	"context"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	ListExpenses(ctx context.Context) (*dto.ListExpensesResponse, error)
	DeleteExpense(ctx context.Context, id string) error
}

type expenseService struct {
	ServiceParams
}

func NewExpenseService(params ServiceParams) ExpenseService {
	return &expenseService{
		ServiceParams: params,
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := req.ToExpense(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ExpenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("expense created", "owner_id", ownerID, "expense_id", e.ID)
	return dto.NewExpenseResponse(e), nil
}

func (s *expenseService) ListExpenses(ctx context.Context) (*dto.ListExpensesResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ExpenseRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return dto.NewListResponse(lo.Map(expenses, func(e *expense.Expense, _ int) *dto.ExpenseResponse {
		return dto.NewExpenseResponse(e)
	})), nil
}

// DeleteExpense removes one of the caller's expenses. A foreign or missing id is
// reported as not found.
func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return err
	}

	if err := s.ExpenseRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("expense deleted", "owner_id", ownerID, "expense_id", id)
	return nil
}

// invalidateSnapshot drops the owner's fresh snapshot after a ledger mutation
func invalidateSnapshot(ctx context.Context, snapshots *SnapshotCache, ownerID string) {
	if snapshots == nil {
		return
	}
	unlock := snapshots.Lock(ownerID)
	defer unlock()
	snapshots.Invalidate(ctx, ownerID)
}
