package dto

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/expense"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/financeflow/financeflow/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"positive"`
	Description   string          `json:"description" validate:"required,max=500"`
	Date          string          `json:"date,omitempty"`
	Client        string          `json:"client,omitempty" validate:"omitempty,max=255"`
	Category      string          `json:"category,omitempty" validate:"omitempty,max=100"`
	TaxDeductible bool            `json:"tax_deductible"`
}

func (r *CreateExpenseRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	_, err := parseDate("date", r.Date, time.Time{})
	return err
}

// ToExpense builds the ledger record for the authenticated owner
func (r *CreateExpenseRequest) ToExpense(ctx context.Context) (*expense.Expense, error) {
	base := types.GetDefaultBaseModel()
	date, err := parseDate("date", r.Date, base.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &expense.Expense{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXPENSE),
		OwnerID:       types.GetUserID(ctx),
		Amount:        r.Amount,
		Description:   r.Description,
		Date:          date,
		Client:        r.Client,
		Category:      r.Category,
		TaxDeductible: r.TaxDeductible,
		BaseModel:     base,
	}, nil
}

type ExpenseResponse struct {
	*expense.Expense
}

func NewExpenseResponse(e *expense.Expense) *ExpenseResponse {
	return &ExpenseResponse{Expense: e}
}

type ListExpensesResponse = ListResponse[*ExpenseResponse]
