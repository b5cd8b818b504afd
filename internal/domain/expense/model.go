package expense

import (
	"time"

	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// Expense is a single business expense owned by exactly one user
type Expense struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"owner_id" json:"-"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Description   string          `db:"description" json:"description"`
	Date          time.Time       `db:"date" json:"date"`
	Client        string          `db:"client" json:"client"`
	Category      string          `db:"category" json:"category"`
	TaxDeductible bool            `db:"tax_deductible" json:"tax_deductible"`
	types.BaseModel
}
