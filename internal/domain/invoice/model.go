package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is a bill raised against a client. Amount is always the sum of the
// line items when line items are present.
type Invoice struct {
	ID          string              `db:"id" json:"id"`
	OwnerID     string              `db:"owner_id" json:"-"`
	Number      string              `db:"number" json:"number"`
	ClientName  string              `db:"client_name" json:"client_name"`
	Amount      decimal.Decimal     `db:"amount" json:"amount"`
	Status      types.InvoiceStatus `db:"status" json:"status"`
	DueDate     time.Time           `db:"due_date" json:"due_date"`
	PaidAt      *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	LineItems   LineItems           `db:"line_items" json:"line_items"`
	ProviderRef *string             `db:"provider_ref" json:"provider_ref,omitempty"`
	types.BaseModel
}

type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unit_amount"`
}

// Total returns quantity * unit amount
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitAmount)
}

// LineItems is stored as a JSON column
type LineItems []LineItem

// Total sums every line item
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.Total())
	}
	return total
}

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineItems) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return ierr.NewErrorf("unsupported line items column type %T", src).
			Mark(ierr.ErrSystem)
	}
	if len(data) == 0 {
		*l = LineItems{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// IsPending reports whether the invoice still counts toward outstanding
func (i *Invoice) IsPending() bool {
	return i.Status == types.InvoiceStatusPending
}
