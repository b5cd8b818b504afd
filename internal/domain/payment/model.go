package payment

import (
	"time"

	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// Event is a verified provider notification mapped onto the closed
// PaymentEventType set. Type is empty for provider events outside the set.
type Event struct {
	ID           string
	Type         types.PaymentEventType
	ProviderType string
	OwnerID      string
	ObjectID     string
	// InvoiceID is the ledger invoice id carried in provider metadata, if any
	InvoiceID string
	// ProviderInvoiceRef is the provider's own invoice id
	ProviderInvoiceRef string
	PlanID             string
	Amount             decimal.Decimal
	CreatedAt          time.Time
	Raw                []byte
}

// IsKnown reports whether the event maps onto a member of the enumeration
func (e *Event) IsKnown() bool {
	for _, t := range types.PaymentEventTypes {
		if e.Type == t {
			return true
		}
	}
	return false
}

// ProcessedEvent is a row of the durable seen-set
type ProcessedEvent struct {
	EventID     string    `db:"event_id" json:"event_id"`
	EventType   string    `db:"event_type" json:"event_type"`
	OwnerID     string    `db:"owner_id" json:"owner_id"`
	Outcome     string    `db:"outcome" json:"outcome"`
	ProcessedAt time.Time `db:"processed_at" json:"processed_at"`
}

// CheckoutSessionParams carries everything needed to open a subscription checkout
type CheckoutSessionParams struct {
	OwnerID        string
	CustomerEmail  string
	PlanID         string
	PriceID        string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

type CheckoutSession struct {
	ID  string
	URL string
}
