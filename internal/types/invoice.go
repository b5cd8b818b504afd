package types

import (
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus is the closed set of states an invoice can be in
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether no further transition is allowed out of the status
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// ValidateTransition checks that moving from s to next is allowed.
// Re-asserting the current status is accepted as a no-op.
func (s InvoiceStatus) ValidateTransition(next InvoiceStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == next {
		return nil
	}
	if s == InvoiceStatusPending && (next == InvoiceStatusPaid || next == InvoiceStatusCancelled) {
		return nil
	}
	return ierr.NewError("invalid invoice status transition").
		WithHintf("Invoice cannot move from %s to %s", s, next).
		WithReportableDetails(map[string]any{
			"from": s,
			"to":   next,
		}).
		Mark(ierr.ErrInvalidOperation)
}
