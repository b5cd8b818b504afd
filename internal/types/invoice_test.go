package types

import (
	"strings"
	"testing"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		name      string
		from      InvoiceStatus
		to        InvoiceStatus
		wantErr   bool
		invalidOp bool
	}{
		{name: "pending to paid", from: InvoiceStatusPending, to: InvoiceStatusPaid},
		{name: "pending to cancelled", from: InvoiceStatusPending, to: InvoiceStatusCancelled},
		{name: "pending stays pending", from: InvoiceStatusPending, to: InvoiceStatusPending},
		{name: "paid re-asserted", from: InvoiceStatusPaid, to: InvoiceStatusPaid},
		{name: "cancelled re-asserted", from: InvoiceStatusCancelled, to: InvoiceStatusCancelled},
		{name: "paid back to pending", from: InvoiceStatusPaid, to: InvoiceStatusPending, wantErr: true, invalidOp: true},
		{name: "paid to cancelled", from: InvoiceStatusPaid, to: InvoiceStatusCancelled, wantErr: true, invalidOp: true},
		{name: "cancelled to paid", from: InvoiceStatusCancelled, to: InvoiceStatusPaid, wantErr: true, invalidOp: true},
		{name: "unknown target", from: InvoiceStatusPending, to: "overdue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.ValidateTransition(tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.invalidOp {
				assert.True(t, ierr.IsInvalidOperation(err))
			} else {
				assert.True(t, ierr.IsValidation(err))
			}
		})
	}
}

func TestInvoiceStatusIsTerminal(t *testing.T) {
	assert.False(t, InvoiceStatusPending.IsTerminal())
	assert.True(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusCancelled.IsTerminal())
}

func TestPlanTierValidate(t *testing.T) {
	assert.NoError(t, PlanTierProfessional.Validate())
	assert.True(t, ierr.IsValidation(PlanTier("platinum").Validate()))
}

func TestGenerateShortIDWithPrefix(t *testing.T) {
	for i := 0; i < 50; i++ {
		number := GenerateShortIDWithPrefix(SHORT_ID_PREFIX_INVOICE)
		assert.True(t, strings.HasPrefix(number, SHORT_ID_PREFIX_INVOICE))
		assert.Greater(t, len(number), len(SHORT_ID_PREFIX_INVOICE))
		assert.LessOrEqual(t, len(number), 16)
		assert.NotContains(t, number[len(SHORT_ID_PREFIX_INVOICE):], "-")
	}
	assert.Empty(t, GenerateShortIDWithPrefix("INVOICE-NUMBER-2"))
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_EXPENSE)
	assert.True(t, strings.HasPrefix(id, "exp_"))
	assert.Len(t, id, len("exp_")+26)
	assert.Len(t, GenerateUUIDWithPrefix(""), 26)
}
