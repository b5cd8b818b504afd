package stripe

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testSecret = "whsec_test"

func signedEvent(t *testing.T, id, eventType string, object map[string]any) ([]byte, string) {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":          id,
		"object":      "event",
		"type":        eventType,
		"created":     time.Now().Unix(),
		"api_version": "2020-08-27",
		"data":        map[string]any{"object": object},
	})
	require.NoError(t, err)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func TestParseEventMapsKnownTypes(t *testing.T) {
	parser := NewEventParser(testSecret, logger.NewNopLogger())

	tests := []struct {
		name      string
		stripe    string
		object    map[string]any
		expected  types.PaymentEventType
		owner     string
		invoiceID string
	}{
		{
			name:     "subscription created",
			stripe:   eventSubscriptionCreated,
			object:   map[string]any{"id": "sub_1", "object": "subscription", "metadata": map[string]string{"owner_id": "user_a", "plan_id": "starter"}},
			expected: types.PaymentEventSubscriptionCreated,
			owner:    "user_a",
		},
		{
			name:     "subscription deleted",
			stripe:   eventSubscriptionDeleted,
			object:   map[string]any{"id": "sub_1", "object": "subscription", "metadata": map[string]string{"owner_id": "user_a"}},
			expected: types.PaymentEventSubscriptionDeleted,
			owner:    "user_a",
		},
		{
			name:      "invoice paid",
			stripe:    eventInvoicePaid,
			object:    map[string]any{"id": "in_1", "object": "invoice", "amount_paid": 10000, "metadata": map[string]string{"invoice_id": "inv_1"}},
			expected:  types.PaymentEventInvoicePaid,
			invoiceID: "inv_1",
		},
		{
			name:     "checkout completed falls back to client reference",
			stripe:   eventCheckoutCompleted,
			object:   map[string]any{"id": "cs_1", "object": "checkout.session", "client_reference_id": "user_b", "metadata": map[string]string{"plan_id": "enterprise"}},
			expected: types.PaymentEventCheckoutCompleted,
			owner:    "user_b",
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, header := signedEvent(t, fmt.Sprintf("evt_%d", i), tt.stripe, tt.object)
			event, err := parser.ParseEvent(body, header)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, event.Type)
			assert.Equal(t, tt.owner, event.OwnerID)
			assert.Equal(t, tt.invoiceID, event.InvoiceID)
			assert.True(t, event.IsKnown())
			assert.Equal(t, body, event.Raw)
		})
	}
}

func TestParseEventInvoiceAmount(t *testing.T) {
	parser := NewEventParser(testSecret, logger.NewNopLogger())
	body, header := signedEvent(t, "evt_amount", eventInvoicePaid, map[string]any{"id": "in_9", "object": "invoice", "amount_paid": 12345})

	event, err := parser.ParseEvent(body, header)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("123.45").Equal(event.Amount))
	assert.Equal(t, "in_9", event.ProviderInvoiceRef)
}

func TestParseEventUnknownType(t *testing.T) {
	parser := NewEventParser(testSecret, logger.NewNopLogger())
	body, header := signedEvent(t, "evt_other", "customer.created", map[string]any{"id": "cus_1", "object": "customer"})

	event, err := parser.ParseEvent(body, header)
	require.NoError(t, err)
	assert.False(t, event.IsKnown())
	assert.Equal(t, "customer.created", event.ProviderType)
}

func TestParseEventRejectsBadSignature(t *testing.T) {
	parser := NewEventParser(testSecret, logger.NewNopLogger())
	body, header := signedEvent(t, "evt_bad", eventInvoicePaid, map[string]any{"id": "in_1", "object": "invoice"})

	tampered := append([]byte{}, body...)
	tampered[len(tampered)-2] = ' '

	_, err := parser.ParseEvent(tampered, header)
	assert.True(t, ierr.IsInvalidSignature(err))

	_, err = NewEventParser("whsec_other", logger.NewNopLogger()).ParseEvent(body, header)
	assert.True(t, ierr.IsInvalidSignature(err))

	_, err = parser.ParseEvent(body, "")
	assert.True(t, ierr.IsInvalidSignature(err))
}
