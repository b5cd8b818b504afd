package stripe

import (
	"encoding/json"
	"time"

	"github.com/financeflow/financeflow/internal/domain/payment"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe event names understood by the reconciler
const (
	eventSubscriptionCreated  = "customer.subscription.created"
	eventSubscriptionUpdated  = "customer.subscription.updated"
	eventSubscriptionDeleted  = "customer.subscription.deleted"
	eventInvoicePaid          = "invoice.paid"
	eventInvoicePaymentFailed = "invoice.payment_failed"
	eventCheckoutCompleted    = "checkout.session.completed"
)

var eventTypes = map[string]types.PaymentEventType{
	eventSubscriptionCreated:  types.PaymentEventSubscriptionCreated,
	eventSubscriptionUpdated:  types.PaymentEventSubscriptionUpdated,
	eventSubscriptionDeleted:  types.PaymentEventSubscriptionDeleted,
	eventInvoicePaid:          types.PaymentEventInvoicePaid,
	eventInvoicePaymentFailed: types.PaymentEventInvoicePaymentFailed,
	eventCheckoutCompleted:    types.PaymentEventCheckoutCompleted,
}

// EventParser verifies Stripe signatures and maps Stripe events onto payment.Event
type EventParser struct {
	secret string
	logger *logger.Logger
}

func NewEventParser(webhookSecret string, logger *logger.Logger) *EventParser {
	return &EventParser{secret: webhookSecret, logger: logger}
}

// ParseEvent verifies the Stripe-Signature header against the exact body bytes
// before anything in the payload is trusted
func (c *Client) ParseEvent(rawBody []byte, signatureHeader string) (*payment.Event, error) {
	return NewEventParser(c.cfg.WebhookSecret, c.logger).ParseEvent(rawBody, signatureHeader)
}

func (p *EventParser) ParseEvent(rawBody []byte, signatureHeader string) (*payment.Event, error) {
	if p.secret == "" {
		return nil, ierr.NewError("webhook secret is not configured").
			WithHint("Webhook endpoint is not configured").
			Mark(ierr.ErrSystem)
	}

	event, err := webhook.ConstructEventWithOptions(rawBody, signatureHeader, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		p.logger.Warnw("stripe webhook verification failed", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Invalid webhook signature").
			Mark(ierr.ErrInvalidSignature)
	}

	out := &payment.Event{
		ID:           event.ID,
		ProviderType: string(event.Type),
		CreatedAt:    time.Unix(event.Created, 0).UTC(),
		Raw:          rawBody,
	}

	eventType, known := eventTypes[string(event.Type)]
	if !known {
		return out, nil
	}
	out.Type = eventType

	var raw json.RawMessage
	if event.Data != nil {
		raw = event.Data.Raw
	}

	switch eventType {
	case types.PaymentEventSubscriptionCreated,
		types.PaymentEventSubscriptionUpdated,
		types.PaymentEventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := decode(raw, &sub); err != nil {
			return nil, err
		}
		out.ObjectID = sub.ID
		out.OwnerID = sub.Metadata[types.MetadataKeyOwnerID]
		out.PlanID = sub.Metadata[types.MetadataKeyPlanID]

	case types.PaymentEventInvoicePaid, types.PaymentEventInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := decode(raw, &inv); err != nil {
			return nil, err
		}
		out.ObjectID = inv.ID
		out.ProviderInvoiceRef = inv.ID
		out.InvoiceID = inv.Metadata[types.MetadataKeyInvoiceID]
		out.OwnerID = inv.Metadata[types.MetadataKeyOwnerID]
		out.Amount = decimal.New(inv.AmountPaid, -2)

	case types.PaymentEventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := decode(raw, &session); err != nil {
			return nil, err
		}
		out.ObjectID = session.ID
		out.OwnerID = lo.CoalesceOrEmpty(session.Metadata[types.MetadataKeyOwnerID], session.ClientReferenceID)
		out.PlanID = session.Metadata[types.MetadataKeyPlanID]
	}

	return out, nil
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return ierr.NewError("event has no data object").
			WithHint("Malformed webhook payload").
			Mark(ierr.ErrValidation)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ierr.WithError(err).
			WithHint("Malformed webhook payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}
