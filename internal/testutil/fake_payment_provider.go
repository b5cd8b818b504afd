package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/financeflow/financeflow/internal/domain/payment"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/integration/stripe"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/stripe/stripe-go/v82/webhook"
)

// TestWebhookSecret signs the events built by FakePaymentProvider
const TestWebhookSecret = "whsec_financeflow_test"

var _ payment.Provider = (*FakePaymentProvider)(nil)

// FakePaymentProvider keeps per-owner subscription counts in memory and
// verifies webhooks with the real Stripe event parser
type FakePaymentProvider struct {
	mu        sync.Mutex
	parser    *stripe.EventParser
	counts    map[string]int
	countErr  error
	pulls     int
	sessions  []*payment.CheckoutSessionParams
	createErr error
}

func NewFakePaymentProvider(logger *logger.Logger) *FakePaymentProvider {
	return &FakePaymentProvider{
		parser: stripe.NewEventParser(TestWebhookSecret, logger),
		counts: make(map[string]int),
	}
}

func (p *FakePaymentProvider) CreateCheckoutSession(_ context.Context, params *payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.createErr != nil {
		return nil, ierr.WithError(p.createErr).
			WithHint("Payment provider request failed").
			Mark(ierr.ErrProvider)
	}
	c := *params
	p.sessions = append(p.sessions, &c)
	id := "cs_test_" + params.IdempotencyKey
	return &payment.CheckoutSession{
		ID:  id,
		URL: "https://checkout.stripe.com/c/pay/" + id,
	}, nil
}

func (p *FakePaymentProvider) CountActiveSubscriptions(_ context.Context, ownerID string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pulls++
	if p.countErr != nil {
		return 0, ierr.WithError(p.countErr).
			WithHint("Unable to load subscriptions from the payment provider").
			Mark(ierr.ErrProvider)
	}
	return p.counts[ownerID], nil
}

func (p *FakePaymentProvider) ParseEvent(rawBody []byte, signatureHeader string) (*payment.Event, error) {
	return p.parser.ParseEvent(rawBody, signatureHeader)
}

// SetSubscriptions sets the authoritative count returned for ownerID
func (p *FakePaymentProvider) SetSubscriptions(ownerID string, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[ownerID] = count
}

// FailPulls makes subscription pulls fail with err; nil restores them
func (p *FakePaymentProvider) FailPulls(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countErr = err
}

// FailCheckout makes checkout session creation fail with err
func (p *FakePaymentProvider) FailCheckout(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createErr = err
}

func (p *FakePaymentProvider) Pulls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pulls
}

func (p *FakePaymentProvider) Sessions() []*payment.CheckoutSessionParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*payment.CheckoutSessionParams{}, p.sessions...)
}

// SignedEvent builds a Stripe event envelope around object and signs it with
// TestWebhookSecret. It returns the raw body and the Stripe-Signature header.
func SignedEvent(id, stripeType string, object map[string]any) ([]byte, string) {
	body, err := json.Marshal(map[string]any{
		"id":          id,
		"object":      "event",
		"type":        stripeType,
		"created":     time.Now().Unix(),
		"api_version": "2020-08-27",
		"data":        map[string]any{"object": object},
	})
	if err != nil {
		panic(err)
	}

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    TestWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}
