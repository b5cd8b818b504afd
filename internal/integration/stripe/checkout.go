package stripe

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// CreateCheckoutSession opens a hosted subscription checkout for one plan.
// The owner and plan travel in metadata so later events can be attributed.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutSessionParams) (*payment.CheckoutSession, error) {
	metadata := map[string]string{
		types.MetadataKeyOwnerID: req.OwnerID,
		types.MetadataKeyPlanID:  req.PlanID,
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OwnerID),
		Metadata:          metadata,
		SubscriptionData: &stripe.CheckoutSessionCreateSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	var session *stripe.CheckoutSession
	err := c.withRetry(ctx, "checkout_session.create", func(ctx context.Context) error {
		var err error
		session, err = c.stripe.V1CheckoutSessions.Create(ctx, params)
		return err
	})
	if err != nil {
		c.logger.Errorw("failed to create stripe checkout session",
			"owner_id", req.OwnerID,
			"plan_id", req.PlanID,
			"error", err,
		)
		return nil, providerError(err, "Unable to create checkout session")
	}

	c.logger.Infow("created stripe checkout session",
		"session_id", session.ID,
		"owner_id", req.OwnerID,
		"plan_id", req.PlanID,
	)

	return &payment.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
