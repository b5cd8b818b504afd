package payment

import "context"

// Provider is the payment provider collaborator: a pull API, a signed push
// event source and hosted checkout.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error)
	// CountActiveSubscriptions returns the provider's authoritative number of
	// active subscriptions attributed to ownerID
	CountActiveSubscriptions(ctx context.Context, ownerID string) (int, error)
	// ParseEvent verifies the signature over the exact raw body and maps the
	// payload onto Event
	ParseEvent(rawBody []byte, signatureHeader string) (*Event, error)
}
