package stripe

import (
	"context"

	"github.com/financeflow/financeflow/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// CountActiveSubscriptions lists active subscriptions and counts the ones whose
// metadata attributes them to ownerID. List reads are strongly consistent,
// unlike the search API, so a count pulled right after an event reflects it.
func (c *Client) CountActiveSubscriptions(ctx context.Context, ownerID string) (int, error) {
	params := &stripe.SubscriptionListParams{
		Status: stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Limit = stripe.Int64(100)

	var count int
	err := c.withRetry(ctx, "subscription.list", func(ctx context.Context) error {
		count = 0
		for sub, err := range c.stripe.V1Subscriptions.List(ctx, params) {
			if err != nil {
				return err
			}
			if sub.Metadata[types.MetadataKeyOwnerID] == ownerID {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, providerError(err, "Unable to load subscriptions from the payment provider")
	}

	c.logger.Debugw("pulled active subscription count", "owner_id", ownerID, "count", count)
	return count, nil
}
