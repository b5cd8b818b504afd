package stripe

import (
	"context"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/financeflow/financeflow/internal/config"
	"github.com/financeflow/financeflow/internal/domain/payment"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/sentry"
	"github.com/stripe/stripe-go/v82"
)

// Client is the Stripe implementation of payment.Provider
type Client struct {
	stripe *stripe.Client
	cfg    config.StripeConfig
	logger *logger.Logger
	sentry *sentry.Service
}

var _ payment.Provider = (*Client)(nil)

// NewClient creates a new Stripe client
func NewClient(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) *Client {
	if !cfg.Stripe.HasStripe() {
		logger.Warnw("stripe secret key is not configured, checkout and subscription pulls will fail")
	}
	return &Client{
		stripe: stripe.NewClient(cfg.Stripe.SecretKey, nil),
		cfg:    cfg.Stripe,
		logger: logger,
		sentry: sentry,
	}
}

// withRetry runs op with exponential backoff, at most cfg.MaxRetries retries,
// each attempt bounded by cfg.Timeout. Client errors are not retried.
func (c *Client) withRetry(ctx context.Context, operation string, op func(ctx context.Context) error) error {
	span, ctx := c.sentry.StartProviderSpan(ctx, operation)
	if span != nil {
		defer span.Finish()
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries),
		ctx,
	)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		err := op(attemptCtx)
		if err == nil {
			return nil
		}

		c.logger.Warnw("stripe call failed",
			"operation", operation,
			"attempt", attempt,
			"error", err,
		)
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func isRetryable(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == http.StatusTooManyRequests ||
			stripeErr.HTTPStatusCode >= http.StatusInternalServerError ||
			stripeErr.HTTPStatusCode == 0
	}
	return true
}

func providerError(err error, hint string) error {
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrProvider)
}
