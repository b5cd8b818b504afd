package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartCacheSpan opens a child span for a cache operation on key.
// It returns nil when the context carries no sentry hub.
func StartCacheSpan(ctx context.Context, operation, key string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache."+operation)
	span.Description = key
	span.SetData("cache.key", key)
	return span
}

// FinishSpan records whether the lookup hit and closes the span. Nil spans are ignored.
func FinishSpan(span *sentry.Span, hit bool) {
	if span == nil {
		return
	}
	span.SetData("cache.hit", hit)
	span.Status = sentry.SpanStatusOK
	span.Finish()
}
