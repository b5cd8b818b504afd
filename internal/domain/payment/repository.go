package payment

import (
	"context"
	"time"
)

// ProcessedEventRepository stores the ids of webhook events that were fully applied
type ProcessedEventRepository interface {
	Exists(ctx context.Context, eventID string) (bool, error)
	// Create returns ErrAlreadyExists when the id was recorded concurrently
	Create(ctx context.Context, event *ProcessedEvent) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
