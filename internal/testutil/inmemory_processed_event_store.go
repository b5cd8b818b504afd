package testutil

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/payment"
	ierr "github.com/financeflow/financeflow/internal/errors"
)

// InMemoryProcessedEventStore implements payment.ProcessedEventRepository
type InMemoryProcessedEventStore struct {
	*InMemoryStore[*payment.ProcessedEvent]
}

func NewInMemoryProcessedEventStore() *InMemoryProcessedEventStore {
	return &InMemoryProcessedEventStore{
		InMemoryStore: NewInMemoryStore[*payment.ProcessedEvent]("Processed event"),
	}
}

func (s *InMemoryProcessedEventStore) Exists(ctx context.Context, eventID string) (bool, error) {
	_, err := s.InMemoryStore.Get(ctx, eventID)
	if err == nil {
		return true, nil
	}
	if ierr.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

func (s *InMemoryProcessedEventStore) Create(ctx context.Context, event *payment.ProcessedEvent) error {
	c := *event
	return s.InMemoryStore.Create(ctx, event.EventID, &c)
}

func (s *InMemoryProcessedEventStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.InMemoryStore.DeleteWhere(ctx, func(_ context.Context, e *payment.ProcessedEvent) bool {
		return e.ProcessedAt.Before(cutoff)
	})
}
