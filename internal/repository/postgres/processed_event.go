package postgres

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
)

type processedEventRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProcessedEventRepository(db *postgres.DB, logger *logger.Logger) payment.ProcessedEventRepository {
	return &processedEventRepository{db: db, logger: logger}
}

func (r *processedEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT COUNT(*) FROM processed_webhook_events WHERE event_id = ?`)

	var count int
	if err := q.GetContext(ctx, &count, query, eventID); err != nil {
		return false, postgres.WrapError(err, "Webhook event")
	}
	return count > 0, nil
}

func (r *processedEventRepository) Create(ctx context.Context, event *payment.ProcessedEvent) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`INSERT INTO processed_webhook_events (event_id, event_type, owner_id, outcome, processed_at) VALUES (?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		event.EventID,
		event.EventType,
		event.OwnerID,
		event.Outcome,
		event.ProcessedAt.UTC(),
	)
	return postgres.WrapError(err, "Webhook event")
}

func (r *processedEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`DELETE FROM processed_webhook_events WHERE processed_at < ?`)
	result, err := q.ExecContext(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, postgres.WrapError(err, "Webhook event")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, postgres.WrapError(err, "Webhook event")
	}
	if n > 0 {
		r.logger.Infow("pruned processed webhook events", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
