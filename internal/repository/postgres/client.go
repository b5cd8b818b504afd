package postgres

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
)

const clientColumns = `id, owner_id, name, email, revenue, balance, created_at, updated_at`

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		c.ID,
		c.OwnerID,
		c.Name,
		c.Email,
		c.Revenue,
		c.Balance,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return postgres.WrapError(err, "Client")
}

func (r *clientRepository) List(ctx context.Context, ownerID string) ([]*client.Client, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE owner_id = ? ORDER BY name, id`)

	clients := make([]*client.Client, 0)
	if err := q.SelectContext(ctx, &clients, query, ownerID); err != nil {
		return nil, postgres.WrapError(err, "Client")
	}
	return clients, nil
}

func (r *clientRepository) Delete(ctx context.Context, ownerID, id string) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`DELETE FROM clients WHERE id = ? AND owner_id = ?`)
	result, err := q.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return postgres.WrapError(err, "Client")
	}
	return requireAffected(result, "Client")
}
