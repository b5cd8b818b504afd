package postgres

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/postgres"
	"github.com/financeflow/financeflow/internal/types"
)

const invoiceColumns = `id, owner_id, number, client_name, amount, status, due_date, paid_at, line_items, provider_ref, created_at, updated_at`

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice", "invoice_id", inv.ID, "owner_id", inv.OwnerID, "number", inv.Number)

	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`INSERT INTO invoices (` + invoiceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := q.ExecContext(ctx, query,
		inv.ID,
		inv.OwnerID,
		inv.Number,
		inv.ClientName,
		inv.Amount,
		inv.Status,
		inv.DueDate,
		inv.PaidAt,
		inv.LineItems,
		inv.ProviderRef,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	return postgres.WrapError(err, "Invoice")
}

func (r *invoiceRepository) Get(ctx context.Context, ownerID, id string) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ? AND owner_id = ?`)
	return r.getOne(ctx, q, query, id, ownerID)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`)
	return r.getOne(ctx, q, query, id)
}

func (r *invoiceRepository) GetByProviderRef(ctx context.Context, providerRef string) (*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + invoiceColumns + ` FROM invoices WHERE provider_ref = ?`)
	return r.getOne(ctx, q, query, providerRef)
}

func (r *invoiceRepository) getOne(ctx context.Context, q postgres.Querier, query string, args ...interface{}) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := q.GetContext(ctx, &inv, query, args...); err != nil {
		return nil, postgres.WrapError(err, "Invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, ownerID string) ([]*invoice.Invoice, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = ? ORDER BY due_date DESC, id DESC`)

	invoices := make([]*invoice.Invoice, 0)
	if err := q.SelectContext(ctx, &invoices, query, ownerID); err != nil {
		return nil, postgres.WrapError(err, "Invoice")
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("updating invoice", "invoice_id", inv.ID, "status", inv.Status)

	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`
	UPDATE invoices
	SET client_name = ?, amount = ?, status = ?, due_date = ?, paid_at = ?, line_items = ?, provider_ref = ?, updated_at = ?
	WHERE id = ? AND owner_id = ? AND status = ?
	`)
	result, err := q.ExecContext(ctx, query,
		inv.ClientName,
		inv.Amount,
		inv.Status,
		inv.DueDate,
		inv.PaidAt,
		inv.LineItems,
		inv.ProviderRef,
		inv.UpdatedAt,
		inv.ID,
		inv.OwnerID,
		types.InvoiceStatusPending,
	)
	if err != nil {
		return postgres.WrapError(err, "Invoice")
	}
	return requireAffected(result, "Invoice")
}

func (r *invoiceRepository) Delete(ctx context.Context, ownerID, id string) error {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`DELETE FROM invoices WHERE id = ? AND owner_id = ?`)
	result, err := q.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return postgres.WrapError(err, "Invoice")
	}
	return requireAffected(result, "Invoice")
}

// MarkPaid relies on the status predicate so that concurrent or repeated
// payment events transition an invoice at most once
func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	q := r.db.GetQuerier(ctx)
	query := q.Rebind(`UPDATE invoices SET status = ?, paid_at = ?, updated_at = ? WHERE id = ? AND status = ?`)
	result, err := q.ExecContext(ctx, query,
		types.InvoiceStatusPaid,
		paidAt.UTC(),
		time.Now().UTC(),
		id,
		types.InvoiceStatusPending,
	)
	if err != nil {
		return false, postgres.WrapError(err, "Invoice")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, postgres.WrapError(err, "Invoice")
	}
	return n == 1, nil
}
