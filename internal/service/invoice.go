package service

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/invoice"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := req.ToInvoice(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("invoice created",
		"owner_id", ownerID,
		"invoice_id", inv.ID,
		"number", inv.Number,
		"amount", inv.Amount,
	)
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return dto.NewListResponse(lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return dto.NewInvoiceResponse(inv)
	})), nil
}

// UpdateInvoice edits a pending invoice and drives its status. Only
// pending->paid and pending->cancelled are allowed; re-asserting the current
// status of a settled invoice changes nothing.
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	next := lo.FromPtrOr(req.Status, inv.Status)
	if err := inv.Status.ValidateTransition(next); err != nil {
		return nil, err
	}

	if !inv.IsPending() {
		if req.HasFieldChanges() {
			return nil, ierr.NewError("invoice is not pending").
				WithHintf("A %s invoice cannot be edited", inv.Status).
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
					"status":     inv.Status,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		return dto.NewInvoiceResponse(inv), nil
	}

	if err := req.ApplyFields(inv); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if next == types.InvoiceStatusPaid {
		inv.PaidAt = lo.ToPtr(now)
	}
	inv.Status = next
	inv.UpdatedAt = now

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		if ierr.IsNotFound(err) {
			// the invoice was read above, so it was settled or removed concurrently
			return nil, ierr.NewError("invoice is no longer pending").
				WithHint("The invoice was settled while it was being edited").
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		return nil, err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("invoice updated",
		"owner_id", ownerID,
		"invoice_id", inv.ID,
		"status", inv.Status,
	)
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return err
	}

	if err := s.InvoiceRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("invoice deleted", "owner_id", ownerID, "invoice_id", id)
	return nil
}
