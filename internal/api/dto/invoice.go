package dto

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/invoice"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/financeflow/financeflow/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const defaultInvoiceTermDays = 30

type InvoiceLineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"positive"`
	UnitAmount  decimal.Decimal `json:"unit_amount" validate:"positive"`
}

func toLineItems(items []InvoiceLineItemRequest) invoice.LineItems {
	return lo.Map(items, func(item InvoiceLineItemRequest, _ int) invoice.LineItem {
		return invoice.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmount,
		}
	})
}

type CreateInvoiceRequest struct {
	ClientName string `json:"client_name" binding:"required" validate:"required,max=255"`
	// Amount is ignored when line items are given
	Amount      decimal.Decimal          `json:"amount"`
	DueDate     string                   `json:"due_date,omitempty"`
	LineItems   []InvoiceLineItemRequest `json:"line_items,omitempty" validate:"omitempty,dive"`
	ProviderRef *string                  `json:"provider_ref,omitempty" validate:"omitempty,min=1"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if _, err := parseDate("due_date", r.DueDate, time.Time{}); err != nil {
		return err
	}
	if !r.total().IsPositive() {
		return ierr.NewError("invoice amount must be positive").
			WithHint("Provide a positive amount or at least one line item").
			WithReportableDetails(map[string]any{
				"amount": r.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateInvoiceRequest) total() decimal.Decimal {
	if len(r.LineItems) > 0 {
		return toLineItems(r.LineItems).Total()
	}
	return r.Amount
}

// ToInvoice builds a pending invoice for the authenticated owner
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) (*invoice.Invoice, error) {
	base := types.GetDefaultBaseModel()
	dueDate, err := parseDate("due_date", r.DueDate, base.CreatedAt.AddDate(0, 0, defaultInvoiceTermDays))
	if err != nil {
		return nil, err
	}

	return &invoice.Invoice{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		OwnerID:     types.GetUserID(ctx),
		Number:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		ClientName:  r.ClientName,
		Amount:      r.total(),
		Status:      types.InvoiceStatusPending,
		DueDate:     dueDate,
		LineItems:   toLineItems(r.LineItems),
		ProviderRef: r.ProviderRef,
		BaseModel:   base,
	}, nil
}

// UpdateInvoiceRequest is a partial update. Field changes are only accepted
// while the invoice is pending; Status drives the lifecycle.
type UpdateInvoiceRequest struct {
	ClientName  *string                   `json:"client_name,omitempty" validate:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal          `json:"amount,omitempty"`
	DueDate     *string                   `json:"due_date,omitempty"`
	LineItems   *[]InvoiceLineItemRequest `json:"line_items,omitempty" validate:"omitempty,dive"`
	ProviderRef *string                   `json:"provider_ref,omitempty" validate:"omitempty,min=1"`
	Status      *types.InvoiceStatus      `json:"status,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.DueDate != nil {
		if _, err := parseDate("due_date", *r.DueDate, time.Time{}); err != nil {
			return err
		}
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		return ierr.NewError("invoice amount must be positive").
			WithHint("Amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.LineItems != nil && len(*r.LineItems) == 0 {
		return ierr.NewError("empty line items").
			WithHint("Provide at least one line item").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HasFieldChanges reports whether anything other than the status is updated
func (r *UpdateInvoiceRequest) HasFieldChanges() bool {
	return r.ClientName != nil || r.Amount != nil || r.DueDate != nil || r.LineItems != nil || r.ProviderRef != nil
}

// ApplyFields copies the updated fields onto inv. Line items take precedence
// over an explicit amount.
func (r *UpdateInvoiceRequest) ApplyFields(inv *invoice.Invoice) error {
	if r.ClientName != nil {
		inv.ClientName = *r.ClientName
	}
	if r.DueDate != nil {
		dueDate, err := parseDate("due_date", *r.DueDate, inv.DueDate)
		if err != nil {
			return err
		}
		inv.DueDate = dueDate
	}
	if r.ProviderRef != nil {
		inv.ProviderRef = r.ProviderRef
	}
	if r.LineItems != nil {
		inv.LineItems = toLineItems(*r.LineItems)
		inv.Amount = inv.LineItems.Total()
	} else if r.Amount != nil {
		if len(inv.LineItems) > 0 {
			return ierr.NewError("amount is derived from line items").
				WithHint("Update the line items to change the amount of this invoice").
				Mark(ierr.ErrValidation)
		}
		inv.Amount = *r.Amount
	}
	return nil
}

type InvoiceResponse struct {
	*invoice.Invoice
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

type ListInvoicesResponse = ListResponse[*InvoiceResponse]
