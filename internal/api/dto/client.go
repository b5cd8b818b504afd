package dto

import (
	"context"

	"github.com/financeflow/financeflow/internal/domain/client"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/financeflow/financeflow/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateClientRequest struct {
	Name    string          `json:"name" binding:"required" validate:"required,max=255"`
	Email   string          `json:"email,omitempty" validate:"omitempty,email"`
	Revenue decimal.Decimal `json:"revenue"`
	Balance decimal.Decimal `json:"balance"`
}

func (r *CreateClientRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Revenue.IsNegative() || r.Balance.IsNegative() {
		return ierr.NewError("negative client totals").
			WithHint("Revenue and balance cannot be negative").
			WithReportableDetails(map[string]any{
				"revenue": r.Revenue,
				"balance": r.Balance,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		OwnerID:   types.GetUserID(ctx),
		Name:      r.Name,
		Email:     r.Email,
		Revenue:   r.Revenue,
		Balance:   r.Balance,
		BaseModel: types.GetDefaultBaseModel(),
	}
}

type ClientResponse struct {
	*client.Client
}

func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{Client: c}
}

type ListClientsResponse = ListResponse[*ClientResponse]
