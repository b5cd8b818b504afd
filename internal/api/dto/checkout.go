package dto

import (
	"strings"

	ierr "github.com/financeflow/financeflow/internal/errors"
)

type CreateCheckoutSessionRequest struct {
	PlanID string `json:"planId"`
	// PlanIDAlias accepts snake_case clients
	PlanIDAlias string `json:"plan_id,omitempty"`
	// PriceID is the legacy field the original front end posted; it is resolved
	// against the configured plans like a plan id
	PriceID string `json:"priceId,omitempty"`
}

func (r *CreateCheckoutSessionRequest) Validate() error {
	if r.Plan() == "" {
		return ierr.NewError("missing planId").
			WithHint("Missing planId in request body").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Plan returns the requested plan, preferring planId over plan_id over priceId
func (r *CreateCheckoutSessionRequest) Plan() string {
	for _, p := range []string{r.PlanID, r.PlanIDAlias, r.PriceID} {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return ""
}

type CreateCheckoutSessionResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	SessionID   string `json:"sessionId"`
}
