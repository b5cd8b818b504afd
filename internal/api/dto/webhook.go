package dto

import "github.com/financeflow/financeflow/internal/types"

type WebhookResponse struct {
	Received bool                   `json:"received"`
	Outcome  types.ReconcileOutcome `json:"outcome,omitempty"`
}
