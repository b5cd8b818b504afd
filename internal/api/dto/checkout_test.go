package dto

import (
	"encoding/json"
	"testing"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSessionRequestPlan(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "planId", body: `{"planId":"starter"}`, want: "starter"},
		{name: "plan_id alias", body: `{"plan_id":" professional "}`, want: "professional"},
		{name: "legacy priceId", body: `{"priceId":"price_starter"}`, want: "price_starter"},
		{name: "planId wins", body: `{"planId":"enterprise","plan_id":"starter","priceId":"price_starter"}`, want: "enterprise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateCheckoutSessionRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.NoError(t, req.Validate())
			assert.Equal(t, tt.want, req.Plan())
		})
	}

	var empty CreateCheckoutSessionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"planId":"  "}`), &empty))
	assert.True(t, ierr.IsValidation(empty.Validate()))
}

func TestCreateCheckoutSessionResponseFields(t *testing.T) {
	raw, err := json.Marshal(CreateCheckoutSessionResponse{CheckoutURL: "https://x", SessionID: "cs_1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkoutUrl":"https://x","sessionId":"cs_1"}`, string(raw))
}
