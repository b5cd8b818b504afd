package validator

import (
	"testing"

	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string          `json:"email" validate:"required,email"`
	Amount decimal.Decimal `json:"amount" validate:"positive"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	err := ValidateRequest(sampleRequest{Email: "a@b.co", Amount: decimal.NewFromInt(5)})
	assert.NoError(t, err)

	err = ValidateRequest(sampleRequest{Amount: decimal.Zero})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(sampleRequest{Email: "not-an-email", Amount: decimal.NewFromInt(-1)})
	assert.True(t, ierr.IsValidation(err))
}
