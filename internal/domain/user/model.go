package user

import (
	"strings"

	"github.com/financeflow/financeflow/internal/types"
)

type User struct {
	ID     string         `db:"id" json:"id"`
	Email  string         `db:"email" json:"email"`
	Role   types.UserRole `db:"role" json:"role"`
	Plan   types.PlanTier `db:"plan" json:"plan"`
	Status types.Status   `db:"status" json:"status"`
	types.BaseModel
}

// NewUser creates an owner account on the free plan
func NewUser(email string) *User {
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     NormalizeEmail(email),
		Role:      types.UserRoleOwner,
		Plan:      types.PlanTierFree,
		Status:    types.StatusActive,
		BaseModel: types.GetDefaultBaseModel(),
	}
}

// NormalizeEmail makes email lookups case insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
