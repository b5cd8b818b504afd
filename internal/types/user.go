package types

import (
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/samber/lo"
)

// UserRole is the role carried in the auth token
type UserRole string

const (
	UserRoleOwner UserRole = "owner"
	UserRoleAdmin UserRole = "admin"
)

// PlanTier is the subscription tier of a user account
type PlanTier string

const (
	PlanTierFree         PlanTier = "free"
	PlanTierStarter      PlanTier = "starter"
	PlanTierProfessional PlanTier = "professional"
	PlanTierEnterprise   PlanTier = "enterprise"
)

func (p PlanTier) String() string {
	return string(p)
}

func (p PlanTier) Validate() error {
	allowed := []PlanTier{
		PlanTierFree,
		PlanTierStarter,
		PlanTierProfessional,
		PlanTierEnterprise,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan tier").
			WithHint("Please provide a valid plan").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AuthProvider identifies where a credential record came from
type AuthProvider string

const (
	AuthProviderFinanceFlow AuthProvider = "financeflow"
)
