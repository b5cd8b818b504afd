package dto

import (
	"time"

	"github.com/financeflow/financeflow/internal/domain/user"
	"github.com/financeflow/financeflow/internal/types"
)

type UserResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Role      types.UserRole `json:"role"`
	Plan      types.PlanTier `json:"plan"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
	}
}
