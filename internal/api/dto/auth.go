package dto

import (
	"github.com/financeflow/financeflow/internal/validator"
)

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

func (r *SignUpRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}
