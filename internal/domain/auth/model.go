package auth

import (
	"time"

	"github.com/financeflow/financeflow/internal/types"
)

type Auth struct {
	UserID    string             `db:"user_id" json:"user_id"` // unique identifier for this table
	Provider  types.AuthProvider `db:"provider" json:"provider"`
	Token     string             `db:"token" json:"-"` // bcrypt hash of the password
	Status    types.Status       `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// Claims is what a validated bearer token resolves to
type Claims struct {
	UserID    string
	Role      types.UserRole
	ExpiresAt time.Time
}

func NewAuth(userID string, provider types.AuthProvider, token string) *Auth {
	now := time.Now().UTC()
	return &Auth{
		UserID:    userID,
		Provider:  provider,
		Token:     token,
		Status:    types.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
