package client

import (
	"github.com/financeflow/financeflow/internal/types"
	"github.com/shopspring/decimal"
)

// Client is a customer of the business. Revenue is the cumulative amount billed,
// Balance what the client still owes.
type Client struct {
	ID      string          `db:"id" json:"id"`
	OwnerID string          `db:"owner_id" json:"-"`
	Name    string          `db:"name" json:"name"`
	Email   string          `db:"email" json:"email"`
	Revenue decimal.Decimal `db:"revenue" json:"revenue"`
	Balance decimal.Decimal `db:"balance" json:"balance"`
	types.BaseModel
}

// IsActive reports whether the client has generated any revenue
func (c *Client) IsActive() bool {
	return c.Revenue.IsPositive()
}
