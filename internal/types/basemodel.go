package types

import (
	"time"
)

// BaseModel carries the audit columns shared by every ledger record.
// Any changes to this model should be reflected in the schema in internal/postgres/migrations.go
type BaseModel struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GetDefaultBaseModel() BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
