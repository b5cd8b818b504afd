package types

// Status tracks the lifecycle of a record that is never hard deleted (users, auth records)
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
