package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Scope namespaces keys so two kinds of provider request never share one
type Scope string

const (
	ScopeCheckoutSession Scope = "checkout_session"
)

// Part is one named input of a key
type Part struct {
	Name  string
	Value string
}

// Derive hashes the scope and parts into a provider idempotency key.
// The order of parts does not change the key.
func Derive(scope Scope, parts ...Part) string {
	sorted := slices.Clone(parts)
	slices.SortFunc(sorted, func(a, b Part) int {
		return strings.Compare(a.Name, b.Name)
	})

	h := sha256.New()
	h.Write([]byte(scope))
	for _, p := range sorted {
		fmt.Fprintf(h, "\x00%s=%s", p.Name, p.Value)
	}
	return fmt.Sprintf("%s_%s", scope, hex.EncodeToString(h.Sum(nil)[:12]))
}

// CheckoutSessionKey keys a checkout on the owner, plan and inbound request id,
// so a client retry of the same request reuses the provider session.
// It returns "" when there is no request id to scope the key to.
func CheckoutSessionKey(ownerID, planID, requestID string) string {
	if requestID == "" {
		return ""
	}
	return Derive(ScopeCheckoutSession,
		Part{Name: "owner_id", Value: ownerID},
		Part{Name: "plan_id", Value: planID},
		Part{Name: "request_id", Value: requestID},
	)
}
