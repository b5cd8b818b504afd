package types

// PaymentEventType is the closed set of provider events the reconciler understands.
// Provider event names are mapped onto it by the integration layer; anything outside
// the set is acknowledged and ignored.
type PaymentEventType string

const (
	PaymentEventSubscriptionCreated  PaymentEventType = "subscription_created"
	PaymentEventSubscriptionUpdated  PaymentEventType = "subscription_updated"
	PaymentEventSubscriptionDeleted  PaymentEventType = "subscription_deleted"
	PaymentEventInvoicePaid          PaymentEventType = "invoice_paid"
	PaymentEventInvoicePaymentFailed PaymentEventType = "invoice_payment_failed"
	PaymentEventCheckoutCompleted    PaymentEventType = "checkout_completed"
)

// PaymentEventTypes lists every member of the enumeration
var PaymentEventTypes = []PaymentEventType{
	PaymentEventSubscriptionCreated,
	PaymentEventSubscriptionUpdated,
	PaymentEventSubscriptionDeleted,
	PaymentEventInvoicePaid,
	PaymentEventInvoicePaymentFailed,
	PaymentEventCheckoutCompleted,
}

func (t PaymentEventType) String() string {
	return string(t)
}

// ReconcileOutcome describes what the reconciler did with a delivered event
type ReconcileOutcome string

const (
	ReconcileOutcomeApplied   ReconcileOutcome = "applied"
	ReconcileOutcomeDuplicate ReconcileOutcome = "duplicate"
	ReconcileOutcomeIgnored   ReconcileOutcome = "ignored"
)

// SnapshotSource labels where a dashboard snapshot came from
type SnapshotSource string

const (
	SnapshotSourceLive  SnapshotSource = "live"
	SnapshotSourceCache SnapshotSource = "cache"
	SnapshotSourceDemo  SnapshotSource = "demo"
)

// Metadata keys written into provider objects so events can be attributed to an owner
const (
	MetadataKeyOwnerID   = "owner_id"
	MetadataKeyPlanID    = "plan_id"
	MetadataKeyInvoiceID = "invoice_id"
)
