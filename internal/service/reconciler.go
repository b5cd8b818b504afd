package service

import (
	"context"
	"time"

	"github.com/financeflow/financeflow/internal/domain/invoice"
	"github.com/financeflow/financeflow/internal/domain/payment"
	"github.com/financeflow/financeflow/internal/domain/snapshot"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/types"
)

// ReconcilerService applies verified payment provider events to the ledger and
// the cached snapshots. Deliveries are at-least-once and may arrive out of
// order, so every effect is either absolute or guarded by the seen-set.
type ReconcilerService interface {
	Process(ctx context.Context, rawBody []byte, signatureHeader string) (types.ReconcileOutcome, error)
	// PruneProcessedEvents forgets processed event ids older than the retention window
	PruneProcessedEvents(ctx context.Context) (int64, error)
}

type reconcilerService struct {
	ServiceParams
}

func NewReconcilerService(params ServiceParams) ReconcilerService {
	return &reconcilerService{
		ServiceParams: params,
	}
}

func (s *reconcilerService) Process(ctx context.Context, rawBody []byte, signatureHeader string) (types.ReconcileOutcome, error) {
	if s.Provider == nil {
		return "", ierr.NewError("payment provider is not configured").
			WithHint("Webhooks are not accepted right now").
			Mark(ierr.ErrSystem)
	}

	event, err := s.Provider.ParseEvent(rawBody, signatureHeader)
	if err != nil {
		s.Logger.Warnw("rejected webhook delivery", "error", err)
		return "", err
	}

	span, ctx := s.Sentry.MonitorEventProcessing(ctx, event.ProviderType, event.CreatedAt, map[string]interface{}{
		"event_id": event.ID,
		"owner_id": event.OwnerID,
	})
	if span != nil {
		defer span.Finish()
	}

	seen, err := s.ProcessedEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return "", err
	}
	if seen {
		s.Logger.Infow("skipping replayed webhook event",
			"event_id", event.ID,
			"event_type", event.ProviderType,
		)
		return types.ReconcileOutcomeDuplicate, nil
	}

	outcome, err := s.apply(ctx, event)
	if err != nil {
		s.Logger.Errorw("failed to apply webhook event",
			"event_id", event.ID,
			"event_type", event.ProviderType,
			"owner_id", event.OwnerID,
			"error", err,
		)
		s.Sentry.CaptureException(err)
		return "", err
	}

	s.Logger.Infow("reconciled webhook event",
		"event_id", event.ID,
		"event_type", event.ProviderType,
		"owner_id", event.OwnerID,
		"outcome", outcome,
	)
	return outcome, nil
}

func (s *reconcilerService) apply(ctx context.Context, event *payment.Event) (types.ReconcileOutcome, error) {
	if !event.IsKnown() {
		return s.record(ctx, event, types.ReconcileOutcomeIgnored)
	}

	switch event.Type {
	case types.PaymentEventSubscriptionCreated,
		types.PaymentEventSubscriptionUpdated,
		types.PaymentEventCheckoutCompleted:
		return s.applySubscriptionCount(ctx, event)
	case types.PaymentEventSubscriptionDeleted:
		return s.applySubscriptionDeleted(ctx, event)
	case types.PaymentEventInvoicePaid:
		return s.applyInvoicePaid(ctx, event)
	case types.PaymentEventInvoicePaymentFailed:
		s.Logger.Warnw("invoice payment failed",
			"event_id", event.ID,
			"owner_id", event.OwnerID,
			"provider_invoice", event.ProviderInvoiceRef,
		)
		return s.record(ctx, event, types.ReconcileOutcomeIgnored)
	default:
		return "", ierr.NewErrorf("unhandled payment event type %s", event.Type).
			Mark(ierr.ErrSystem)
	}
}

// applySubscriptionCount writes the provider's absolute active subscription
// count into the owner's cached snapshots, so replays and reordering converge
func (s *reconcilerService) applySubscriptionCount(ctx context.Context, event *payment.Event) (types.ReconcileOutcome, error) {
	if event.OwnerID == "" {
		s.Logger.Warnw("subscription event without owner", "event_id", event.ID)
		return s.record(ctx, event, types.ReconcileOutcomeIgnored)
	}

	if event.Type == types.PaymentEventCheckoutCompleted {
		if err := s.updatePlan(ctx, event.OwnerID, types.PlanTier(event.PlanID)); err != nil {
			return "", err
		}
	}

	count, err := s.Provider.CountActiveSubscriptions(ctx, event.OwnerID)
	if err != nil {
		return "", err
	}

	s.withOwnerSnapshot(ctx, event.OwnerID, func(snap *snapshot.Snapshot) {
		snap.ApplySubscriptionCount(count, time.Now())
	})

	return s.record(ctx, event, types.ReconcileOutcomeApplied)
}

// applySubscriptionDeleted re-pulls the count and falls back to a clamped
// decrement that the next successful pull corrects
func (s *reconcilerService) applySubscriptionDeleted(ctx context.Context, event *payment.Event) (types.ReconcileOutcome, error) {
	if event.OwnerID == "" {
		s.Logger.Warnw("subscription event without owner", "event_id", event.ID)
		return s.record(ctx, event, types.ReconcileOutcomeIgnored)
	}

	count, err := s.Provider.CountActiveSubscriptions(ctx, event.OwnerID)
	if err != nil {
		s.Logger.Warnw("subscription re-pull failed, decrementing cached count",
			"event_id", event.ID,
			"owner_id", event.OwnerID,
			"error", err,
		)
		s.withOwnerSnapshot(ctx, event.OwnerID, func(snap *snapshot.Snapshot) {
			snap.ApplySubscriptionDeleted(time.Now())
		})
		return s.record(ctx, event, types.ReconcileOutcomeApplied)
	}

	s.withOwnerSnapshot(ctx, event.OwnerID, func(snap *snapshot.Snapshot) {
		snap.ApplySubscriptionCount(count, time.Now())
	})
	if count == 0 {
		if err := s.updatePlan(ctx, event.OwnerID, types.PlanTierFree); err != nil {
			return "", err
		}
	}

	return s.record(ctx, event, types.ReconcileOutcomeApplied)
}

// applyInvoicePaid settles the matching ledger invoice and records the event in
// one transaction. Outstanding is only decremented when this delivery performed
// the pending->paid transition, so a second event id for the same invoice is a no-op.
func (s *reconcilerService) applyInvoicePaid(ctx context.Context, event *payment.Event) (types.ReconcileOutcome, error) {
	inv, err := s.resolveInvoice(ctx, event)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Warnw("invoice_paid for unknown invoice",
				"event_id", event.ID,
				"invoice_id", event.InvoiceID,
				"provider_invoice", event.ProviderInvoiceRef,
			)
			return s.record(ctx, event, types.ReconcileOutcomeIgnored)
		}
		return "", err
	}

	if event.OwnerID != "" && event.OwnerID != inv.OwnerID {
		s.Logger.Warnw("invoice_paid owner does not match ledger invoice",
			"event_id", event.ID,
			"invoice_id", inv.ID,
		)
		return s.record(ctx, event, types.ReconcileOutcomeIgnored)
	}

	paidAt := event.CreatedAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	unlock := s.Snapshots.Lock(inv.OwnerID)
	defer unlock()

	changed := false
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		changed, err = s.InvoiceRepo.MarkPaid(ctx, inv.ID, paidAt)
		if err != nil {
			return err
		}
		return s.ProcessedEventRepo.Create(ctx, newProcessedEvent(event, inv.OwnerID, outcomeFor(changed)))
	})
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			return types.ReconcileOutcomeDuplicate, nil
		}
		return "", err
	}

	if changed {
		s.Snapshots.Update(ctx, inv.OwnerID, func(snap *snapshot.Snapshot) {
			snap.ApplyInvoicePaid(inv.Amount, time.Now())
		})
	}
	return outcomeFor(changed), nil
}

func outcomeFor(changed bool) types.ReconcileOutcome {
	if changed {
		return types.ReconcileOutcomeApplied
	}
	return types.ReconcileOutcomeIgnored
}

// resolveInvoice prefers the ledger id carried in metadata over the provider reference
func (s *reconcilerService) resolveInvoice(ctx context.Context, event *payment.Event) (*invoice.Invoice, error) {
	if event.InvoiceID != "" {
		inv, err := s.InvoiceRepo.GetByID(ctx, event.InvoiceID)
		if err == nil || !ierr.IsNotFound(err) || event.ProviderInvoiceRef == "" {
			return inv, err
		}
	}
	if event.ProviderInvoiceRef != "" {
		return s.InvoiceRepo.GetByProviderRef(ctx, event.ProviderInvoiceRef)
	}
	return nil, ierr.NewError("event carries no invoice reference").
		Mark(ierr.ErrNotFound)
}

func (s *reconcilerService) withOwnerSnapshot(ctx context.Context, ownerID string, fn func(snap *snapshot.Snapshot)) {
	unlock := s.Snapshots.Lock(ownerID)
	defer unlock()
	s.Snapshots.Update(ctx, ownerID, fn)
}

// updatePlan writes the owner's plan. An unknown plan is skipped since no
// redelivery can fix it; a store failure is returned so the event stays unrecorded.
func (s *reconcilerService) updatePlan(ctx context.Context, ownerID string, plan types.PlanTier) error {
	if err := plan.Validate(); err != nil {
		s.Logger.Warnw("ignoring unknown plan on payment event", "owner_id", ownerID, "plan", plan)
		return nil
	}
	if err := s.UserRepo.UpdatePlan(ctx, ownerID, plan); err != nil {
		s.Logger.Warnw("failed to update user plan",
			"owner_id", ownerID,
			"plan", plan,
			"error", err,
		)
		return err
	}
	return nil
}

// record adds the event to the seen-set. A concurrent delivery of the same id
// that got there first turns this one into a duplicate.
func (s *reconcilerService) record(ctx context.Context, event *payment.Event, outcome types.ReconcileOutcome) (types.ReconcileOutcome, error) {
	err := s.ProcessedEventRepo.Create(ctx, newProcessedEvent(event, event.OwnerID, outcome))
	if err != nil {
		if ierr.IsAlreadyExists(err) {
			return types.ReconcileOutcomeDuplicate, nil
		}
		return "", err
	}
	return outcome, nil
}

func newProcessedEvent(event *payment.Event, ownerID string, outcome types.ReconcileOutcome) *payment.ProcessedEvent {
	return &payment.ProcessedEvent{
		EventID:     event.ID,
		EventType:   event.ProviderType,
		OwnerID:     ownerID,
		Outcome:     string(outcome),
		ProcessedAt: time.Now().UTC(),
	}
}

func (s *reconcilerService) PruneProcessedEvents(ctx context.Context) (int64, error) {
	retention := s.Config.Webhook.Retention
	if retention <= 0 {
		return 0, nil
	}

	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := s.ProcessedEventRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.Logger.Infow("pruned processed webhook events",
			"deleted", deleted,
			"cutoff", cutoff,
		)
	}
	return deleted, nil
}
