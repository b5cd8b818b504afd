package service

import (
	"context"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/payment"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/idempotency"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
)

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req *dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error)
}

type checkoutService struct {
	ServiceParams
}

func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{
		ServiceParams: params,
	}
}

// CreateCheckoutSession opens a hosted subscription checkout for one of the
// configured plans. The session carries the owner id so the resulting provider
// events can be attributed back to the caller.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, req *dto.CreateCheckoutSessionRequest) (*dto.CreateCheckoutSessionResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	planID, priceID, err := s.resolvePlan(req.Plan())
	if err != nil {
		return nil, err
	}

	if !s.Config.Stripe.HasStripe() || s.Provider == nil {
		return nil, ierr.NewError("payment provider is not configured").
			WithHint("Payments are not available right now").
			Mark(ierr.ErrProvider)
	}

	u, err := s.UserRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	params := &payment.CheckoutSessionParams{
		OwnerID:        ownerID,
		CustomerEmail:  u.Email,
		PlanID:         planID,
		PriceID:        priceID,
		SuccessURL:     s.Config.Stripe.SuccessURL,
		CancelURL:      s.Config.Stripe.CancelURL,
		IdempotencyKey: idempotency.CheckoutSessionKey(ownerID, planID, types.GetRequestID(ctx)),
	}

	session, err := s.Provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		s.Logger.Errorw("failed to create checkout session",
			"owner_id", ownerID,
			"plan_id", planID,
			"error", err,
		)
		return nil, err
	}

	s.Logger.Infow("checkout session created",
		"owner_id", ownerID,
		"plan_id", planID,
		"session_id", session.ID,
	)

	return &dto.CreateCheckoutSessionResponse{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	}, nil
}

// resolvePlan accepts a configured plan id, or one of the configured price ids
func (s *checkoutService) resolvePlan(requested string) (string, string, error) {
	plans := s.Config.Stripe.Plans
	if priceID, ok := plans[requested]; ok {
		return requested, priceID, nil
	}

	if planID, ok := lo.FindKey(plans, requested); ok {
		return planID, requested, nil
	}

	return "", "", ierr.NewErrorf("unknown plan %q", requested).
		WithHint("Please choose one of the available plans").
		WithReportableDetails(map[string]any{
			"plan_id": requested,
			"allowed": lo.Keys(plans),
		}).
		Mark(ierr.ErrValidation)
}
