package service

import (
	"errors"
	"testing"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/user"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/testutil"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	testutil.BaseServiceTestSuite
	checkoutService CheckoutService
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.checkoutService = NewCheckoutService(newTestServiceParams(&s.BaseServiceTestSuite))

	u := user.NewUser("owner@example.com")
	u.ID = testutil.DefaultOwnerID
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
}

func (s *CheckoutServiceSuite) TestCreateSessionForKnownPlan() {
	resp, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), &dto.CreateCheckoutSessionRequest{
		PlanID: "professional",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.CheckoutURL)
	s.NotEmpty(resp.SessionID)

	sessions := s.GetProvider().Sessions()
	s.Require().Len(sessions, 1)
	s.Equal(testutil.DefaultOwnerID, sessions[0].OwnerID)
	s.Equal("owner@example.com", sessions[0].CustomerEmail)
	s.Equal("professional", sessions[0].PlanID)
	s.Equal("price_professional", sessions[0].PriceID)
	s.Equal(s.GetConfig().Stripe.SuccessURL, sessions[0].SuccessURL)
	s.NotEmpty(sessions[0].IdempotencyKey)
}

func (s *CheckoutServiceSuite) TestLegacyPriceIDIsResolved() {
	_, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), &dto.CreateCheckoutSessionRequest{
		PriceID: "price_starter",
	})
	s.Require().NoError(err)

	sessions := s.GetProvider().Sessions()
	s.Require().Len(sessions, 1)
	s.Equal("starter", sessions[0].PlanID)
	s.Equal("price_starter", sessions[0].PriceID)
}

func (s *CheckoutServiceSuite) TestRetriedRequestReusesIdempotencyKey() {
	req := &dto.CreateCheckoutSessionRequest{PlanID: "starter"}
	first, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), req)
	s.Require().NoError(err)
	second, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), req)
	s.Require().NoError(err)
	s.Equal(first.SessionID, second.SessionID)
}

func (s *CheckoutServiceSuite) TestRejectsInvalidPlans() {
	testCases := []struct {
		name string
		req  *dto.CreateCheckoutSessionRequest
	}{
		{name: "missing plan", req: &dto.CreateCheckoutSessionRequest{}},
		{name: "blank plan", req: &dto.CreateCheckoutSessionRequest{PlanID: "   "}},
		{name: "unknown plan", req: &dto.CreateCheckoutSessionRequest{PlanID: "platinum"}},
		{name: "unknown price", req: &dto.CreateCheckoutSessionRequest{PriceID: "price_unknown"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), tc.req)
			s.True(ierr.IsValidation(err))
		})
	}
	s.Empty(s.GetProvider().Sessions())
}

func (s *CheckoutServiceSuite) TestProviderFailure() {
	s.GetProvider().FailCheckout(errors.New("card network down"))

	_, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), &dto.CreateCheckoutSessionRequest{PlanID: "starter"})
	s.True(ierr.IsProvider(err))
}

func (s *CheckoutServiceSuite) TestProviderNotConfigured() {
	s.GetConfig().Stripe.SecretKey = ""

	_, err := s.checkoutService.CreateCheckoutSession(s.GetContext(), &dto.CreateCheckoutSessionRequest{PlanID: "starter"})
	s.True(ierr.IsProvider(err))
	s.Empty(s.GetProvider().Sessions())
}

func (s *CheckoutServiceSuite) TestRequiresAuthenticatedOwner() {
	ctx := types.SetUserID(s.GetContext(), "")

	_, err := s.checkoutService.CreateCheckoutSession(ctx, &dto.CreateCheckoutSessionRequest{PlanID: "starter"})
	s.True(ierr.IsUnauthorized(err))
}
