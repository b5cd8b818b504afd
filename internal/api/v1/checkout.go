package v1

import (
	"net/http"

	"github.com/financeflow/financeflow/internal/api/dto"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/service"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// @Summary Create checkout session
// @Description Open a hosted subscription checkout for one of the configured plans
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCheckoutSessionRequest true "Plan"
// @Success 200 {object} dto.CreateCheckoutSessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req dto.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Missing planId in request body").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
