package v1

import (
	"io"
	"net/http"

	"github.com/financeflow/financeflow/internal/api/dto"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/service"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds the raw body read before the signature is checked
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	reconcilerService service.ReconcilerService
	logger            *logger.Logger
}

func NewWebhookHandler(reconcilerService service.ReconcilerService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconcilerService: reconcilerService,
		logger:            logger,
	}
}

// @Summary Handle Stripe webhook events
// @Description Verify and apply a payment provider event. The signature is checked
// @Description against the exact raw body, so the body must not be re-encoded in transit.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe webhook signature"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} ierr.ErrorResponse "Invalid signature"
// @Failure 500 {object} ierr.ErrorResponse "Event could not be applied, the provider will retry"
// @Router /webhook [post]
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read request body").
			Mark(ierr.ErrValidation))
		return
	}

	signature := c.GetHeader(types.HeaderStripeSignature)
	if signature == "" {
		c.Error(ierr.NewError("missing Stripe-Signature header").
			WithHint("Missing Stripe-Signature header").
			Mark(ierr.ErrInvalidSignature))
		return
	}

	h.logger.Debugw("processing webhook", "payload_length", len(body))

	outcome, err := h.reconcilerService.Process(c.Request.Context(), body, signature)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Received: true,
		Outcome:  outcome,
	})
}
