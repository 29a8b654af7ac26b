package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
)

type WebhookHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

func NewWebhookHandler(paymentService service.PaymentService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// HandleStripeWebhook verifies and processes an inbound Stripe event.
// Signature failures return 400 without touching any handler.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.logger.Errorw("missing Stripe-Signature header")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing Stripe-Signature header",
		})
		return
	}

	event, err := h.paymentService.ParseWebhookEvent(body, signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid webhook signature or payload",
		})
		return
	}

	if err := h.paymentService.ProcessWebhookEvent(c.Request.Context(), event); err != nil {
		h.logger.Errorw("failed to process webhook event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process webhook event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
