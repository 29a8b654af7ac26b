package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
)

type BillingHandler struct {
	billingService   service.BillingService
	paymentService   service.PaymentService
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

func NewBillingHandler(
	billingService service.BillingService,
	paymentService service.PaymentService,
	analyticsService service.AnalyticsService,
	logger *logger.Logger,
) *BillingHandler {
	return &BillingHandler{
		billingService:   billingService,
		paymentService:   paymentService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetPaymentStatus answers the usage gate for the caller, guest or
// registered.
func (h *BillingHandler) GetPaymentStatus(c *gin.Context) {
	status, err := h.billingService.CheckPaymentStatus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *BillingHandler) IncrementInvoiceCount(c *gin.Context) {
	status, err := h.billingService.IncrementInvoiceCount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *BillingHandler) ResetPaymentStatus(c *gin.Context) {
	if err := h.billingService.ResetPaymentStatus(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	session, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BillingHandler) GetUserAnalytics(c *gin.Context) {
	row, err := h.analyticsService.GetUserAnalytics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, row)
}
